package allocator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
)

// takenSet is a lookup backed by a fixed set; it records every probe.
type takenSet struct {
	values map[string]bool
	probes []string
}

func newTakenSet(values ...string) *takenSet {
	t := &takenSet{values: make(map[string]bool)}
	for _, v := range values {
		t.values[v] = true
	}
	return t
}

func (t *takenSet) lookup(_ context.Context, candidate string) (bool, error) {
	t.probes = append(t.probes, candidate)
	return t.values[candidate], nil
}

func TestUniqueNameReturnsFreeStart(t *testing.T) {
	taken := newTakenSet()
	name, err := UniqueName(context.Background(), "Cash", nil, taken.lookup)

	require.NoError(t, err)
	assert.Equal(t, "Cash", name)
	assert.Equal(t, []string{"Cash"}, taken.probes)
}

func TestUniqueNameProbesCopiesInOrder(t *testing.T) {
	tests := []struct {
		name    string
		taken   []string
		claimed Claims
		want    string
	}{
		{name: "persisted collision", taken: []string{"Cash"}, want: "Cash.copy"},
		{name: "claimed collision", claimed: NewClaims("Cash"), want: "Cash.copy"},
		{name: "copy taken", taken: []string{"Cash", "Cash.copy"}, want: "Cash.copy2"},
		{name: "mixed sources", taken: []string{"Cash", "Cash.copy2"}, claimed: NewClaims("Cash.copy"), want: "Cash.copy3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UniqueName(context.Background(), "Cash", tt.claimed, newTakenSet(tt.taken...).lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUniqueNameClaimedValuesSkipLookup(t *testing.T) {
	taken := newTakenSet()
	_, err := UniqueName(context.Background(), "Bank", NewClaims("Bank"), taken.lookup)

	require.NoError(t, err)
	assert.Equal(t, []string{"Bank.copy"}, taken.probes)
}

func TestUniqueNameExhausted(t *testing.T) {
	values := []string{"Cash"}
	for n := 0; n < MaxCopyAttempts; n++ {
		values = append(values, CopyCandidate("Cash", n))
	}
	taken := newTakenSet(values...)

	_, err := UniqueName(context.Background(), "Cash", nil, taken.lookup)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAllocationExhausted)
	assert.Len(t, taken.probes, 100)
	assert.Equal(t, "Cash.copy99", taken.probes[len(taken.probes)-1])
}

func TestUniqueNamePropagatesLookupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := UniqueName(context.Background(), "Cash", nil, func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestCopyCandidate(t *testing.T) {
	assert.Equal(t, "A.copy", CopyCandidate("A", 0))
	assert.Equal(t, "A.copy2", CopyCandidate("A", 1))
	assert.Equal(t, "A.copy99", CopyCandidate("A", 98))
}

func TestStartCode(t *testing.T) {
	tests := []struct {
		prefix string
		digits int
		want   string
	}{
		{"10", 4, "1001"},
		{"4", 6, "400001"},
		{"101", 4, "1011"},
		{"1010", 4, "1010"},
		{"10100", 4, "10100"},
		{"", 3, "001"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.prefix, tt.digits), func(t *testing.T) {
			assert.Equal(t, tt.want, StartCode(tt.prefix, tt.digits))
		})
	}
}

func TestUniqueCode(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		taken   []string
		claimed Claims
		want    string
	}{
		{name: "free", start: "1001", want: "1001"},
		{name: "increments", start: "1001", taken: []string{"1001"}, want: "1002"},
		{name: "claimed increments", start: "1001", claimed: NewClaims("1001", "1002"), want: "1003"},
		{name: "keeps width", start: "0009", taken: []string{"0009"}, want: "0010"},
		{name: "keeps surrounding text", start: "X10Y", taken: []string{"X10Y"}, want: "X11Y"},
		{name: "last digit run only", start: "10A2B", taken: []string{"10A2B"}, want: "10A3B"},
		{name: "no digits falls back to copy", start: "CASH", taken: []string{"CASH"}, want: "CASH.copy"},
		{name: "width exhausted falls back to copy", start: "9", taken: []string{"9"}, want: "9.copy"},
		{name: "long digit run", start: "ACC12345678901234567890", taken: []string{"ACC12345678901234567890"}, want: "ACC12345678901234567891"},
		{name: "long digit run carries", start: "1999999999999999999999", taken: []string{"1999999999999999999999"}, want: "2000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UniqueCode(context.Background(), tt.start, tt.claimed, newTakenSet(tt.taken...).lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUniqueCodeExhausted(t *testing.T) {
	values := []string{"8", "9"}
	for n := 0; n < MaxCopyAttempts; n++ {
		values = append(values, CopyCandidate("8", n))
	}

	_, err := UniqueCode(context.Background(), "8", nil, newTakenSet(values...).lookup)
	assert.ErrorIs(t, err, apperrors.ErrAllocationExhausted)
}

func TestBatchClaimsKeepCodesDistinct(t *testing.T) {
	ctx := context.Background()
	taken := newTakenSet()
	claims := NewClaims()

	first, err := UniqueCode(ctx, StartCode("10", 4), claims, taken.lookup)
	require.NoError(t, err)
	claims.Add(first)
	second, err := UniqueCode(ctx, StartCode("10", 4), claims, taken.lookup)
	require.NoError(t, err)

	assert.Equal(t, "1001", first)
	assert.Equal(t, "1002", second)
}

func TestClaimsWithDoesNotMutate(t *testing.T) {
	base := NewClaims("a")
	extended := base.With("b")

	assert.True(t, extended.Has("a"))
	assert.True(t, extended.Has("b"))
	assert.False(t, base.Has("b"))
}

func TestFirstAvailable(t *testing.T) {
	got, found, err := FirstAvailable(context.Background(), []string{"BNK1", "BNK2", "BNK3"}, NewClaims("BNK1"), newTakenSet("BNK2").lookup)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "BNK3", got)

	_, found, err = FirstAvailable(context.Background(), []string{"BNK1"}, NewClaims("BNK1"), newTakenSet().lookup)
	require.NoError(t, err)
	assert.False(t, found)
}
