// Package allocator finds account names and codes that are not used yet.
//
// Allocation is a pure function over two inputs: the values already claimed by
// the current batch and a lookup telling whether a value is persisted in the
// company scope. Accepted values are not recorded; callers add them to their
// Claims before allocating the next one.
package allocator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
)

// MaxCopyAttempts is the number of ".copy" suffixed candidates probed after the start value.
const MaxCopyAttempts = 99

// TakenFunc reports whether candidate is already used by a persisted record.
type TakenFunc func(ctx context.Context, candidate string) (bool, error)

// Claims is the set of values handed out during one batch.
type Claims map[string]struct{}

// NewClaims returns a Claims holding values.
func NewClaims(values ...string) Claims {
	c := make(Claims, len(values))
	for _, v := range values {
		c[v] = struct{}{}
	}
	return c
}

// Has reports whether v is claimed. A nil Claims claims nothing.
func (c Claims) Has(v string) bool {
	_, ok := c[v]
	return ok
}

// Add claims v.
func (c Claims) Add(v string) {
	c[v] = struct{}{}
}

// With returns a copy of c that also claims values. c is left unchanged.
func (c Claims) With(values ...string) Claims {
	out := make(Claims, len(c)+len(values))
	for v := range c {
		out[v] = struct{}{}
	}
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

type prober struct {
	claimed Claims
	taken   TakenFunc
}

func (p prober) available(ctx context.Context, candidate string) (bool, error) {
	if p.claimed.Has(candidate) {
		return false, nil
	}
	taken, err := p.taken(ctx, candidate)
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", candidate, err)
	}
	return !taken, nil
}

// CopyCandidate returns the n-th (0 based) fallback candidate:
// "start.copy", "start.copy2", ... "start.copy99".
func CopyCandidate(start string, n int) string {
	if n == 0 {
		return start + ".copy"
	}
	return start + ".copy" + strconv.Itoa(n+1)
}

func (p prober) copies(ctx context.Context, start string) (string, bool, error) {
	for n := 0; n < MaxCopyAttempts; n++ {
		candidate := CopyCandidate(start, n)
		ok, err := p.available(ctx, candidate)
		if err != nil {
			return "", false, err
		}
		if ok {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// UniqueName returns start when it is available, otherwise the first available
// of start.copy, start.copy2 ... start.copy99.
func UniqueName(ctx context.Context, start string, claimed Claims, taken TakenFunc) (string, error) {
	p := prober{claimed: claimed, taken: taken}
	ok, err := p.available(ctx, start)
	if err != nil {
		return "", err
	}
	if ok {
		return start, nil
	}

	name, found, err := p.copies(ctx, start)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperrors.NewAllocationError("Cannot generate an unused account name.")
	}
	return name, nil
}

// UniqueCode returns start when it is available. Otherwise it increments the
// last run of digits in start, keeping its width, and finally falls back to
// the ".copy" suffixes used for names.
func UniqueCode(ctx context.Context, start string, claimed Claims, taken TakenFunc) (string, error) {
	p := prober{claimed: claimed, taken: taken}
	ok, err := p.available(ctx, start)
	if err != nil {
		return "", err
	}
	if ok {
		return start, nil
	}

	head, digits, tail := splitCode(start)
	for next, ok := incrementDigits(digits); ok; next, ok = incrementDigits(next) {
		candidate := head + next + tail
		free, err := p.available(ctx, candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}

	code, found, err := p.copies(ctx, start)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperrors.NewAllocationError("Cannot generate an unused account code.")
	}
	return code, nil
}

// StartCode derives the first code to try from a prefix and a code width:
// a prefix shorter than digits is padded with zeros to digits-1 characters and
// terminated by "1"; a wide enough prefix is used as-is.
func StartCode(prefix string, digits int) string {
	if len(prefix) >= digits {
		return prefix
	}
	return prefix + strings.Repeat("0", digits-1-len(prefix)) + "1"
}

// splitCode cuts code around its last run of digits: head, digits, tail where
// tail holds no digit.
func splitCode(code string) (head, digits, tail string) {
	end := len(code)
	for end > 0 && !isDigit(code[end-1]) {
		end--
	}
	start := end
	for start > 0 && isDigit(code[start-1]) {
		start--
	}
	return code[:start], code[start:end], code[end:]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// incrementDigits adds one to a decimal string of any length, keeping its
// width. It reports false when digits is empty or all nines.
func incrementDigits(digits string) (string, bool) {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b), true
		}
		b[i] = '0'
	}
	return "", false
}
