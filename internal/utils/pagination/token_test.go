package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeOffsetToken(t *testing.T) {
	token := EncodeOffsetToken(40)
	assert.NotEmpty(t, token, "Token should not be empty")

	offset, err := DecodeOffsetToken(token)
	require.NoError(t, err)
	assert.Equal(t, 40, offset)
}

func TestDecodeOffsetToken_Empty(t *testing.T) {
	offset, err := DecodeOffsetToken("")
	require.NoError(t, err)
	assert.Zero(t, offset)
}

func TestDecodeOffsetToken_Invalid(t *testing.T) {
	_, err := DecodeOffsetToken("not-base64!")
	assert.Error(t, err)

	_, err = DecodeOffsetToken(EncodeMultiFieldToken("cursor", "12"))
	assert.Error(t, err)

	_, err = DecodeOffsetToken(EncodeMultiFieldToken("offset", "-1"))
	assert.Error(t, err)
}

func TestMultiFieldToken(t *testing.T) {
	fields, err := DecodeMultiFieldToken(EncodeMultiFieldToken("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestNextToken(t *testing.T) {
	assert.Nil(t, NextToken(0, 20, 5))

	next := NextToken(20, 20, 20)
	require.NotNil(t, next)
	offset, err := DecodeOffsetToken(*next)
	require.NoError(t, err)
	assert.Equal(t, 40, offset)
}
