package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeOffsetToken returns the token of the page starting at offset.
func EncodeOffsetToken(offset int) string {
	return EncodeMultiFieldToken("offset", strconv.Itoa(offset))
}

// DecodeOffsetToken returns the offset carried by token. An empty token is the first page.
func DecodeOffsetToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	fields, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(fields) != 2 || fields[0] != "offset" {
		return 0, fmt.Errorf("invalid pagination token format (fields)")
	}
	offset, err := strconv.Atoi(fields[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// NextToken returns the token of the page after the one starting at offset,
// or nil when the page was not full.
func NextToken(offset, limit, returned int) *string {
	if returned < limit {
		return nil
	}
	token := EncodeOffsetToken(offset + returned)
	return &token
}
