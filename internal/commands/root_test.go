package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "token"}, names)
	assert.Contains(t, root.Version, "commit:")
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"migrate", "sideways"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestTokenCommandIssuesSignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "cli-issuer")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetArgs([]string{"token", "user-42", "--expiry", "5m"})
	root.SetOut(&out)

	require.NoError(t, root.Execute())

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(string(bytes.TrimSpace(out.Bytes())), claims, func(*jwt.Token) (interface{}, error) {
		return []byte("cli-secret"), nil
	}, jwt.WithIssuer("cli-issuer"))
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		assert.NotNil(t, newLogger(level))
	}
}
