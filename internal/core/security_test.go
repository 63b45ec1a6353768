// AngelaMos | 2026
// security_test.go

package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := core.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := core.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = core.VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := core.HashPassword("same input")
	require.NoError(t, err)

	second, err := core.HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := core.VerifyPassword("anything", "not-a-phc-string")
	require.Error(t, err)
}

func TestVerifyPasswordTimingSafe_MissingUser(t *testing.T) {
	ok, rehash, err := core.VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rehash)

	empty := ""
	ok, _, err = core.VerifyPasswordTimingSafe("anything", &empty)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := core.GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	other, err := core.GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
