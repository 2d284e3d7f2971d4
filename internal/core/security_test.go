// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateShareToken(t *testing.T) {
	token, err := GenerateShareToken()
	require.NoError(t, err)

	assert.Len(t, token, 32)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	other, err := GenerateShareToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateOTPCode(t *testing.T) {
	code, err := GenerateOTPCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)

	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestGenerateOTPCode_CoversAllDigits(t *testing.T) {
	seen := make(map[byte]int)
	for range 500 {
		code, err := GenerateOTPCode(6)
		require.NoError(t, err)
		for i := 0; i < len(code); i++ {
			seen[code[i]]++
		}
	}

	for d := byte('0'); d <= '9'; d++ {
		assert.Positive(t, seen[d], "digit %c never generated", d)
	}
}

func TestGenerateOTPCode_Lengths(t *testing.T) {
	for _, length := range []int{4, 6, 8, 10} {
		code, err := GenerateOTPCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	first := HashToken("some-refresh-token")
	second := HashToken("some-refresh-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, HashToken("another-token"))
	assert.True(t, CompareTokenHash("some-refresh-token", first))
	assert.False(t, CompareTokenHash("another-token", first))
}
