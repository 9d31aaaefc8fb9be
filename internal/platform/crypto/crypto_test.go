package crypto

import (
	"testing"
	"time"

	"libraryapi/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "battery staple"))
	assert.False(t, VerifyPassword("not-a-hash", "correct horse"))

	again, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestHashPassword_TooLong(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := HashPassword(string(long))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGenerateAndParseToken(t *testing.T) {
	token, jti, err := GenerateToken("secret", 42, "ada@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ReaderID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.Equal(t, jti, claims.ID)
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	_, a, err := GenerateToken("secret", 1, "a@example.com", time.Hour)
	require.NoError(t, err)
	_, b, err := GenerateToken("secret", 1, "a@example.com", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, _, err := GenerateToken("secret", 1, "a@example.com", time.Hour)
	require.NoError(t, err)
	expired, _, err := GenerateToken("secret", 1, "a@example.com", -time.Minute)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		ReaderID:         1,
		RegisteredClaims: jwt.RegisteredClaims{ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	noneStr, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct {
		secret, token string
	}{
		"wrong secret": {"other", valid},
		"expired":      {"secret", expired},
		"garbage":      {"secret", "not.a.token"},
		"alg none":     {"secret", noneStr},
		"empty secret": {"", valid},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}
}
