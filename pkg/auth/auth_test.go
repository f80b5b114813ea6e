package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeys() *Keys {
	return NewKeys("jwt-test-secret", "master-test-secret")
}

func TestToken_RoundTrip(t *testing.T) {
	k := testKeys()

	token, err := k.CreateToken("admin")
	require.NoError(t, err)

	claims, err := k.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestToken_Rejected(t *testing.T) {
	k := testKeys()
	token, err := k.CreateToken("admin")
	require.NoError(t, err)

	_, err = NewKeys("other", "master-test-secret").VerifyToken(token)
	assert.Error(t, err, "wrong secret")

	_, err = k.VerifyToken("not-a-token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwtAlgorithm, &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString(k.JWTSecret)
	require.NoError(t, err)
	_, err = k.VerifyToken(signed)
	assert.Error(t, err, "expired")
}

func TestHMACKey(t *testing.T) {
	k := testKeys()

	key := k.GenerateHMACKey("acme")
	assert.Regexp(t, `^acme\.[0-9a-f]{64}$`, key)

	userID, err := k.VerifyHMACKey(key)
	require.NoError(t, err)
	assert.Equal(t, "acme", userID)

	_, err = NewKeys("jwt-test-secret", "another").VerifyHMACKey(key)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = k.VerifyHMACKey("acme")
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)

	_, err = k.VerifyHMACKey(key + ".extra")
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)

	_, err = k.VerifyHMACKey("other." + key[len("acme."):])
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestKeyPreview(t *testing.T) {
	assert.Equal(t, "****", KeyPreview("short"))
	assert.Equal(t, "acm...cdef", KeyPreview("acme.0123456789abcdef"))
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.InitDB("", filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)

	created, err := EnsureAdminExists(db, "root", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureAdminExists(db, "someone-else", "pw")
	require.NoError(t, err)
	assert.False(t, created, "second call must not add a user")

	var user database.MasterUser
	require.NoError(t, db.Where("username = ?", "root").First(&user).Error)
	assert.True(t, CheckPasswordHash("s3cret", user.PasswordHash))
	assert.False(t, CheckPasswordHash("wrong", user.PasswordHash))
}
