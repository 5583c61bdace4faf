package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAuthenticator_IssueAndVerify(t *testing.T) {
	a := NewAuthenticator(testSecret, "storefront", time.Hour)

	token, err := a.Issue(Identity{UserID: "user-1", Email: "a@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "a@example.com", id.Email)
}

func TestAuthenticator_IssueRequiresUserID(t *testing.T) {
	a := NewAuthenticator(testSecret, "storefront", time.Hour)

	_, err := a.Issue(Identity{Email: "a@example.com"})
	assert.Error(t, err)
}

func TestAuthenticator_Verify_Rejects(t *testing.T) {
	a := NewAuthenticator(testSecret, "storefront", time.Hour)
	valid, err := a.Issue(Identity{UserID: "user-1"})
	require.NoError(t, err)

	expired := NewAuthenticator(testSecret, "storefront", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(Identity{UserID: "user-1"})
	require.NoError(t, err)

	otherIssuer, err := NewAuthenticator(testSecret, "someone-else", time.Hour).Issue(Identity{UserID: "user-1"})
	require.NoError(t, err)

	otherSecret, err := NewAuthenticator("ffffffffffffffffffffffffffffffff", "storefront", time.Hour).Issue(Identity{UserID: "user-1"})
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "storefront",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Empty token", token: ""},
		{name: "Garbage", token: "not-a-token"},
		{name: "Tampered signature", token: valid + "x"},
		{name: "Expired", token: expiredToken},
		{name: "Wrong issuer", token: otherIssuer},
		{name: "Wrong secret", token: otherSecret},
		{name: "Unsigned", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	_, ok = FromContext(WithIdentity(context.Background(), Identity{}))
	assert.False(t, ok, "identity without a user id is not signed in")

	ctx := WithIdentity(context.Background(), Identity{UserID: "user-1", Email: "a@example.com"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", id.UserID)
}
