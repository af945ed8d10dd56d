package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret")
	actor := Actor{
		ID:        "user-1",
		Email:     "jamie@state.mn.us",
		Role:      RoleStateUser,
		StateCode: "MN",
	}

	token, err := svc.MintToken(actor, time.Hour)
	require.NoError(t, err)

	got, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret")

	_, err := svc.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	minter := NewService("secret-a")
	verifier := NewService("secret-b")

	token, err := minter.MintToken(Actor{ID: "user-1", Role: RoleCMSUser}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := NewService("test-secret")

	token, err := svc.MintToken(Actor{ID: "user-1", Role: RoleStateUser, StateCode: "MN"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsUnknownRole(t *testing.T) {
	svc := NewService("test-secret")

	// Forge a structurally valid token carrying a role outside the model.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMintTokenRejectsInvalidRole(t *testing.T) {
	svc := NewService("test-secret")

	_, err := svc.MintToken(Actor{ID: "user-1", Role: Role("nope")}, time.Hour)
	require.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, Actor{Role: RoleStateUser}.CanSubmit())
	assert.False(t, Actor{Role: RoleStateUser}.CanUnlock())
	assert.True(t, Actor{Role: RoleCMSUser}.CanUnlock())
	assert.False(t, Actor{Role: RoleCMSUser}.CanSubmit())
	assert.True(t, Actor{Role: RoleAdminUser}.CanUnlock())
}
