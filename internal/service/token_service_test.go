package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
	appErrors "github.com/noah-isme/itinerary-planner-api/pkg/errors"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret", Expiry: time.Hour})
	token, expiresAt, err := svc.Issue(models.UserInfo{ID: "user-1", Email: "ana@example.com", Role: models.RoleTraveler})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleTraveler, claims.Role)
	assert.Equal(t, "itinerary-planner-api", claims.Issuer)
}

func TestTokenServiceRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenService(TokenConfig{Secret: "one"})
	validator := NewTokenService(TokenConfig{Secret: "two"})

	token, _, err := issuer.Issue(models.UserInfo{ID: "user-1", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret", Expiry: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Issue(models.UserInfo{ID: "user-1", Role: models.RoleTraveler})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenServiceRejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret"})
	claims := &models.JWTClaims{UserID: "user-1", Role: models.RoleAdmin}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestTokenServiceIssueValidation(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "s3cret"})
	_, _, err := svc.Issue(models.UserInfo{Role: models.RoleAdmin})
	assert.Error(t, err)
	_, _, err = svc.Issue(models.UserInfo{ID: "user-1", Role: "GUIDE"})
	assert.Error(t, err)
}
