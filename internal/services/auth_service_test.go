package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(e *env) *AuthService {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
		AdminPhones:      "0911 111 111, ",
	}
	return NewAuthService(e.db, cfg, e.accounts)
}

func register(t *testing.T, svc *AuthService, name, phone string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(&dto.RegisterRequest{Name: name, Phone: phone, Password: "password123"})
	require.NoError(t, err)
	return resp
}

func TestRegisterNormalizesPhoneAndIssuesTokens(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	resp := register(t, svc, "Lan", "091-234-5678")
	assert.Equal(t, "0912345678", resp.Account.Phone)
	assert.Equal(t, models.RoleUser, resp.Account.Role)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.Account.ID.String(), claims["sub"])
	assert.Equal(t, "0912345678", claims["phone"])

	_, err = svc.Register(&dto.RegisterRequest{Name: "Copy", Phone: "0912.345.678", Password: "password123"})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	_, err = svc.Register(&dto.RegisterRequest{Name: "Short", Phone: "0987654321", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterBootstrapsConfiguredAdmins(t *testing.T) {
	e := newEnv(t)
	resp := register(t, newAuthService(e), "Owner", "0911111111")
	assert.Equal(t, models.RoleAdmin, resp.Account.Role)
}

func TestLoginAndRefreshRotation(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)
	register(t, svc, "Lan", "0912345678")

	_, err := svc.Login(&dto.LoginRequest{Phone: "0912345678", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(&dto.LoginRequest{Phone: "0999999999", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := svc.Login(&dto.LoginRequest{Phone: "091 234 5678", Password: "password123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken, "a used refresh token is revoked")

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: rotated.RefreshToken}))
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipalAndMe(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)
	resp := register(t, svc, "Lan", "0912345678")

	p, err := svc.Principal(resp.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, "0912345678", p.Phone)
	assert.False(t, p.IsAdmin())

	me, err := svc.Me(p)
	require.NoError(t, err)
	assert.Equal(t, "Lan", me.Name)

	_, err = svc.Principal(uuid.New())
	assert.Error(t, err)
	_, err = svc.Me(anonymous())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSetRole(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)
	resp := register(t, svc, "Lan", "0912345678")

	promoted, err := svc.SetRole(e.admin, "091-234-5678", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)
	assert.Equal(t, resp.Account.ID, promoted.ID)

	_, err = svc.SetRole(e.admin, e.admin.Phone, models.RoleUser)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.SetRole(e.admin, "0912345678", "owner")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetRole(e.admin, "0987654321", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetRole(stranger(), "0912345678", models.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
}
