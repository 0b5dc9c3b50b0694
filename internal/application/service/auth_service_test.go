package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/sangkips/nota-perusahaan/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	env := newTestEnv(t)
	return NewAuthService(env.users, utils.NewJWTManager("test-secret", time.Hour), zap.NewNop())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		FullName:        "Siti Rahma",
		Username:        "siti",
		Email:           "Siti@Example.com",
		Password:        "rahasia",
		ConfirmPassword: "rahasia",
	})
	require.NoError(t, err)
	assert.Equal(t, "siti@example.com", user.Email)
	assert.NotEqual(t, "rahasia", user.Password)

	out, err := svc.Login(ctx, &LoginInput{Username: "siti", Password: "rahasia"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	claims, err := svc.Authenticate(out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Siti Rahma", claims.FullName)

	byEmail, err := svc.Login(ctx, &LoginInput{Username: "siti@example.com", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.User.ID)

	current, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "siti", current.Username)
	assert.Equal(t, 3600, svc.SessionTTLSeconds())
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{
		FullName:        "",
		Username:        "ab",
		Email:           "not-an-email",
		Password:        "123",
		ConfirmPassword: "1234",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Len(t, appErr.Errors, 5)
}

func TestAuthRegisterConflicts(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	in := &RegisterInput{FullName: "Siti", Username: "siti", Email: "siti@example.com", Password: "rahasia"}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.True(t, apperror.IsCode(err, http.StatusConflict))

	_, err = svc.Register(ctx, &RegisterInput{FullName: "Other", Username: "other", Email: "siti@example.com", Password: "rahasia"})
	assert.True(t, apperror.IsCode(err, http.StatusConflict))
}

func TestAuthLoginFailures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{FullName: "Siti", Username: "siti", Email: "siti@example.com", Password: "rahasia"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Username: "siti", Password: "salah123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "rahasia"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{})
	assert.True(t, apperror.IsCode(err, http.StatusBadRequest))

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestAuthExpiredSession(t *testing.T) {
	env := newTestEnv(t)
	jwtManager := utils.NewJWTManager("test-secret", -time.Minute)
	svc := NewAuthService(env.users, jwtManager, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{FullName: "Siti", Username: "siti", Email: "siti@example.com", Password: "rahasia"})
	require.NoError(t, err)
	out, err := svc.Login(ctx, &LoginInput{Username: "siti", Password: "rahasia"})
	require.NoError(t, err)

	_, err = svc.Authenticate(out.Token)
	assert.ErrorIs(t, err, apperror.ErrTokenExpired)
}
