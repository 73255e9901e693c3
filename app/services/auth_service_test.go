package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories/mocks"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *mocks.UserRepository, *sessions.TokenManager) {
	t.Helper()
	users := new(mocks.UserRepository)
	tokens, err := sessions.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(users, tokens, zerolog.Nop()), users, tokens
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAuthService_AuthorizeAdmin(t *testing.T) {
	t.Run("admin with correct password", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByEmail", mock.Anything, "admin@shop.ir").
			Return(&models.User{ID: "a1", Email: "admin@shop.ir", Password: mustHash(t, "pass"), Role: models.RoleAdmin}, nil)

		user, err := svc.AuthorizeAdmin(context.Background(), LoginInput{Email: " Admin@Shop.ir ", Password: "pass"})

		require.NoError(t, err)
		assert.Equal(t, "a1", user.ID)
	})

	t.Run("non-admin with correct password", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByEmail", mock.Anything, "user@shop.ir").
			Return(&models.User{ID: "u1", Password: mustHash(t, "pass"), Role: models.RoleUser}, nil)

		_, err := svc.AuthorizeAdmin(context.Background(), LoginInput{Email: "user@shop.ir", Password: "pass"})

		assertStatus(t, err, http.StatusUnauthorized)
		appErr, _ := helpers.AsAppError(err)
		assert.Equal(t, msgInvalidCredentials, appErr.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByEmail", mock.Anything, "admin@shop.ir").
			Return(&models.User{ID: "a1", Password: mustHash(t, "pass"), Role: models.RoleAdmin}, nil)

		_, err := svc.AuthorizeAdmin(context.Background(), LoginInput{Email: "admin@shop.ir", Password: "nope"})

		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByEmail", mock.Anything, "ghost@shop.ir").Return(nil, nil)

		_, err := svc.AuthorizeAdmin(context.Background(), LoginInput{Email: "ghost@shop.ir", Password: "x"})

		assertStatus(t, err, http.StatusUnauthorized)
	})
}

func TestAuthService_AuthorizePhone(t *testing.T) {
	t.Run("rejects numbers matching neither pattern", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		for _, phone := range []string{"0912123456", "08121234567", "9121234567", "phone"} {
			_, err := svc.AuthorizePhone(context.Background(), phone)
			assertStatus(t, err, http.StatusBadRequest)
		}
		users.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
	})

	t.Run("accepts known phone", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByPhone", mock.Anything, "09121234567").Return(&models.User{ID: "u1"}, nil)

		user, err := svc.AuthorizePhone(context.Background(), "+98 912 123 4567")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("accepts landline", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByPhone", mock.Anything, "0712345678").Return(&models.User{ID: "u2"}, nil)

		_, err := svc.AuthorizePhone(context.Background(), "0712345678")

		require.NoError(t, err)
	})

	t.Run("unknown phone", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByPhone", mock.Anything, "09120000000").Return(nil, nil)

		_, err := svc.AuthorizePhone(context.Background(), "09120000000")

		assertStatus(t, err, http.StatusUnauthorized)
	})
}

func TestAuthService_LoginPhone_AlwaysIssuesUserRole(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	phone := "09121234567"
	users.On("FindByPhone", mock.Anything, phone).Return(&models.User{ID: "a1", Role: models.RoleAdmin, Phone: &phone}, nil)

	session, err := svc.LoginPhone(context.Background(), PhoneLoginInput{Phone: phone})
	require.NoError(t, err)

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, phone, claims.Phone)
}

func TestAuthService_LoginAdmin_IssuesAdminRole(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	users.On("FindByEmail", mock.Anything, "admin@shop.ir").
		Return(&models.User{ID: "a1", Password: mustHash(t, "pass"), Role: models.RoleAdmin}, nil)

	session, err := svc.LoginAdmin(context.Background(), LoginInput{Email: "admin@shop.ir", Password: "pass"})
	require.NoError(t, err)

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}
