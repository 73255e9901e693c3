package services

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/rs/zerolog"
)

const (
	msgInvalidCredentials = "ایمیل یا رمز عبور اشتباه است"
	msgPhoneNotRegistered = "کاربری با این شماره تلفن یافت نشد"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PhoneLoginInput struct {
	Phone string `json:"phone" validate:"required"`
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users  repositories.UserRepositoryImpl
	tokens *sessions.TokenManager
	logger zerolog.Logger
}

func NewAuthService(users repositories.UserRepositoryImpl, tokens *sessions.TokenManager, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// AuthorizeAdmin checks email, password and the ADMIN role. Every failure
// gets the same message.
func (s *AuthService) AuthorizeAdmin(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(in.Password)) || user.Role != models.RoleAdmin {
		s.logger.Warn().Str("email", in.Email).Msg("admin login rejected")
		return nil, helpers.NewUnauthorized(msgInvalidCredentials)
	}
	return user, nil
}

// AuthorizePhone looks the customer up by phone. There is no possession
// proof, so the resulting session is always issued with role USER.
func (s *AuthService) AuthorizePhone(ctx context.Context, rawPhone string) (*models.User, error) {
	phone := helpers.NormalizePhone(rawPhone)
	if !helpers.ValidPhone(phone) {
		return nil, helpers.NewBadRequest(helpers.MsgInvalidPhone)
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, helpers.NewUnauthorized(msgPhoneNotRegistered)
	}
	return user, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, in LoginInput) (*Session, error) {
	user, err := s.AuthorizeAdmin(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(user, user.Role)
}

func (s *AuthService) LoginPhone(ctx context.Context, in PhoneLoginInput) (*Session, error) {
	user, err := s.AuthorizePhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	return s.issue(user, models.RoleUser)
}

// CurrentUser resolves the claims to a stored user, or nil when the account is gone.
func (s *AuthService) CurrentUser(ctx context.Context, claims *sessions.Claims) (*models.User, error) {
	if claims == nil {
		return nil, nil
	}
	return s.users.FindByID(ctx, claims.UserID)
}

func (s *AuthService) issue(user *models.User, role string) (*Session, error) {
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}
	token, err := s.tokens.Issue(user.ID, role, phone)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Str("role", role).Msg("session issued")
	return &Session{Token: token, User: user}, nil
}
