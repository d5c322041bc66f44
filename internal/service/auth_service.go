package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// TokenPair is what every successful login hands back.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type AuthService struct {
	users     ports.UserRepository
	jwt       *util.JWTManager
	googleAud string
}

func NewAuthService(userRepo ports.UserRepository, jwtManager *util.JWTManager, googleAud string) *AuthService {
	return &AuthService{users: userRepo, jwt: jwtManager, googleAud: googleAud}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	verr := &ValidationError{}
	if email == "" {
		verr.add("email", "is required")
	} else if !emailPattern.MatchString(email) {
		verr.add("email", "is not a valid email address")
	}
	if err := util.ValidatePassword(password); err != nil {
		verr.add("password", err.Error())
	}
	if err := verr.orNil(); err != nil {
		return nil, nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LoginWithGoogle validates the Google ID token, links or creates the
// account and issues a token pair.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*domain.User, *TokenPair, error) {
	payload, err := idtoken.Validate(ctx, idTok, s.googleAud)
	if err != nil {
		return nil, nil, ErrInvalidGoogleToken
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, nil, ErrInvalidGoogleToken
	}
	googleID := payload.Subject

	user, err := s.users.FindByGoogleID(ctx, googleID)
	if err != nil && !isNotFound(err) {
		return nil, nil, err
	}
	if user == nil || isNotFound(err) {
		user, err = s.users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			if err := s.users.UpdateGoogleID(ctx, user.ID, googleID); err != nil {
				return nil, nil, err
			}
			user.GoogleID = &googleID
		case isNotFound(err):
			user = &domain.User{
				Email:    strings.ToLower(email),
				GoogleID: &googleID,
				Role:     domain.RoleUser,
			}
			if err := s.users.Create(ctx, user); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, err
		}
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh trades a valid refresh token for a new pair. The stored token
// is compared so a stolen-then-rotated token stops working.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.Parse(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefresh
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, accessExp, err := s.jwt.GenerateAccess(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.jwt.GenerateRefresh(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
