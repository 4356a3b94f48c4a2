package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tennistrivia/internal/auth"
	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

const bcryptCost = 10

// TokenPair bundles the tokens issued by register, login and refresh.
// ExpiresIn is the configured access-token lifetime label (e.g. "15m").
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// AuthService owns the account and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, email, password string, displayName *string) (*model.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tokens    *auth.TokenService
	expiresIn string
}

// NewAuthService creates a new authentication service. expiresIn is the
// access-token lifetime label echoed back to clients.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, tokens *auth.TokenService, expiresIn string) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		expiresIn: expiresIn,
	}
}

// Register creates a new user with a hashed password and issues a token pair.
func (s *authService) Register(ctx context.Context, email, password string, displayName *string) (*model.User, *TokenPair, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, nil, errors.Conflict("Email already registered", "EMAIL_EXISTS")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  displayName,
	}
	// Two registers for the same email can race past the existence check;
	// the unique index settles it, so map its violation to the same conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, errors.Conflict("Email already registered", "EMAIL_EXISTS")
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates a user. Unknown email and wrong password yield the same
// generic 401 so accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, errors.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, errors.Unauthorized("Invalid email or password")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: one use is always destructive, whether it
// succeeds or fails.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token")
	}

	tokenHash := auth.HashToken(refreshToken)
	stored, err := s.tokenRepo.FindByHashAndUser(ctx, tokenHash, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("look up refresh token: %w", err)
	}
	if stored.ExpiresAt.Before(time.Now()) {
		// best effort; a lost race on double delete is harmless
		_ = s.tokenRepo.DeleteByID(ctx, stored.ID)
		return nil, errors.Unauthorized("Invalid or expired refresh token")
	}

	if err := s.tokenRepo.DeleteByID(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired refresh token")
	}
	return s.issueTokens(ctx, user)
}

// Logout deletes every stored row matching the token's hash. Logging out an
// already-absent token succeeds.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.DeleteByHash(ctx, auth.HashToken(refreshToken))
}

// issueTokens mints an access+refresh pair and persists the refresh token's
// hash with a server-side expiry matching the token's own.
func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	row := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: auth.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.tokenRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.expiresIn,
	}, nil
}
