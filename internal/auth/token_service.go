package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// refreshTokenType is the payload marker distinguishing refresh tokens from
// access tokens. A refresh token presented without it is rejected even when
// its signature is valid.
const refreshTokenType = "refresh"

var (
	// ErrInvalidToken is returned when a token fails signature, expiry or
	// shape verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotRefreshToken is returned when a token verifies against the
	// refresh secret but lacks the refresh type marker.
	ErrNotRefreshToken = errors.New("token is not a refresh token")
)

// Claims represents the JWT payload for both token families. Type is only set
// on refresh tokens.
type Claims struct {
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies access and refresh tokens. The two
// families are signed with independent secrets so neither can stand in for
// the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a token service with the given secrets and lifetimes.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL returns the configured refresh token lifetime. The server-side
// expiry stamp on persisted rows is derived from the same value so the two
// never drift apart.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// GenerateAccessToken signs a short-lived access token for the user.
func (s *TokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// GenerateRefreshToken signs a refresh token carrying the refresh type marker.
// The jti makes every token distinct even when two are minted for the same
// user within the one-second timestamp resolution.
func (s *TokenService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	claims := &Claims{
		Type: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.refreshSecret)
}

// ParseAccessToken verifies an access token and returns its subject.
func (s *TokenService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.parse(tokenString, s.accessSecret)
	if err != nil {
		return uuid.Nil, err
	}
	return subjectID(claims)
}

// ParseRefreshToken verifies a refresh token, enforces the type marker and
// returns its subject.
func (s *TokenService) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.parse(tokenString, s.refreshSecret)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.Type != refreshTokenType {
		return uuid.Nil, ErrNotRefreshToken
	}
	return subjectID(claims)
}

func (s *TokenService) parse(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func subjectID(claims *Claims) (uuid.UUID, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// HashToken returns the SHA-256 hex digest of a token. Only this digest is
// ever persisted, so a stolen refresh-token row cannot be replayed without
// the signing secret.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
