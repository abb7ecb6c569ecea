package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidAccessToken  = errors.New("invalid access token")
)

// Identity is the authenticated principal extracted from an access token.
type Identity struct {
	ID    uuid.UUID
	Email string
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type Config struct {
	// Secrets to sign access and refresh tokens. Required.
	AccessSecret  string
	RefreshSecret string

	// Token lifetimes. Zero means the default (15m access, 7d refresh).
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenService issues and verifies access/refresh token pairs. Refresh tokens
// are single-use: every successful refresh rotates the pair and evicts the old
// token from the registry, which is the revocation point pure signature
// verification cannot provide.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	registry Registry
	users    repository.UserRepositoryInterface
}

func NewTokenService(cfg Config, registry Registry, users repository.UserRepositoryInterface) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		registry:      registry,
		users:         users,
	}, nil
}

// Login authenticates a registered email (matched case-insensitively) and
// issues a token pair for the user.
func (s *TokenService) Login(ctx context.Context, email string) (*model.User, TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, TokenPair{}, err
	}
	if user == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.IssueTokens(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// IssueTokens signs an access token carrying the user id and email, and a
// refresh token carrying the user id only. The refresh token is registered
// as a side effect.
func (s *TokenService) IssueTokens(user *model.User) (TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Email: user.Email,
	})
	accessToken, err := access.SignedString(s.accessSecret)
	if err != nil {
		return TokenPair{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
	})
	refreshToken, err := refresh.SignedString(s.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	s.registry.Put(refreshToken, user.ID)

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a refresh token for a fresh pair. The token is evicted
// from the registry up front in a single atomic step, so it cannot be used
// twice: of two concurrent calls with the same token exactly one wins.
// Failures past that point leave the token evicted.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*model.User, TokenPair, error) {
	ownerID, ok := s.registry.Remove(refreshToken)
	if !ok {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(refreshToken, claims,
		func(t *jwt.Token) (any, error) { return s.refreshSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	// Registry owner and embedded subject must agree; a mismatch means the
	// token was tampered with or replayed across sessions.
	if subject != ownerID {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if user == nil {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := s.IssueTokens(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Logout revokes a refresh token. Revoking an unknown token is not an error.
func (s *TokenService) Logout(refreshToken string) {
	s.registry.Remove(refreshToken)
}

// VerifyAccessToken checks signature and expiry and returns the embedded
// identity.
func (s *TokenService) VerifyAccessToken(tokenString string) (Identity, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.accessSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Identity{}, ErrInvalidAccessToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || claims.Email == "" {
		return Identity{}, ErrInvalidAccessToken
	}

	return Identity{ID: id, Email: claims.Email}, nil
}
