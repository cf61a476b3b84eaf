package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"book-manage/internal/domains/user/model"
	"book-manage/internal/domains/user/repository"
	"book-manage/internal/shared"
	"book-manage/pkg/cache"
	"book-manage/pkg/jwt"
	"book-manage/pkg/logger"
)

// bcrypt cost = 12: balance giữa security và performance
const bcryptCost = 12

// comparePassword is swapped in tests.
var comparePassword = bcrypt.CompareHashAndPassword

// dummyHash is compared for unknown usernames so both branches pay the bcrypt cost.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("book-manage-dummy-password"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
})

// AuthService định nghĩa sign-in / sign-out contract
type AuthService interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req model.LoginRequest) (string, *jwt.Claims, error)
	// Logout revokes the session until its token would have expired anyway.
	Logout(ctx context.Context, claims *jwt.Claims) error
	// IsRevoked reports whether a session was signed out.
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	// EnsureUser creates the account when username is not taken yet.
	EnsureUser(ctx context.Context, username, password, authority string) error
}

type authService struct {
	repo     repository.UserRepository
	tokens   *jwt.Manager
	cache    cache.Cache
	throttle *LoginThrottle
}

// NewAuthService - Inject dependencies qua constructor
func NewAuthService(repo repository.UserRepository, tokens *jwt.Manager, c cache.Cache, throttle *LoginThrottle) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		cache:    c,
		throttle: throttle,
	}
}

func revokedKey(sessionID string) string {
	return "session_revoked:" + sessionID
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (string, *jwt.Claims, error) {
	defer logger.Timed("AuthService.Login")()

	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return "", nil, model.ErrInvalidCredentials
	}

	// 2. CHECK LOCKOUT
	if s.throttle.Locked(ctx, req.Username) {
		return "", nil, model.ErrAccountLocked
	}

	// 3. FIND USER
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		_ = comparePassword(dummyHash(), []byte(req.Password))
		s.throttle.RecordFailure(ctx, req.Username)
		return "", nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	// 4. VERIFY PASSWORD
	if err := comparePassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.throttle.RecordFailure(ctx, req.Username)
		return "", nil, model.ErrInvalidCredentials
	}

	// 5. CHECK USER STATUS
	if !u.Enabled {
		return "", nil, model.ErrUserDisabled
	}

	// 6. ISSUE SESSION
	token, claims, err := s.tokens.GenerateSessionToken(u.Username, u.Authority)
	if err != nil {
		return "", nil, err
	}
	s.throttle.Reset(ctx, u.Username)

	log.Info().Str("username", u.Username).Str("session_id", claims.SessionID()).Msg("[AuthService] Signed in")
	return token, claims, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	ttl := s.tokens.TTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, revokedKey(claims.SessionID()), "1", ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	log.Info().Str("username", claims.Username).Str("session_id", claims.SessionID()).Msg("[AuthService] Signed out")
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	return s.cache.Exists(ctx, revokedKey(sessionID))
}

// ========================================
// SEEDING
// ========================================

func (s *authService) EnsureUser(ctx context.Context, username, password, authority string) error {
	if !shared.ValidAuthority(authority) {
		return fmt.Errorf("%w: %s", model.ErrInvalidAuthority, authority)
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.repo.Create(ctx, &model.User{
		Username:  username,
		Password:  string(hash),
		Enabled:   true,
		Authority: authority,
	})
	if errors.Is(err, model.ErrUserExists) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("username", username).Str("authority", authority).Msg("[AuthService] Seed user created")
	return nil
}
