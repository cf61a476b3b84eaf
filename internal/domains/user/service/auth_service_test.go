package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"book-manage/internal/domains/user/model"
	"book-manage/internal/domains/user/repository"
	"book-manage/internal/infrastructure/cache"
	"book-manage/pkg/jwt"
)

type fixture struct {
	svc    AuthService
	repo   repository.UserRepository
	tokens *jwt.Manager
	mr     *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCacheFromOptions(&redis.Options{Addr: mr.Addr()}, "test")
	t.Cleanup(func() { _ = rc.Close() })

	repo := repository.NewMemoryUserRepository()
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := NewAuthService(repo, tokens, rc, NewLoginThrottle(rc, 5, 15*time.Minute))

	require.NoError(t, svc.EnsureUser(context.Background(), "user", "pass", "ROLE_USER"))
	return &fixture{svc: svc, repo: repo, tokens: tokens, mr: mr}
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, claims, err := f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user", claims.Username)
	assert.Equal(t, "ROLE_USER", claims.Authority)

	parsed, err := f.tokens.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.SessionID(), parsed.SessionID())
}

func TestAuthService_LoginRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, _, err = f.svc.Login(ctx, model.LoginRequest{Username: "ghost", Password: "pass"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, _, err = f.svc.Login(ctx, model.LoginRequest{})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUserStillComparesHash(t *testing.T) {
	f := newFixture(t)

	var hashes [][]byte
	orig := comparePassword
	comparePassword = func(hash, password []byte) error {
		hashes = append(hashes, hash)
		return orig(hash, password)
	}
	t.Cleanup(func() { comparePassword = orig })

	_, _, err := f.svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "pass"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	require.Len(t, hashes, 1)
	cost, err := bcrypt.Cost(hashes[0])
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)
}

func TestAuthService_LoginDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.repo.Create(ctx, &model.User{
		Username:  "gone",
		Password:  string(hash),
		Enabled:   false,
		Authority: "ROLE_USER",
	}))

	_, _, err = f.svc.Login(ctx, model.LoginRequest{Username: "gone", Password: "secret"})
	assert.ErrorIs(t, err, model.ErrUserDisabled)
}

func TestAuthService_LockoutAfterFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "wrong"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	}

	_, _, err := f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "pass"})
	assert.ErrorIs(t, err, model.ErrAccountLocked)

	f.mr.FastForward(16 * time.Minute)
	_, _, err = f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "pass"})
	assert.NoError(t, err)
}

func TestAuthService_SuccessResetsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _, _ = f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "wrong"})
	}
	_, _, err := f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "pass"})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("test:failed_login:user"))

	_, _, err = f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, _, err = f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "pass"})
	assert.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, claims, err := f.svc.Login(ctx, model.LoginRequest{Username: "user", Password: "pass"})
	require.NoError(t, err)

	revoked, err := f.svc.IsRevoked(ctx, claims.SessionID())
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.svc.Logout(ctx, claims))
	revoked, err = f.svc.IsRevoked(ctx, claims.SessionID())
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := f.mr.TTL("test:session_revoked:" + claims.SessionID())
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestAuthService_EnsureUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// existing user is left untouched
	before, err := f.repo.FindByUsername(ctx, "user")
	require.NoError(t, err)
	require.NoError(t, f.svc.EnsureUser(ctx, "user", "other", "ROLE_ADMIN"))
	after, err := f.repo.FindByUsername(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.ErrorIs(t, f.svc.EnsureUser(ctx, "x", "y", "ROLE_ROOT"), model.ErrInvalidAuthority)
}
