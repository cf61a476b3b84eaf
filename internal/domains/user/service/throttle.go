package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"book-manage/pkg/cache"
)

// LoginThrottle counts failed sign-ins per username and locks the username
// once the limit is reached within the window.
type LoginThrottle struct {
	cache       cache.Cache
	maxAttempts int64
	window      time.Duration
}

func NewLoginThrottle(c cache.Cache, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{cache: c, maxAttempts: int64(maxAttempts), window: window}
}

func attemptKey(username string) string { return fmt.Sprintf("failed_login:%s", username) }
func lockKey(username string) string    { return fmt.Sprintf("account_locked:%s", username) }

// Locked reports whether username is currently locked out.
func (t *LoginThrottle) Locked(ctx context.Context, username string) bool {
	locked, err := t.cache.Exists(ctx, lockKey(username))
	if err != nil {
		// Redis failure non-critical
		log.Warn().Err(err).Str("username", username).Msg("[LoginThrottle] Lock check failed")
		return false
	}
	return locked
}

// RecordFailure counts one failed attempt and locks the username when the
// limit is reached. It returns the attempt count.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) int64 {
	key := attemptKey(username)

	// Increment counter
	attempts, err := t.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("[LoginThrottle] Failed to count attempt")
		return 0
	}

	// Set expiry on first attempt
	if attempts == 1 {
		if err := t.cache.Expire(ctx, key, t.window); err != nil {
			log.Warn().Err(err).Msg("[LoginThrottle] Failed to set expiry")
		}
	}

	log.Info().Str("username", username).Int64("attempts", attempts).Msg("Failed login attempts counted")

	// Lock account if threshold exceeded
	if attempts >= t.maxAttempts {
		if err := t.cache.Set(ctx, lockKey(username), "1", t.window); err != nil {
			log.Warn().Err(err).Msg("[LoginThrottle] Failed to lock account")
			return attempts
		}
		_ = t.cache.Delete(ctx, key)
		log.Warn().Str("username", username).Dur("duration", t.window).Msg("Account locked")
	}
	return attempts
}

// Reset clears the failure counter after a successful sign-in.
func (t *LoginThrottle) Reset(ctx context.Context, username string) {
	if err := t.cache.Delete(ctx, attemptKey(username)); err != nil {
		log.Warn().Err(err).Msg("[LoginThrottle] Failed to reset counter")
	}
}
