package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProfileChangesChannel carries the UID of every profile whose flags changed.
const ProfileChangesChannel = "profile_changes"

func onboardingKey(deviceID string) string { return "onboarding:" + deviceID }
func revokedKey(tokenID string) string     { return "revoked:" + tokenID }
func attemptsKey(email string) string      { return "login_attempts:" + email }

// SetOnboardingCompleted persists the flag without expiry.
func (s *Service) SetOnboardingCompleted(ctx context.Context, deviceID string, done bool) error {
	if !done {
		return s.Redis.Del(ctx, onboardingKey(deviceID)).Err()
	}
	return s.Redis.Set(ctx, onboardingKey(deviceID), "true", 0).Err()
}

func (s *Service) HasCompletedOnboarding(ctx context.Context, deviceID string) (bool, error) {
	val, err := s.Redis.Get(ctx, onboardingKey(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// RevokeToken remembers a signed-out token until it would have expired anyway.
func (s *Service) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.Redis.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (s *Service) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.Redis.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RegisterFailedLogin counts a failed sign-in. The window starts at the first failure.
func (s *Service) RegisterFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := attemptsKey(email)
	n, err := s.Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.Redis.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *Service) FailedLoginCount(ctx context.Context, email string) (int64, error) {
	n, err := s.Redis.Get(ctx, attemptsKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (s *Service) ResetFailedLogins(ctx context.Context, email string) error {
	return s.Redis.Del(ctx, attemptsKey(email)).Err()
}

// PublishProfileChange announces that a profile must be fetched again.
func (s *Service) PublishProfileChange(ctx context.Context, uid string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Publish(ctx, ProfileChangesChannel, uid).Err()
}

func (s *Service) SubscribeProfileChanges(ctx context.Context) *redis.PubSub {
	return s.Redis.Subscribe(ctx, ProfileChangesChannel)
}
