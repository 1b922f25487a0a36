// File: internal/session/store.go
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v7"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"salehunt_backend/internal/config"
)

const redisKeyPrefix = "session:"

// Store keeps session records in two tiers: an in-process cache for the hot
// path and Redis so that every instance sees the same session state. The
// Redis tier is optional; without it the store degrades to single-instance
// semantics.
type Store struct {
	local  *gocache.Cache
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	bus    *EventBus
}

// NewRedisClient connects to Redis when an address is configured. A missing
// address is not an error; the session store runs on the local tier alone.
func NewRedisClient(cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is not set. Session store will use the in-process tier only.")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping().Err(); err != nil {
		logger.Error("Failed to ping Redis", zap.Error(err), zap.String("addr", cfg.RedisAddr))
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("Redis client connected", zap.String("addr", cfg.RedisAddr))
	return client, nil
}

// NewStore creates a session store. redisClient may be nil.
func NewStore(cfg *config.Config, redisClient *redis.Client, bus *EventBus, logger *zap.Logger) *Store {
	ttl := cfg.SessionCacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		local:  gocache.New(ttl, 2*ttl),
		redis:  redisClient,
		ttl:    ttl,
		logger: logger.Named("session_store"),
		bus:    bus,
	}
}

// Put stores or refreshes a session record in both tiers.
func (s *Store) Put(sess *Session) error {
	s.local.Set(sess.FirebaseUID, sess, s.ttl)

	if s.redis == nil {
		return nil
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.redis.Set(redisKeyPrefix+sess.FirebaseUID, payload, s.ttl).Err(); err != nil {
		// The local tier already holds the record; a Redis hiccup must not
		// sign the user out.
		s.logger.Warn("Failed to write session to Redis", zap.Error(err), zap.String("uid", sess.FirebaseUID))
	}
	return nil
}

// Get returns the session for a provider uid, or nil when none exists.
func (s *Store) Get(firebaseUID string) (*Session, error) {
	if cached, found := s.local.Get(firebaseUID); found {
		return cached.(*Session), nil
	}

	if s.redis == nil {
		return nil, nil
	}
	payload, err := s.redis.Get(redisKeyPrefix + firebaseUID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from redis: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	s.local.Set(firebaseUID, &sess, s.ttl)
	return &sess, nil
}

// Delete removes the session from both tiers.
func (s *Store) Delete(firebaseUID string) error {
	s.local.Delete(firebaseUID)
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(redisKeyPrefix + firebaseUID).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

// MarkRecovery flags an existing session as having entered through a
// password recovery link. The flag survives Put refreshes because callers go
// through this store rather than rebuilding sessions from scratch.
func (s *Store) MarkRecovery(firebaseUID string) error {
	sess, err := s.Get(firebaseUID)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}
	sess.PasswordRecovery = true
	return s.Put(sess)
}

// ClearRecovery unflags a session after the user has set a new password.
// Clearing a session that was never flagged, or no longer exists, is a no-op.
func (s *Store) ClearRecovery(firebaseUID string) error {
	sess, err := s.Get(firebaseUID)
	if err != nil {
		return err
	}
	if sess == nil || !sess.PasswordRecovery {
		return nil
	}
	sess.PasswordRecovery = false
	return s.Put(sess)
}

// Bus exposes the auth event bus tied to this store.
func (s *Store) Bus() *EventBus {
	return s.bus
}
