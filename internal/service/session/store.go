package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rscf/care-fund-portal/internal/domain"
	"github.com/rscf/care-fund-portal/pkg/errors"
	"go.uber.org/zap"
)

const keyPrefix = "session:"

// KV is the slice of the cache service the session store needs. Tests
// substitute an in-memory fake.
type KV interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Store persists one Session per visitor in redis, keyed by the id carried
// in the session cookie. Sessions expire server-side via redis TTL.
type Store struct {
	kv     KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(kv KV, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		ttl:    ttl,
		logger: logger,
	}
}

// Create starts a fresh visitor session in its default state: not
// authenticated, login screen, no user context.
func (s *Store) Create(ctx context.Context) (*domain.Session, error) {
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Screen:    domain.ScreenLogin,
		CreatedAt: time.Now(),
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug("Session created", zap.String("session_id", sess.ID))
	return sess, nil
}

// Get loads the session for the given id, or nil when it does not exist or
// has expired.
func (s *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, nil
	}

	var sess domain.Session
	found, err := s.kv.Get(ctx, keyPrefix+id, &sess)
	if err != nil {
		return nil, errors.NewSessionError("failed to load session", id, err)
	}
	if !found {
		return nil, nil
	}
	return &sess, nil
}

// Save writes the session back, refreshing its TTL.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	if err := s.kv.Set(ctx, keyPrefix+sess.ID, sess, s.ttl); err != nil {
		return errors.NewSessionError("failed to save session", sess.ID, err)
	}
	return nil
}

// Reset logs the visitor out: fields back to defaults, stored record
// cleared, then persisted.
func (s *Store) Reset(ctx context.Context, sess *domain.Session) error {
	sess.Logout()
	if err := s.Save(ctx, sess); err != nil {
		return err
	}

	s.logger.Debug("Session reset", zap.String("session_id", sess.ID))
	return nil
}

// Delete removes the session entirely.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.kv.Del(ctx, keyPrefix+id); err != nil {
		return errors.NewSessionError("failed to delete session", id, err)
	}
	return nil
}
