package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/repository/contract"
	"github.com/dhanushgc/HireMind/pkg/interview"
	"github.com/dhanushgc/HireMind/pkg/lock"

	"github.com/google/uuid"
)

const maxCASAttempts = 5

var errInconsistentSession = errors.New("mutation left session lists with unequal lengths")

// Mutator edits a session in place and reports whether anything changed.
// Returning false skips the write.
type Mutator func(session *entity.InterviewSession) (changed bool, err error)

// SessionStore owns every interview session. All writes to one key are
// serialized through the locker.
type SessionStore interface {
	Get(ctx context.Context, sessionKey string) (*entity.InterviewSession, error)
	// Put replaces the whole session for its key and gives it a new
	// GenerationId.
	Put(ctx context.Context, session *entity.InterviewSession) error
	// Update runs mutate against the current session under the key lock and
	// persists the result. It returns the session as stored.
	Update(ctx context.Context, sessionKey string, mutate Mutator) (*entity.InterviewSession, error)
	Count(ctx context.Context) (int64, error)
}

type sessionStore struct {
	repo   contract.InterviewSessionRepository
	locker lock.Locker
	logger logger.ILogger
	now    func() time.Time
}

func NewSessionStore(repo contract.InterviewSessionRepository, locker lock.Locker, logger logger.ILogger) SessionStore {
	return &sessionStore{
		repo:   repo,
		locker: locker,
		logger: logger,
		now:    time.Now,
	}
}

func (s *sessionStore) Get(ctx context.Context, sessionKey string) (*entity.InterviewSession, error) {
	session, err := s.repo.FindByKey(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionKey, err)
	}
	if session == nil {
		return nil, interview.ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionStore) Put(ctx context.Context, session *entity.InterviewSession) error {
	if !session.Consistent() {
		return errInconsistentSession
	}

	unlock, err := s.locker.Lock(ctx, session.SessionKey)
	if err != nil {
		return fmt.Errorf("lock session %s: %w", session.SessionKey, err)
	}
	defer unlock()

	existing, err := s.repo.FindByKey(ctx, session.SessionKey)
	if err != nil {
		return fmt.Errorf("load session %s: %w", session.SessionKey, err)
	}

	// Keep the version moving forward so a writer holding the old version
	// loses its compare-and-swap.
	session.Version = 0
	if existing != nil {
		session.Version = existing.Version + 1
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now()
	}
	session.GenerationId = uuid.NewString()

	if err := s.repo.Upsert(ctx, session); err != nil {
		return fmt.Errorf("write session %s: %w", session.SessionKey, err)
	}

	s.logger.Info("Store", "Session replaced", map[string]interface{}{
		"session_key": session.SessionKey,
		"questions":   session.Len(),
		"replaced":    existing != nil,
	})
	return nil
}

func (s *sessionStore) Update(ctx context.Context, sessionKey string, mutate Mutator) (*entity.InterviewSession, error) {
	unlock, err := s.locker.Lock(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("lock session %s: %w", sessionKey, err)
	}
	defer unlock()

	// The lock covers this process (or every process with a shared lock
	// backend). CAS catches writers outside it.
	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		current, err := s.Get(ctx, sessionKey)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		changed, err := mutate(next)
		if err != nil {
			return nil, err
		}
		if !changed {
			return current, nil
		}
		if !next.Consistent() {
			return nil, errInconsistentSession
		}

		ok, err := s.repo.CompareAndSwap(ctx, next, current.Version)
		if err != nil {
			return nil, fmt.Errorf("write session %s: %w", sessionKey, err)
		}
		if ok {
			return next, nil
		}

		s.logger.Warn("Store", "Concurrent write detected, retrying", map[string]interface{}{
			"session_key": sessionKey,
			"attempt":     attempt,
		})
	}

	return nil, fmt.Errorf("session %s: gave up after %d conflicting writes", sessionKey, maxCASAttempts)
}

func (s *sessionStore) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
