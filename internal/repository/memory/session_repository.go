package memory

import (
	"context"
	"sync"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps interview sessions in process memory. Sessions
// never expire; they live as long as the process does.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRepository() contract.InterviewSessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) FindByKey(ctx context.Context, sessionKey string) (*entity.InterviewSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if x, found := r.cache.Get(sessionKey); found {
		return x.(*entity.InterviewSession).Clone(), nil
	}
	return nil, nil
}

func (r *SessionRepository) Upsert(ctx context.Context, session *entity.InterviewSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Set(session.SessionKey, session.Clone(), cache.NoExpiration)
	return nil
}

func (r *SessionRepository) CompareAndSwap(ctx context.Context, session *entity.InterviewSession, expectedVersion int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(session.SessionKey)
	if !found || x.(*entity.InterviewSession).Version != expectedVersion {
		return false, nil
	}

	stored := session.Clone()
	stored.Version = expectedVersion + 1
	r.cache.Set(session.SessionKey, stored, cache.NoExpiration)
	session.Version = stored.Version
	return true, nil
}

func (r *SessionRepository) Count(ctx context.Context) (int64, error) {
	return int64(r.cache.ItemCount()), nil
}
