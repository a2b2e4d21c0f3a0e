package contract

import (
	"context"

	"github.com/dhanushgc/HireMind/internal/entity"
)

// InterviewSessionRepository persists sessions by primary key. There is no
// delete: sessions are long-lived records.
type InterviewSessionRepository interface {
	// FindByKey returns (nil, nil) when no row exists.
	FindByKey(ctx context.Context, sessionKey string) (*entity.InterviewSession, error)
	// Upsert writes the whole row, replacing any previous content for the key.
	Upsert(ctx context.Context, session *entity.InterviewSession) error
	// CompareAndSwap writes session only if the stored version still equals
	// expectedVersion. It reports false when another writer got there first.
	CompareAndSwap(ctx context.Context, session *entity.InterviewSession, expectedVersion int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}
