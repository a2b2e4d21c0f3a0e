package implementation

import (
	"context"
	"errors"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/mapper"
	"github.com/dhanushgc/HireMind/internal/model"
	"github.com/dhanushgc/HireMind/internal/repository/contract"
	"github.com/dhanushgc/HireMind/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterviewSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewInterviewSessionRepository(db *gorm.DB) contract.InterviewSessionRepository {
	return &InterviewSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *InterviewSessionRepositoryImpl) FindByKey(ctx context.Context, sessionKey string) (*entity.InterviewSession, error) {
	var m model.InterviewSession
	query := specification.BySessionKey{SessionKey: sessionKey}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *InterviewSessionRepositoryImpl) Upsert(ctx context.Context, session *entity.InterviewSession) error {
	m := r.mapper.SessionToModel(session)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"candidate_id", "job_id", "questions", "answers", "categories",
			"context", "version", "generation_id", "created_at", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *InterviewSessionRepositoryImpl) CompareAndSwap(ctx context.Context, session *entity.InterviewSession, expectedVersion int64) (bool, error) {
	m := r.mapper.SessionToModel(session)
	result := r.db.WithContext(ctx).
		Model(&model.InterviewSession{}).
		Where("session_key = ? AND version = ?", session.SessionKey, expectedVersion).
		Updates(map[string]interface{}{
			"questions":  m.Questions,
			"answers":    m.Answers,
			"categories": m.Categories,
			"context":    m.Context,
			"version":    expectedVersion + 1,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	session.Version = expectedVersion + 1
	return true, nil
}

func (r *InterviewSessionRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.InterviewSession{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
