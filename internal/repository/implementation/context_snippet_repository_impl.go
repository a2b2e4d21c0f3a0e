package implementation

import (
	"context"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/mapper"
	"github.com/dhanushgc/HireMind/internal/model"
	"github.com/dhanushgc/HireMind/internal/repository/contract"
	"github.com/dhanushgc/HireMind/internal/repository/scope"
	"github.com/dhanushgc/HireMind/internal/repository/specification"

	"gorm.io/gorm"
)

type ContextSnippetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewContextSnippetRepository(db *gorm.DB) contract.ContextSnippetRepository {
	return &ContextSnippetRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *ContextSnippetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContextSnippetRepositoryImpl) CreateBulk(ctx context.Context, snippets []*entity.ContextSnippet) error {
	if len(snippets) == 0 {
		return nil
	}

	models := make([]*model.ContextSnippet, len(snippets))
	for i, s := range snippets {
		models[i] = r.mapper.SnippetToModel(s)
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}

	for i, m := range models {
		*snippets[i] = *r.mapper.SnippetToEntity(m)
	}
	return nil
}

// FindAll returns snippets in chunk order, oldest first within a chunk index.
func (r *ContextSnippetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextSnippet, error) {
	var models []*model.ContextSnippet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	query = scope.OrderByCreatedAsc(query.Order("chunk_index ASC"))
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SnippetsToEntities(models), nil
}

func (r *ContextSnippetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ContextSnippet{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
