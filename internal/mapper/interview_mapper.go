package mapper

import (
	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type InterviewMapper struct{}

func NewInterviewMapper() *InterviewMapper {
	return &InterviewMapper{}
}

// Session Mappers

func (m *InterviewMapper) SessionToEntity(s *model.InterviewSession) *entity.InterviewSession {
	if s == nil {
		return nil
	}

	return &entity.InterviewSession{
		SessionKey:   s.SessionKey,
		CandidateId:  s.CandidateId,
		JobId:        s.JobId,
		Questions:    nonNil(s.Questions),
		Answers:      nonNil(s.Answers),
		Categories:   nonNil(s.Categories),
		Context:      s.Context,
		CreatedAt:    s.CreatedAt,
		Version:      s.Version,
		GenerationId: s.GenerationId,
	}
}

func (m *InterviewMapper) SessionToModel(s *entity.InterviewSession) *model.InterviewSession {
	if s == nil {
		return nil
	}

	return &model.InterviewSession{
		SessionKey:   s.SessionKey,
		CandidateId:  s.CandidateId,
		JobId:        s.JobId,
		Questions:    datatypes.NewJSONSlice(nonNil(s.Questions)),
		Answers:      datatypes.NewJSONSlice(nonNil(s.Answers)),
		Categories:   datatypes.NewJSONSlice(nonNil(s.Categories)),
		Context:      s.Context,
		CreatedAt:    s.CreatedAt,
		Version:      s.Version,
		GenerationId: s.GenerationId,
	}
}

// Snippet Mappers

func (m *InterviewMapper) SnippetToEntity(s *model.ContextSnippet) *entity.ContextSnippet {
	if s == nil {
		return nil
	}

	return &entity.ContextSnippet{
		Id:             s.Id,
		Type:           s.Type,
		RefId:          s.RefId,
		Document:       s.Document,
		EmbeddingValue: embeddingSlice(s.EmbeddingValue),
		ChunkIndex:     s.ChunkIndex,
		CreatedAt:      s.CreatedAt,
	}
}

func (m *InterviewMapper) SnippetToModel(s *entity.ContextSnippet) *model.ContextSnippet {
	if s == nil {
		return nil
	}

	row := &model.ContextSnippet{
		Id:         s.Id,
		Type:       s.Type,
		RefId:      s.RefId,
		Document:   s.Document,
		ChunkIndex: s.ChunkIndex,
		CreatedAt:  s.CreatedAt,
	}
	if len(s.EmbeddingValue) > 0 {
		v := pgvector.NewVector(s.EmbeddingValue)
		row.EmbeddingValue = &v
	}
	return row
}

func (m *InterviewMapper) SnippetsToEntities(models []*model.ContextSnippet) []*entity.ContextSnippet {
	entities := make([]*entity.ContextSnippet, len(models))
	for i, s := range models {
		entities[i] = m.SnippetToEntity(s)
	}
	return entities
}

func embeddingSlice(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	return v.Slice()
}

// nonNil keeps "[]" instead of "null" in the JSON columns.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
