package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ContextSnippet mirrors the chunks written by the embedding service.
type ContextSnippet struct {
	Id             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type           string           `gorm:"type:text;not null;index:idx_context_snippet_source"`
	RefId          string           `gorm:"type:text;not null;index:idx_context_snippet_source"`
	Document       string           `gorm:"type:text"`
	EmbeddingValue *pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small
	ChunkIndex     int              `gorm:"default:0"`
	CreatedAt      time.Time        `gorm:"autoCreateTime"`
}

func (ContextSnippet) TableName() string {
	return "context_snippets"
}
