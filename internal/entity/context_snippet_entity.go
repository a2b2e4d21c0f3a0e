package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContextSnippet is a chunk of resume, job post or company profile text
// written by the embedding service.
type ContextSnippet struct {
	Id             uuid.UUID
	Type           string
	RefId          string
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
}
