package memory

import (
	"context"
	"testing"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetRepositoryFindBySource(t *testing.T) {
	repo := NewSnippetRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreateBulk(ctx, []*entity.ContextSnippet{
		{Type: "resume", RefId: "c1", Document: "second", ChunkIndex: 1},
		{Type: "resume", RefId: "c1", Document: "first", ChunkIndex: 0},
		{Type: "job_post", RefId: "j1", Document: "job"},
	}))

	found, err := repo.FindAll(ctx, specification.BySource{Type: "resume", RefId: "c1"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "first", found[0].Document)
	assert.Equal(t, "second", found[1].Document)

	n, err := repo.Count(ctx, specification.BySource{Type: "resume", RefId: "other"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSnippetRepositoryRejectsUnknownSpec(t *testing.T) {
	repo := NewSnippetRepository()

	_, err := repo.FindAll(context.Background(), specification.BySessionKey{SessionKey: "c:j"})
	assert.Error(t, err)
}
