package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/repository/contract"
	"github.com/dhanushgc/HireMind/internal/repository/specification"

	"github.com/patrickmn/go-cache"
)

// SnippetRepository serves context snippets from memory, grouped by source.
// It understands specification.BySource only.
type SnippetRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSnippetRepository() contract.ContextSnippetRepository {
	return &SnippetRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func sourceKey(sourceType, refId string) string {
	return sourceType + "|" + refId
}

func (r *SnippetRepository) CreateBulk(ctx context.Context, snippets []*entity.ContextSnippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range snippets {
		key := sourceKey(s.Type, s.RefId)
		var group []*entity.ContextSnippet
		if x, found := r.cache.Get(key); found {
			group = x.([]*entity.ContextSnippet)
		}
		cp := *s
		group = append(group, &cp)
		sort.SliceStable(group, func(i, j int) bool { return group[i].ChunkIndex < group[j].ChunkIndex })
		r.cache.Set(key, group, cache.NoExpiration)
	}
	return nil
}

func (r *SnippetRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextSnippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var source *specification.BySource
	for _, spec := range specs {
		s, ok := spec.(specification.BySource)
		if !ok {
			return nil, fmt.Errorf("memory snippet repository: unsupported specification %T", spec)
		}
		source = &s
	}
	if source == nil {
		return nil, fmt.Errorf("memory snippet repository: a source is required")
	}

	x, found := r.cache.Get(sourceKey(source.Type, source.RefId))
	if !found {
		return []*entity.ContextSnippet{}, nil
	}
	group := x.([]*entity.ContextSnippet)
	out := make([]*entity.ContextSnippet, 0, len(group))
	for _, s := range group {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *SnippetRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(found)), nil
}
