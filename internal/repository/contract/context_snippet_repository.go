package contract

import (
	"context"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/repository/specification"
)

type ContextSnippetRepository interface {
	CreateBulk(ctx context.Context, snippets []*entity.ContextSnippet) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextSnippet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
