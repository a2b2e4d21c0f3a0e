package unitofwork

import (
	"context"

	"github.com/dhanushgc/HireMind/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	InterviewSessionRepository() contract.InterviewSessionRepository
	ContextSnippetRepository() contract.ContextSnippetRepository
}
