package aggregator

import (
	"context"
	"strings"
	"time"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/repository/contract"
	"github.com/dhanushgc/HireMind/internal/repository/specification"
)

// Aggregator builds the prompt context for one (candidate, job, company).
type Aggregator interface {
	Gather(ctx context.Context, candidateId, jobId, companyId string) string
}

type section struct {
	title      string
	sourceType string
	refId      string
}

const defaultSectionTimeout = 5 * time.Second

type contextAggregator struct {
	snippets contract.ContextSnippetRepository
	timeout  time.Duration
	logger   logger.ILogger
}

// NewContextAggregator bounds every section lookup by timeout. A zero
// timeout uses a 5s default.
func NewContextAggregator(snippets contract.ContextSnippetRepository, timeout time.Duration, logger logger.ILogger) Aggregator {
	if timeout <= 0 {
		timeout = defaultSectionTimeout
	}
	return &contextAggregator{snippets: snippets, timeout: timeout, logger: logger}
}

// Gather never fails. A section whose lookup errors or times out is logged
// and left out.
func (a *contextAggregator) Gather(ctx context.Context, candidateId, jobId, companyId string) string {
	sections := []section{
		{title: "### Resume", sourceType: constant.SourceResume, refId: candidateId},
		{title: "### Job Description", sourceType: constant.SourceJobPost, refId: jobId},
		{title: "### Company Profile", sourceType: constant.SourceCompanyProfile, refId: companyId},
	}

	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		docs := a.fetch(ctx, sec)
		if len(docs) == 0 {
			continue
		}
		parts = append(parts, sec.title+"\n"+strings.Join(docs, "\n"))
	}

	text := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if text == "" {
		return constant.NoContextPlaceholder
	}

	a.logger.Info("Aggregator", "Context gathered", map[string]interface{}{
		"candidate_id": candidateId,
		"job_id":       jobId,
		"company_id":   companyId,
		"sections":     len(parts),
		"chars":        len(text),
	})
	return text
}

func (a *contextAggregator) fetch(ctx context.Context, sec section) []string {
	if sec.refId == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	snippets, err := a.snippets.FindAll(ctx, specification.BySource{Type: sec.sourceType, RefId: sec.refId})
	if err != nil {
		a.logger.Error("Aggregator", "Context lookup failed", map[string]interface{}{
			"type":   sec.sourceType,
			"ref_id": sec.refId,
			"error":  err.Error(),
		})
		return nil
	}

	docs := make([]string, 0, len(snippets))
	for _, s := range snippets {
		if s.Document != "" {
			docs = append(docs, s.Document)
		}
	}
	return docs
}
