package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnippets struct {
	docs map[string][]string
	errs map[string]error
	hang map[string]bool // block until ctx is done
}

func (f *fakeSnippets) CreateBulk(context.Context, []*entity.ContextSnippet) error { return nil }

func (f *fakeSnippets) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextSnippet, error) {
	src := specs[0].(specification.BySource)
	key := src.Type + "/" + src.RefId
	if f.hang[key] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	var out []*entity.ContextSnippet
	for _, d := range f.docs[key] {
		out = append(out, &entity.ContextSnippet{Type: src.Type, RefId: src.RefId, Document: d})
	}
	return out, nil
}

func (f *fakeSnippets) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

func TestGather(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeSnippets
		want string
	}{
		{
			name: "all sections in fixed order",
			repo: &fakeSnippets{docs: map[string][]string{
				"company_profile/co1": {"We value ownership."},
				"job_post/j1":         {"Go required.", "Kafka preferred."},
				"resume/c1":           {"Built a payments service."},
			}},
			want: "### Resume\nBuilt a payments service.\n\n" +
				"### Job Description\nGo required.\nKafka preferred.\n\n" +
				"### Company Profile\nWe value ownership.",
		},
		{
			name: "empty section omitted",
			repo: &fakeSnippets{docs: map[string][]string{
				"job_post/j1": {"Go required."},
			}},
			want: "### Job Description\nGo required.",
		},
		{
			name: "failed lookup treated as empty",
			repo: &fakeSnippets{
				docs: map[string][]string{"resume/c1": {"Resume text."}},
				errs: map[string]error{"job_post/j1": errors.New("db down")},
			},
			want: "### Resume\nResume text.",
		},
		{
			name: "nothing found",
			repo: &fakeSnippets{},
			want: constant.NoContextPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewContextAggregator(tt.repo, time.Second, logger.NewNopLogger())
			assert.Equal(t, tt.want, agg.Gather(context.Background(), "c1", "j1", "co1"))
		})
	}
}

func TestGatherHungSectionTimesOut(t *testing.T) {
	repo := &fakeSnippets{
		docs: map[string][]string{"resume/c1": {"Resume text."}},
		hang: map[string]bool{"job_post/j1": true},
	}
	agg := NewContextAggregator(repo, 50*time.Millisecond, logger.NewNopLogger())

	done := make(chan string, 1)
	go func() { done <- agg.Gather(context.Background(), "c1", "j1", "co1") }()

	select {
	case got := <-done:
		assert.Equal(t, "### Resume\nResume text.", got)
	case <-time.After(3 * time.Second):
		require.FailNow(t, "Gather did not return after the section timeout")
	}
}
