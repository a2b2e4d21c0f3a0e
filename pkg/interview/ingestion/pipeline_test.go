package ingestion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/repository/memory"
	"github.com/dhanushgc/HireMind/pkg/interview"
	"github.com/dhanushgc/HireMind/pkg/interview/store"
	"github.com/dhanushgc/HireMind/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu    sync.Mutex
	tasks []interview.EvaluationTask
	err   error
}

func (r *recordingDispatcher) Dispatch(task interview.EvaluationTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return r.err
}

func setup(t *testing.T) (*Pipeline, store.SessionStore, *recordingDispatcher) {
	t.Helper()
	s := store.NewSessionStore(memory.NewSessionRepository(), lock.NewKeyedMutex(), logger.NewNopLogger())
	require.NoError(t, s.Put(context.Background(), entity.NewInterviewSession("c1", "j1",
		[]string{"T1", "T2", "L1", "L2"},
		[]string{"technical", "technical", "leadership", "leadership"}, "the context", time.Now())))
	d := &recordingDispatcher{}
	return NewPipeline(s, d, logger.NewNopLogger()), s, d
}

func TestSubmitKnownQuestion(t *testing.T) {
	p, s, d := setup(t)

	res, err := p.Submit(context.Background(), "c1", "j1", "L1", "I led the migration.")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Index)
	assert.Equal(t, "leadership", res.Category)
	assert.False(t, res.Appended)

	got, _ := s.Get(context.Background(), "c1:j1")
	assert.Equal(t, []string{"", "", "I led the migration.", ""}, got.Answers)
	require.NotEmpty(t, got.GenerationId)

	require.Len(t, d.tasks, 1)
	assert.Equal(t, interview.EvaluationTask{
		Question: "L1", Answer: "I led the migration.", Category: "leadership",
		CandidateId: "c1", JobId: "j1", Context: "the context",
		GenerationId: got.GenerationId,
	}, d.tasks[0])
}

func TestSubmitOutOfOrder(t *testing.T) {
	p, s, _ := setup(t)
	ctx := context.Background()

	_, err := p.Submit(ctx, "c1", "j1", "L2", "last first")
	require.NoError(t, err)
	_, err = p.Submit(ctx, "c1", "j1", "T1", "first second")
	require.NoError(t, err)

	got, _ := s.Get(ctx, "c1:j1")
	assert.Equal(t, []string{"first second", "", "", "last first"}, got.Answers)
}

func TestSubmitUnknownQuestionAppendsFollowUpSlot(t *testing.T) {
	p, s, _ := setup(t)

	res, err := p.Submit(context.Background(), "c1", "j1", "T1 ", "near miss")
	require.NoError(t, err)
	assert.True(t, res.Appended)
	assert.Equal(t, 4, res.Index)
	assert.Equal(t, "follow_up", res.Category)

	got, _ := s.Get(context.Background(), "c1:j1")
	assert.True(t, got.Consistent())
	assert.Equal(t, 5, got.Len())
	assert.Equal(t, "near miss", got.Answers[4])
	assert.Equal(t, "", got.Answers[0])
}

func TestSubmitMissingSession(t *testing.T) {
	p, _, d := setup(t)

	_, err := p.Submit(context.Background(), "c2", "j1", "T1", "answer")
	assert.ErrorIs(t, err, interview.ErrSessionNotFound)
	assert.Empty(t, d.tasks)
}

func TestSubmitEmptyAnswer(t *testing.T) {
	p, _, d := setup(t)

	_, err := p.Submit(context.Background(), "c1", "j1", "T1", "")
	assert.ErrorIs(t, err, interview.ErrEmptyAnswer)
	assert.Empty(t, d.tasks)
}

func TestSubmitWhitespaceAnswerIsRecorded(t *testing.T) {
	p, s, d := setup(t)

	res, err := p.Submit(context.Background(), "c1", "j1", "T1", "  ")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)

	got, _ := s.Get(context.Background(), "c1:j1")
	assert.Equal(t, "  ", got.Answers[0])
	assert.Len(t, d.tasks, 1)
}

func TestSubmitSucceedsWhenDispatchFails(t *testing.T) {
	p, s, d := setup(t)
	d.err = errors.New("queue closed")

	_, err := p.Submit(context.Background(), "c1", "j1", "T2", "answer")
	require.NoError(t, err)

	got, _ := s.Get(context.Background(), "c1:j1")
	assert.Equal(t, "answer", got.Answers[1])
}
