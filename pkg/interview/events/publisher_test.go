package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	pkgEvents "github.com/dhanushgc/HireMind/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []pkgEvents.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e pkgEvents.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Deliver(e pkgEvents.Event) {
	_ = r.Publish(context.Background(), e)
}

func TestPublishToBus(t *testing.T) {
	bus := &recorder{}
	p := NewPublisher(bus, nil, logger.NewNopLogger())

	p.PublishFollowUpAppended(context.Background(), "c1", "j1", "Why?", "vague")

	require.Len(t, bus.events, 1)
	e := bus.events[0]
	assert.Equal(t, pkgEvents.FollowUpAppended, e.EventType())
	assert.Equal(t, "c1:j1", e.Payload()["session_key"])
	assert.Equal(t, "Why?", e.Payload()["question"])
	assert.Equal(t, "follow_up", e.Payload()["category"])
}

func TestBusErrorIsSwallowed(t *testing.T) {
	bus := &recorder{err: errors.New("nats down")}
	p := NewPublisher(bus, nil, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		p.PublishInterviewCompleted(context.Background(), "c1", "j1", 5)
	})
}

func TestNoBusFallsBackToLocal(t *testing.T) {
	local := &recorder{}
	p := NewPublisher(nil, local, logger.NewNopLogger())

	p.PublishAnswerSubmitted(context.Background(), "c1", "j1", 2, "leadership")
	require.Len(t, local.events, 1)
	assert.Equal(t, 2, local.events[0].Payload()["question_index"])

	silent := NewPublisher(nil, nil, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		silent.PublishQuestionsGenerated(context.Background(), "c1", "j1", 4, "acme")
	})
}
