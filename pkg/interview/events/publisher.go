package events

import (
	"context"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	pkgEvents "github.com/dhanushgc/HireMind/pkg/events"
)

// Bus is satisfied by *nats.Publisher.
type Bus interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// LocalDelivery receives events directly when there is no bus.
type LocalDelivery interface {
	Deliver(event pkgEvents.Event)
}

// Publisher emits interview lifecycle events. Failures are logged and
// never returned: events must not fail the operation that caused them.
type Publisher interface {
	PublishQuestionsGenerated(ctx context.Context, candidateId, jobId string, questionsTotal int, companyId string)
	PublishAnswerSubmitted(ctx context.Context, candidateId, jobId string, questionIndex int, category string)
	PublishFollowUpAppended(ctx context.Context, candidateId, jobId, question, classification string)
	PublishEvaluationFailed(ctx context.Context, candidateId, jobId, question, reason string)
	PublishInterviewCompleted(ctx context.Context, candidateId, jobId string, questionsTotal int)
}

type publisher struct {
	bus    Bus
	local  LocalDelivery
	logger logger.ILogger
}

// NewPublisher accepts a nil bus, in which case events go to local (if set)
// or nowhere.
func NewPublisher(bus Bus, local LocalDelivery, logger logger.ILogger) Publisher {
	return &publisher{bus: bus, local: local, logger: logger}
}

func (p *publisher) emit(ctx context.Context, evt pkgEvents.Event) {
	if p.bus == nil {
		if p.local != nil {
			p.local.Deliver(evt)
		}
		return
	}

	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("Events", "Failed to publish "+evt.EventType()+" event", map[string]interface{}{
			"session_key": evt.Payload()["session_key"],
			"error":       err.Error(),
		})
	}
}

func (p *publisher) PublishQuestionsGenerated(ctx context.Context, candidateId, jobId string, questionsTotal int, companyId string) {
	p.emit(ctx, pkgEvents.NewInterviewEvent(pkgEvents.QuestionsGenerated, candidateId, jobId, map[string]interface{}{
		"session_key":     constant.SessionKey(candidateId, jobId),
		"questions_total": questionsTotal,
		"company_id":      companyId,
	}))
}

func (p *publisher) PublishAnswerSubmitted(ctx context.Context, candidateId, jobId string, questionIndex int, category string) {
	p.emit(ctx, pkgEvents.NewInterviewEvent(pkgEvents.AnswerSubmitted, candidateId, jobId, map[string]interface{}{
		"session_key":    constant.SessionKey(candidateId, jobId),
		"question_index": questionIndex,
		"category":       category,
	}))
}

func (p *publisher) PublishFollowUpAppended(ctx context.Context, candidateId, jobId, question, classification string) {
	p.emit(ctx, pkgEvents.NewInterviewEvent(pkgEvents.FollowUpAppended, candidateId, jobId, map[string]interface{}{
		"session_key":    constant.SessionKey(candidateId, jobId),
		"question":       question,
		"category":       constant.CategoryFollowUp,
		"classification": classification,
	}))
}

func (p *publisher) PublishEvaluationFailed(ctx context.Context, candidateId, jobId, question, reason string) {
	p.emit(ctx, pkgEvents.NewInterviewEvent(pkgEvents.EvaluationFailed, candidateId, jobId, map[string]interface{}{
		"session_key": constant.SessionKey(candidateId, jobId),
		"question":    question,
		"reason":      reason,
	}))
}

func (p *publisher) PublishInterviewCompleted(ctx context.Context, candidateId, jobId string, questionsTotal int) {
	p.emit(ctx, pkgEvents.NewInterviewEvent(pkgEvents.InterviewCompleted, candidateId, jobId, map[string]interface{}{
		"session_key":     constant.SessionKey(candidateId, jobId),
		"questions_total": questionsTotal,
	}))
}
