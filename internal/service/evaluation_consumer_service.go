package service

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/dto"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview"
	"github.com/dhanushgc/HireMind/pkg/interview/evaluation"
	interviewEvents "github.com/dhanushgc/HireMind/pkg/interview/events"
	"github.com/dhanushgc/HireMind/pkg/interview/followup"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/semaphore"
)

var consumerTracer = otel.Tracer("hiremind/service/evaluation")

// EvaluationCounters is shared by the publisher and the consumer.
type EvaluationCounters struct {
	dispatched atomic.Int64
	succeeded  atomic.Int64
	failed     atomic.Int64
	followUps  atomic.Int64
	inFlight   atomic.Int64
}

func NewEvaluationCounters() *EvaluationCounters {
	return &EvaluationCounters{}
}

// Evaluator is satisfied by *evaluation.Client.
type Evaluator interface {
	Evaluate(ctx context.Context, task interview.EvaluationTask) (*evaluation.Result, error)
}

type IEvaluationConsumerService interface {
	Consume(ctx context.Context) error
	Stats() dto.EvaluationStats
}

type evaluationConsumerService struct {
	subscriber    message.Subscriber
	topicName     string
	evaluator     Evaluator
	policy        *followup.Policy
	events        interviewEvents.Publisher
	counters      *EvaluationCounters
	sem           *semaphore.Weighted
	maxConcurrent int64
	logger        logger.ILogger
}

func NewEvaluationConsumerService(
	subscriber message.Subscriber,
	topicName string,
	evaluator Evaluator,
	policy *followup.Policy,
	events interviewEvents.Publisher,
	counters *EvaluationCounters,
	maxConcurrent int,
	logger logger.ILogger,
) IEvaluationConsumerService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &evaluationConsumerService{
		subscriber:    subscriber,
		topicName:     topicName,
		evaluator:     evaluator,
		policy:        policy,
		events:        events,
		counters:      counters,
		sem:           semaphore.NewWeighted(int64(maxConcurrent)),
		maxConcurrent: int64(maxConcurrent),
		logger:        logger,
	}
}

func (cs *evaluationConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			// Ack first: evaluations are never retried, and gochannel holds
			// the next message until this one is acked.
			msg.Ack()

			var task dto.PublishEvaluationMessage
			if err := json.Unmarshal(msg.Payload, &task); err != nil {
				cs.counters.failed.Add(1)
				cs.logger.Error("Evaluation", "Failed to unmarshal task", map[string]interface{}{"error": err.Error()})
				continue
			}

			if err := cs.sem.Acquire(ctx, 1); err != nil {
				cs.counters.failed.Add(1)
				return
			}
			cs.counters.inFlight.Add(1)

			go func() {
				defer func() {
					cs.counters.inFlight.Add(-1)
					cs.sem.Release(1)
				}()
				cs.process(ctx, task)
			}()
		}
	}()

	return nil
}

func (cs *evaluationConsumerService) process(ctx context.Context, task dto.PublishEvaluationMessage) {
	ctx, span := consumerTracer.Start(ctx, "interview.evaluate")
	defer span.End()

	sessionKey := constant.SessionKey(task.CandidateId, task.JobId)
	span.SetAttributes(
		attribute.String("session_key", sessionKey),
		attribute.String("category", task.Category),
	)

	result, err := cs.evaluator.Evaluate(ctx, interview.EvaluationTask{
		Question:    task.Question,
		Answer:      task.Answer,
		Category:    task.Category,
		CandidateId: task.CandidateId,
		JobId:       task.JobId,
		Context:     task.Context,
	})
	if err != nil {
		cs.fail(ctx, task, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return
	}
	span.SetAttributes(attribute.String("classification", result.Classification))

	decision := followup.Decision{
		Classification: result.Classification,
		FollowUp:       result.FollowUp,
		GenerationId:   task.GenerationId,
	}
	appended, err := cs.policy.Apply(ctx, sessionKey, decision)
	if err != nil {
		cs.fail(ctx, task, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "follow-up append failed")
		return
	}

	cs.counters.succeeded.Add(1)
	cs.logger.Info("Evaluation", "Answer evaluated", map[string]interface{}{
		"task_id":        task.TaskId,
		"session_key":    sessionKey,
		"classification": result.Classification,
		"follow_up":      appended,
	})

	if appended {
		cs.counters.followUps.Add(1)
		cs.events.PublishFollowUpAppended(ctx, task.CandidateId, task.JobId, result.FollowUp, result.Classification)
	}
}

func (cs *evaluationConsumerService) fail(ctx context.Context, task dto.PublishEvaluationMessage, err error) {
	cs.counters.failed.Add(1)
	cs.logger.Error("Evaluation", "Evaluation task failed", map[string]interface{}{
		"task_id":      task.TaskId,
		"candidate_id": task.CandidateId,
		"job_id":       task.JobId,
		"error":        err.Error(),
	})
	cs.events.PublishEvaluationFailed(ctx, task.CandidateId, task.JobId, task.Question, err.Error())
}

func (cs *evaluationConsumerService) Stats() dto.EvaluationStats {
	return dto.EvaluationStats{
		Dispatched:     cs.counters.dispatched.Load(),
		Succeeded:      cs.counters.succeeded.Load(),
		Failed:         cs.counters.failed.Load(),
		FollowUpsAdded: cs.counters.followUps.Load(),
		InFlight:       cs.counters.inFlight.Load(),
		MaxConcurrent:  cs.maxConcurrent,
	}
}
