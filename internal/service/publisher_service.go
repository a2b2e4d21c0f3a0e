package service

import (
	"encoding/json"
	"fmt"

	"github.com/dhanushgc/HireMind/internal/dto"
	"github.com/dhanushgc/HireMind/pkg/interview"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService queues evaluation tasks. It implements
// interview.Dispatcher.
type IPublisherService interface {
	Dispatch(task interview.EvaluationTask) error
}

type publisherService struct {
	publisher message.Publisher
	topicName string
	counters  *EvaluationCounters
}

func NewPublisherService(publisher message.Publisher, topicName string, counters *EvaluationCounters) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topicName: topicName,
		counters:  counters,
	}
}

func (ps *publisherService) Dispatch(task interview.EvaluationTask) error {
	payload, err := json.Marshal(dto.PublishEvaluationMessage{
		TaskId:       watermill.NewUUID(),
		Question:     task.Question,
		Answer:       task.Answer,
		Category:     task.Category,
		CandidateId:  task.CandidateId,
		JobId:        task.JobId,
		Context:      task.Context,
		GenerationId: task.GenerationId,
	})
	if err != nil {
		return fmt.Errorf("marshal evaluation task: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		return fmt.Errorf("publish evaluation task: %w", err)
	}

	ps.counters.dispatched.Add(1)
	return nil
}
