package ingestion

import (
	"context"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview"
	"github.com/dhanushgc/HireMind/pkg/interview/store"
)

type Result struct {
	Index    int
	Category string
	Appended bool // the question was unknown and got its own slot
	Session  *entity.InterviewSession
}

type Pipeline struct {
	store      store.SessionStore
	dispatcher interview.Dispatcher
	logger     logger.ILogger
}

func NewPipeline(sessionStore store.SessionStore, dispatcher interview.Dispatcher, logger logger.ILogger) *Pipeline {
	return &Pipeline{store: sessionStore, dispatcher: dispatcher, logger: logger}
}

// Submit records the answer durably, then queues it for evaluation. The
// evaluation outcome never reaches the caller.
func (p *Pipeline) Submit(ctx context.Context, candidateId, jobId, question, answer string) (*Result, error) {
	if answer == "" {
		return nil, interview.ErrEmptyAnswer
	}

	key := constant.SessionKey(candidateId, jobId)
	res := &Result{}

	session, err := p.store.Update(ctx, key, func(s *entity.InterviewSession) (bool, error) {
		res.Appended = false
		idx := s.IndexOfQuestion(question)
		if idx < 0 {
			idx = s.AppendSlot(question, "", constant.CategoryFollowUp)
			res.Appended = true
		}
		s.Answers[idx] = answer
		res.Index = idx
		res.Category = s.Categories[idx]
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	res.Session = session

	p.logger.Info("Ingestion", "Answer recorded", map[string]interface{}{
		"session_key":    key,
		"question_index": res.Index,
		"category":       res.Category,
		"appended":       res.Appended,
	})

	task := interview.EvaluationTask{
		Question:     question,
		Answer:       answer,
		Category:     res.Category,
		CandidateId:  candidateId,
		JobId:        jobId,
		Context:      session.Context,
		GenerationId: session.GenerationId,
	}
	if err := p.dispatcher.Dispatch(task); err != nil {
		p.logger.Error("Ingestion", "Failed to dispatch evaluation", map[string]interface{}{
			"session_key": key,
			"error":       err.Error(),
		})
	}

	return res, nil
}
