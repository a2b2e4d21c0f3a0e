package service

import (
	"context"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/dto"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	interviewEvents "github.com/dhanushgc/HireMind/pkg/interview/events"
	"github.com/dhanushgc/HireMind/pkg/interview/generation"
	"github.com/dhanushgc/HireMind/pkg/interview/ingestion"
	"github.com/dhanushgc/HireMind/pkg/interview/progression"
	"github.com/dhanushgc/HireMind/pkg/interview/store"
)

const interviewCompleteMessage = "Interview complete. All questions answered."

type IInterviewService interface {
	Generate(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	Next(ctx context.Context, req *dto.SessionQuery) (*dto.NextQuestionResponse, error)
	Submit(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	Transcript(ctx context.Context, req *dto.SessionQuery) (*dto.TranscriptResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

// StatsSource reports evaluation queue counters.
type StatsSource interface {
	Stats() dto.EvaluationStats
}

type interviewService struct {
	store      store.SessionStore
	generator  *generation.Pipeline
	ingestion  *ingestion.Pipeline
	events     interviewEvents.Publisher
	evaluation StatsSource
	logger     logger.ILogger
}

func NewInterviewService(
	sessionStore store.SessionStore,
	generator *generation.Pipeline,
	ingestionPipeline *ingestion.Pipeline,
	events interviewEvents.Publisher,
	evaluation StatsSource,
	logger logger.ILogger,
) IInterviewService {
	return &interviewService{
		store:      sessionStore,
		generator:  generator,
		ingestion:  ingestionPipeline,
		events:     events,
		evaluation: evaluation,
		logger:     logger,
	}
}

func (s *interviewService) Generate(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	result, err := s.generator.Generate(ctx, req.CandidateId, req.JobId, req.CompanyId)
	if err != nil {
		return nil, err
	}

	items := make([]dto.QuestionItem, 0, len(result.Questions))
	for _, q := range result.Questions {
		items = append(items, dto.QuestionItem{Type: q.Type, Question: q.Question})
	}

	s.events.PublishQuestionsGenerated(ctx, req.CandidateId, req.JobId, len(items), result.CompanyId)

	return &dto.GenerateQuestionsResponse{
		Questions:      items,
		QuestionsTotal: result.Session.Len(),
		Answered:       result.Session.AnsweredCount(),
	}, nil
}

func (s *interviewService) Next(ctx context.Context, req *dto.SessionQuery) (*dto.NextQuestionResponse, error) {
	session, err := s.store.Get(ctx, constant.SessionKey(req.CandidateId, req.JobId))
	if err != nil {
		return nil, err
	}

	slot := progression.Next(session)
	if slot == nil {
		return &dto.NextQuestionResponse{
			InterviewComplete: true,
			Message:           interviewCompleteMessage,
		}, nil
	}

	index := slot.Index
	return &dto.NextQuestionResponse{
		Category:      slot.Category,
		Question:      slot.Question,
		QuestionIndex: &index,
		Type:          slot.Category,
	}, nil
}

func (s *interviewService) Submit(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	result, err := s.ingestion.Submit(ctx, req.CandidateId, req.JobId, req.Question, req.Answer)
	if err != nil {
		return nil, err
	}

	s.events.PublishAnswerSubmitted(ctx, req.CandidateId, req.JobId, result.Index, result.Category)
	if _, complete := progression.NextUnanswered(result.Session); complete {
		s.events.PublishInterviewCompleted(ctx, req.CandidateId, req.JobId, result.Session.Len())
	}

	return &dto.SubmitAnswerResponse{
		Success:       true,
		QuestionIndex: result.Index,
		Category:      result.Category,
	}, nil
}

func (s *interviewService) Transcript(ctx context.Context, req *dto.SessionQuery) (*dto.TranscriptResponse, error) {
	session, err := s.store.Get(ctx, constant.SessionKey(req.CandidateId, req.JobId))
	if err != nil {
		return nil, err
	}

	slots := make([]dto.TranscriptSlot, 0, session.Len())
	for i := range session.Questions {
		slots = append(slots, dto.TranscriptSlot{
			Index:    i,
			Category: session.Categories[i],
			Question: session.Questions[i],
			Answer:   session.Answers[i],
			Answered: session.Answers[i] != "",
		})
	}
	_, complete := progression.NextUnanswered(session)

	return &dto.TranscriptResponse{
		CandidateId:       session.CandidateId,
		JobId:             session.JobId,
		Slots:             slots,
		QuestionsTotal:    session.Len(),
		Answered:          session.AnsweredCount(),
		InterviewComplete: complete,
		CreatedAt:         session.CreatedAt,
	}, nil
}

func (s *interviewService) Health(ctx context.Context) *dto.HealthResponse {
	res := &dto.HealthResponse{Status: "ok"}

	count, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("Interview", "Failed to count sessions", map[string]interface{}{"error": err.Error()})
		res.Status = "degraded"
	}
	res.Sessions = count

	if s.evaluation != nil {
		res.Evaluation = s.evaluation.Stats()
	}
	return res
}
