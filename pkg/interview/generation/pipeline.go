package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview"
	"github.com/dhanushgc/HireMind/pkg/interview/aggregator"
	"github.com/dhanushgc/HireMind/pkg/interview/store"
	"github.com/dhanushgc/HireMind/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("hiremind/interview/generation")

// GeneratedQuestion is one item of the model's question set.
type GeneratedQuestion struct {
	Type     string `json:"type"`
	Question string `json:"question"`
}

type questionSet struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type Result struct {
	Questions []GeneratedQuestion
	Session   *entity.InterviewSession
	CompanyId string
}

// CompanyResolver picks the company whose profile feeds the prompt.
type CompanyResolver interface {
	Resolve(ctx context.Context, requested string) (string, error)
}

type Pipeline struct {
	aggregator aggregator.Aggregator
	provider   llm.LLMProvider
	store      store.SessionStore
	companies  CompanyResolver
	timeout    time.Duration
	logger     logger.ILogger
	now        func() time.Time
}

func NewPipeline(
	agg aggregator.Aggregator,
	provider llm.LLMProvider,
	sessionStore store.SessionStore,
	companies CompanyResolver,
	timeout time.Duration,
	logger logger.ILogger,
) *Pipeline {
	return &Pipeline{
		aggregator: agg,
		provider:   provider,
		store:      sessionStore,
		companies:  companies,
		timeout:    timeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Generate builds a fresh question set and replaces any existing session
// for the pair. Nothing is written unless the model's output is valid.
func (p *Pipeline) Generate(ctx context.Context, candidateId, jobId, companyId string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "interview.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("candidate_id", candidateId),
		attribute.String("job_id", jobId),
	)

	companyId, err := p.companies.Resolve(ctx, companyId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "company lookup failed")
		return nil, err
	}

	contextText := p.aggregator.Gather(ctx, candidateId, jobId, companyId)

	questions, err := p.ask(ctx, contextText)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "question generation failed")
		p.logger.Error("Generation", "Question generation failed", map[string]interface{}{
			"candidate_id": candidateId,
			"job_id":       jobId,
			"error":        err.Error(),
		})
		return nil, err
	}

	texts := make([]string, len(questions))
	categories := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Question
		categories[i] = q.Type
	}

	session := entity.NewInterviewSession(candidateId, jobId, texts, categories, contextText, p.now())
	if err := p.store.Put(ctx, session); err != nil {
		span.RecordError(err)
		return nil, err
	}

	p.logger.Info("Generation", "Questions generated", map[string]interface{}{
		"session_key": session.SessionKey,
		"company_id":  companyId,
	})
	return &Result{Questions: questions, Session: session, CompanyId: companyId}, nil
}

func (p *Pipeline) ask(ctx context.Context, contextText string) ([]GeneratedQuestion, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	raw, err := p.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: constant.QuestionGenerationSystemPromptV1},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.QuestionGenerationPromptV1, contextText)},
	}, llm.WithJSONResponse())
	if err != nil {
		return nil, fmt.Errorf("%w: language model: %v", interview.ErrUpstreamFailure, err)
	}

	return ParseQuestionSet(raw)
}

// ParseQuestionSet validates model output. Exactly two technical and two
// leadership questions are accepted; anything else is malformed.
func ParseQuestionSet(raw string) ([]GeneratedQuestion, error) {
	data := []byte(stripCodeFence(raw))

	if err := questionSetSchema.Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %v", interview.ErrMalformedResponse, err)
	}

	var set questionSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", interview.ErrMalformedResponse, err)
	}

	counts := map[string]int{}
	for i := range set.Questions {
		set.Questions[i].Question = strings.TrimSpace(set.Questions[i].Question)
		if set.Questions[i].Question == "" {
			return nil, fmt.Errorf("%w: question %d is blank", interview.ErrMalformedResponse, i)
		}
		counts[set.Questions[i].Type]++
	}
	if counts[constant.CategoryTechnical] != constant.QuestionsPerCategory ||
		counts[constant.CategoryLeadership] != constant.QuestionsPerCategory {
		return nil, fmt.Errorf("%w: want %d technical and %d leadership questions, got %v",
			interview.ErrMalformedResponse, constant.QuestionsPerCategory, constant.QuestionsPerCategory, counts)
	}

	return set.Questions, nil
}

// stripCodeFence removes a ```json fence some models wrap around output.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		return s
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

