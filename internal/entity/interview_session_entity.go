package entity

import (
	"time"

	"github.com/dhanushgc/HireMind/internal/constant"
)

// InterviewSession is the full Q/A transcript for one (candidate, job) pair.
// Questions, Answers and Categories are parallel slices.
type InterviewSession struct {
	SessionKey  string
	CandidateId string
	JobId       string
	Questions   []string
	Answers     []string
	Categories  []string
	Context     string
	CreatedAt   time.Time
	Version     int64 // bumped on every write, used for compare-and-swap

	// GenerationId changes on every full replace. Evaluations carry it so
	// results for a replaced question set can be recognised.
	GenerationId string
}

// NewInterviewSession builds a fresh session with every answer empty.
func NewInterviewSession(candidateId, jobId string, questions, categories []string, context string, now time.Time) *InterviewSession {
	q := make([]string, len(questions))
	copy(q, questions)
	c := make([]string, len(categories))
	copy(c, categories)

	return &InterviewSession{
		SessionKey:  constant.SessionKey(candidateId, jobId),
		CandidateId: candidateId,
		JobId:       jobId,
		Questions:   q,
		Answers:     make([]string, len(questions)),
		Categories:  c,
		Context:     context,
		CreatedAt:   now,
	}
}

func (s *InterviewSession) Len() int {
	return len(s.Questions)
}

// Consistent checks that the parallel slices have equal length.
func (s *InterviewSession) Consistent() bool {
	return len(s.Questions) == len(s.Answers) && len(s.Answers) == len(s.Categories)
}

// IndexOfQuestion returns the first slot whose question text matches exactly, or -1.
func (s *InterviewSession) IndexOfQuestion(question string) int {
	for i, q := range s.Questions {
		if q == question {
			return i
		}
	}
	return -1
}

// AppendSlot adds a new (question, answer, category) triple and returns its index.
func (s *InterviewSession) AppendSlot(question, answer, category string) int {
	s.Questions = append(s.Questions, question)
	s.Answers = append(s.Answers, answer)
	s.Categories = append(s.Categories, category)
	return len(s.Questions) - 1
}

func (s *InterviewSession) HasCategory(category string) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (s *InterviewSession) AnsweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a != "" {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers never share slices with the store.
func (s *InterviewSession) Clone() *InterviewSession {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Questions = append([]string(nil), s.Questions...)
	cp.Answers = append([]string(nil), s.Answers...)
	cp.Categories = append([]string(nil), s.Categories...)
	return &cp
}
