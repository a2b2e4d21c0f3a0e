package dto

import "time"

type GenerateQuestionsRequest struct {
	CandidateId string `json:"candidate_id" validate:"required"`
	JobId       string `json:"job_id" validate:"required"`
	CompanyId   string `json:"company_id"`
}

type QuestionItem struct {
	Type     string `json:"type"`
	Question string `json:"question"`
}

type GenerateQuestionsResponse struct {
	Questions      []QuestionItem `json:"questions"`
	QuestionsTotal int            `json:"questions_total"`
	Answered       int            `json:"answered"`
}

type SessionQuery struct {
	CandidateId string `json:"candidate_id" validate:"required"`
	JobId       string `json:"job_id" validate:"required"`
}

// NextQuestionResponse is either a question or the completion marker.
// Type duplicates Category for older clients.
type NextQuestionResponse struct {
	Category          string `json:"category,omitempty"`
	Question          string `json:"question,omitempty"`
	QuestionIndex     *int   `json:"question_index,omitempty"`
	Type              string `json:"type,omitempty"`
	InterviewComplete bool   `json:"interview_complete"`
	Message           string `json:"message,omitempty"`
}

type SubmitAnswerRequest struct {
	CandidateId string `json:"candidate_id" validate:"required"`
	JobId       string `json:"job_id" validate:"required"`
	Question    string `json:"question" validate:"required"`
	Answer      string `json:"answer" validate:"required"`
}

type SubmitAnswerResponse struct {
	Success       bool   `json:"success"`
	QuestionIndex int    `json:"question_index"`
	Category      string `json:"category"`
}

type TranscriptSlot struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Answered bool   `json:"answered"`
}

type TranscriptResponse struct {
	CandidateId       string           `json:"candidate_id"`
	JobId             string           `json:"job_id"`
	Slots             []TranscriptSlot `json:"slots"`
	QuestionsTotal    int              `json:"questions_total"`
	Answered          int              `json:"answered"`
	InterviewComplete bool             `json:"interview_complete"`
	CreatedAt         time.Time        `json:"created_at"`
}

// PublishEvaluationMessage is the queue payload for one evaluation task.
type PublishEvaluationMessage struct {
	TaskId       string `json:"task_id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Category     string `json:"category"`
	CandidateId  string `json:"candidate_id"`
	JobId        string `json:"job_id"`
	Context      string `json:"context"`
	GenerationId string `json:"generation_id"`
}

type EvaluationStats struct {
	Dispatched     int64 `json:"dispatched"`
	Succeeded      int64 `json:"succeeded"`
	Failed         int64 `json:"failed"`
	FollowUpsAdded int64 `json:"follow_ups_appended"`
	InFlight       int64 `json:"in_flight"`
	MaxConcurrent  int64 `json:"max_concurrent"`
}

type HealthResponse struct {
	Status     string          `json:"status"`
	Sessions   int64           `json:"sessions"`
	Evaluation EvaluationStats `json:"evaluation"`
}
