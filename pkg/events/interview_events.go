package events

import "time"

// Interview lifecycle event types
const (
	QuestionsGenerated = "QUESTIONS_GENERATED"
	AnswerSubmitted    = "ANSWER_SUBMITTED"
	FollowUpAppended   = "FOLLOW_UP_APPENDED"
	EvaluationFailed   = "EVALUATION_FAILED"
	InterviewCompleted = "INTERVIEW_COMPLETED"
)

// NewInterviewEvent stamps payload with the session coordinates every
// interview event carries.
func NewInterviewEvent(eventType, candidateId, jobId string, data map[string]interface{}) BaseEvent {
	payload := make(map[string]interface{}, len(data)+3)
	for k, v := range data {
		payload[k] = v
	}
	payload["candidate_id"] = candidateId
	payload["job_id"] = jobId
	payload["type"] = eventType

	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now().UTC(),
	}
}
