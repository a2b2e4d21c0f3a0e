package constant

// Slot categories
const (
	CategoryTechnical  = "technical"
	CategoryLeadership = "leadership"
	CategoryFollowUp   = "follow_up"
)

// Evaluation classifications returned by the adaptive engine
const (
	ClassificationStrong     = "strong"
	ClassificationVague      = "vague"
	ClassificationIncomplete = "incomplete"
	ClassificationOffTopic   = "off-topic"
)

// Context snippet source types, as tagged by the embedding service
const (
	SourceResume         = "resume"
	SourceJobPost        = "job_post"
	SourceCompanyProfile = "company_profile"
)

const (
	// NoContextPlaceholder keeps prompts well-formed when nothing was retrieved.
	NoContextPlaceholder = "No context available."

	QuestionsPerCategory = 2
	BaseQuestionCount    = 4
	MaxFollowUps         = 1
)

// Session keys are "<candidate_id>:<job_id>"
const SessionKeySeparator = ":"

func SessionKey(candidateId, jobId string) string {
	return candidateId + SessionKeySeparator + jobId
}

// NeedsFollowUp reports whether a classification may trigger a follow-up question.
func NeedsFollowUp(classification string) bool {
	switch classification {
	case ClassificationVague, ClassificationIncomplete, ClassificationOffTopic:
		return true
	}
	return false
}

func IsKnownClassification(classification string) bool {
	return classification == ClassificationStrong || NeedsFollowUp(classification)
}
