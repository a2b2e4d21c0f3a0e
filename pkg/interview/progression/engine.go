package progression

import "github.com/dhanushgc/HireMind/internal/entity"

// NextUnanswered returns the first slot with an empty answer. When every
// slot is answered it returns (len(answers), true).
func NextUnanswered(session *entity.InterviewSession) (index int, complete bool) {
	for i, a := range session.Answers {
		if a == "" {
			return i, false
		}
	}
	return len(session.Answers), true
}

// Slot is the question a client should answer next.
type Slot struct {
	Index    int
	Category string
	Question string
}

// Next wraps NextUnanswered. It returns nil once the interview is complete.
func Next(session *entity.InterviewSession) *Slot {
	idx, complete := NextUnanswered(session)
	if complete {
		return nil
	}
	return &Slot{
		Index:    idx,
		Category: session.Categories[idx],
		Question: session.Questions[idx],
	}
}
