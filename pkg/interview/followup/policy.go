package followup

import (
	"context"
	"strings"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview/store"
)

// Decision is what the policy needs from an evaluation.
type Decision struct {
	Classification string
	FollowUp       string

	// GenerationId of the question set the evaluated answer belongs to.
	GenerationId string
}

// Qualifies reports whether d asks for a follow-up at all, before looking
// at the session.
func (d Decision) Qualifies() bool {
	return strings.TrimSpace(d.FollowUp) != "" && constant.NeedsFollowUp(d.Classification)
}

type Policy struct {
	store  store.SessionStore
	logger logger.ILogger
}

func NewPolicy(sessionStore store.SessionStore, logger logger.ILogger) *Policy {
	return &Policy{store: sessionStore, logger: logger}
}

// Apply appends the follow-up question when d qualifies, the session still
// holds the question set d was evaluated against, and it has no follow-up
// yet. The checks and the append happen under the session lock, so
// concurrent evaluations add at most one follow-up between them.
func (p *Policy) Apply(ctx context.Context, sessionKey string, d Decision) (bool, error) {
	if !d.Qualifies() {
		return false, nil
	}

	appended, stale := false, false
	_, err := p.store.Update(ctx, sessionKey, func(s *entity.InterviewSession) (bool, error) {
		appended, stale = false, false
		if s.GenerationId != d.GenerationId {
			stale = true
			return false, nil
		}
		if s.HasCategory(constant.CategoryFollowUp) {
			return false, nil
		}
		s.AppendSlot(strings.TrimSpace(d.FollowUp), "", constant.CategoryFollowUp)
		appended = true
		return true, nil
	})
	if err != nil {
		return false, err
	}

	switch {
	case appended:
		p.logger.Info("FollowUp", "Follow-up appended", map[string]interface{}{
			"session_key":    sessionKey,
			"classification": d.Classification,
		})
	case stale:
		p.logger.Info("FollowUp", "Session was regenerated, dropping follow-up", map[string]interface{}{
			"session_key":   sessionKey,
			"generation_id": d.GenerationId,
		})
	default:
		p.logger.Debug("FollowUp", "Session already has a follow-up", map[string]interface{}{
			"session_key": sessionKey,
		})
	}
	return appended, nil
}
