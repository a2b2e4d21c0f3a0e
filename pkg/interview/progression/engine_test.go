package progression

import (
	"testing"

	"github.com/dhanushgc/HireMind/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextUnanswered(t *testing.T) {
	tests := []struct {
		name         string
		answers      []string
		wantIndex    int
		wantComplete bool
	}{
		{"fresh", []string{"", "", "", ""}, 0, false},
		{"gap in middle", []string{"a", "", "c", ""}, 1, false},
		{"only last open", []string{"a", "b", "c", ""}, 3, false},
		{"all answered", []string{"a", "b", "c", "d"}, 4, true},
		{"empty session", []string{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &entity.InterviewSession{Answers: tt.answers}
			idx, complete := NextUnanswered(s)
			assert.Equal(t, tt.wantIndex, idx)
			assert.Equal(t, tt.wantComplete, complete)

			again, _ := NextUnanswered(s)
			assert.Equal(t, idx, again, "no side effects")
		})
	}
}

func TestNext(t *testing.T) {
	s := &entity.InterviewSession{
		Questions:  []string{"T1", "F1"},
		Answers:    []string{"done", ""},
		Categories: []string{"technical", "follow_up"},
	}
	slot := Next(s)
	require.NotNil(t, slot)
	assert.Equal(t, Slot{Index: 1, Category: "follow_up", Question: "F1"}, *slot)

	s.Answers[1] = "done"
	assert.Nil(t, Next(s))
}
