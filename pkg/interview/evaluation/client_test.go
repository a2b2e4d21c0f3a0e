package evaluation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var task = interview.EvaluationTask{
	Question:    "Explain channels.",
	Answer:      "They are pipes.",
	Category:    "technical",
	CandidateId: "c1",
	JobId:       "j1",
	Context:     "ctx",
}

func TestEvaluateSendsTask(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"evaluation":{"classification":"vague","follow_up":"Can you be specific?","score":4}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.NewNopLogger())
	res, err := c.Evaluate(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, "vague", res.Classification)
	assert.Equal(t, "Can you be specific?", res.FollowUp)
	assert.Contains(t, string(res.Raw), `"score":4`)
	assert.Equal(t, map[string]string{
		"question": "Explain channels.", "answer": "They are pipes.", "category": "technical",
		"candidate_id": "c1", "job_id": "j1", "context": "ctx",
	}, got)
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", 500, `{"detail":"boom"}`, interview.ErrUpstreamFailure},
		{"not found", 404, ``, interview.ErrUpstreamFailure},
		{"not json", 200, `ok`, interview.ErrMalformedResponse},
		{"no evaluation", 200, `{"result":{}}`, interview.ErrMalformedResponse},
		{"unknown classification", 200, `{"evaluation":{"classification":"great"}}`, interview.ErrMalformedResponse},
		{"string not json", 200, `{"evaluation":"strong answer"}`, interview.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second, logger.NewNopLogger()).Evaluate(context.Background(), task)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 20*time.Millisecond, logger.NewNopLogger()).Evaluate(context.Background(), task)
	assert.ErrorIs(t, err, interview.ErrUpstreamFailure)
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		classification string
		followUp       string
	}{
		{"object", `{"evaluation":{"classification":"strong"}}`, "strong", ""},
		{"json string", `{"evaluation":"{\"classification\":\"off-topic\",\"follow_up\":\"Back to Go?\"}"}`, "off-topic", "Back to Go?"},
		{"null follow up", `{"evaluation":{"classification":"incomplete","follow_up":null}}`, "incomplete", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseResult([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.classification, res.Classification)
			assert.Equal(t, tt.followUp, res.FollowUp)
		})
	}
}
