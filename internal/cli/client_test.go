package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhanushgc/HireMind/internal/dto"
	"github.com/dhanushgc/HireMind/internal/pkg/serverutils"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case apiPrefix + "/next":
			idx := 1
			_ = json.NewEncoder(w).Encode(serverutils.SuccessResponse("ok", dto.NextQuestionResponse{
				Category: "technical", Question: "Q2", QuestionIndex: &idx, Type: "technical",
			}))
		case apiPrefix + "/answer":
			var req dto.SubmitAnswerRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(serverutils.SuccessResponse("ok", dto.SubmitAnswerResponse{
				Success: true, QuestionIndex: 1, Category: req.Question,
			}))
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(serverutils.ErrorResponse(http.StatusNotFound, "session not found"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientNext(t *testing.T) {
	srv := fakeService(t)
	c := NewClient(srv.URL+"/", "", time.Second)

	res, err := c.Next(context.Background(), dto.SessionQuery{CandidateId: "c", JobId: "j"})
	require.NoError(t, err)
	assert.Equal(t, "Q2", res.Question)
	require.NotNil(t, res.QuestionIndex)
	assert.Equal(t, 1, *res.QuestionIndex)
}

func TestClientErrorEnvelope(t *testing.T) {
	srv := fakeService(t)
	c := NewClient(srv.URL, "", time.Second)

	_, err := c.Transcript(context.Background(), dto.SessionQuery{CandidateId: "c", JobId: "j"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "session not found")
}

func TestAnswerCommandUsesNextQuestion(t *testing.T) {
	srv := fakeService(t)
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"answer", "my answer", "--server", srv.URL, "--token", "tok", "--candidate", "c", "--job", "j"})

	require.NoError(t, rootCmd.Execute())

	var res dto.SubmitAnswerResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "Q2", res.Category)
}
