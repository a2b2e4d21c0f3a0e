package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhanushgc/HireMind/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsJSONFormat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: ollamaMessage{Role: "assistant", Content: `{"questions":[]}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: "model", Content: "earlier"},
		{Role: llm.RoleUser, Content: "hi"},
	}, llm.WithJSONResponse(), llm.WithMaxTokens(64))

	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, out)
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 64, got.Options.NumPredict)
	assert.Equal(t, "assistant", got.Messages[1].Role)
}

func TestChatNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")
	_, err := p.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
