package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dhanushgc/HireMind/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	GenerationConfig struct {
		ResponseMIMEType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

func newServer(t *testing.T, got *generateRequest, path *string, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatRequestsJSONMimeType(t *testing.T) {
	var got generateRequest
	var path string
	srv := newServer(t, &got, &path,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"ok\":true}"}]}}]}`)

	p, err := NewGeminiProvider(context.Background(), "g-test", srv.URL+"/", "gemini-test")
	require.NoError(t, err)

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: llm.RoleUser, Content: "hi"},
	}, llm.WithJSONResponse())

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.True(t, strings.HasSuffix(path, "/models/gemini-test:generateContent"), path)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMIMEType)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "sys", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "hi", got.Contents[0].Parts[0].Text)
}

func TestChatPlainTextHasNoMimeType(t *testing.T) {
	var got generateRequest
	var path string
	srv := newServer(t, &got, &path,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"hello"}]}}]}`)

	p, err := NewGeminiProvider(context.Background(), "g-test", srv.URL+"/", "gemini-test")
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Empty(t, got.GenerationConfig.ResponseMIMEType)
}

func TestChatEmptyCandidates(t *testing.T) {
	var got generateRequest
	var path string
	srv := newServer(t, &got, &path, `{"candidates":[]}`)

	p, err := NewGeminiProvider(context.Background(), "g-test", srv.URL+"/", "gemini-test")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "hi")
	assert.Error(t, err)
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "  ", "", "")
	assert.Error(t, err)
}
