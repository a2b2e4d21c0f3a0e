package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dhanushgc/HireMind/pkg/interview/generation"
	"github.com/dhanushgc/HireMind/pkg/llm"
	"github.com/dhanushgc/HireMind/pkg/llm/ollama"

	"github.com/stretchr/testify/require"
)

// Runs against a local Ollama. Set OLLAMA_INTEGRATION=true to enable.
func TestOllamaGeneratesParseableQuestionSet(t *testing.T) {
	if os.Getenv("OLLAMA_INTEGRATION") != "true" {
		t.Skip("Skipping Ollama integration test: OLLAMA_INTEGRATION not set")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "llama3"
	}

	provider := ollama.NewOllamaProvider(baseURL, model)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	raw, err := provider.Generate(ctx, `Return ONLY a JSON object {"questions":[...]} with exactly 4 items, `+
		`2 with "type":"technical" and 2 with "type":"leadership", each with a non-empty "question", `+
		`for a backend Go engineer role.`, llm.WithJSONResponse(), llm.WithTemperature(0.2))
	require.NoError(t, err)

	questions, err := generation.ParseQuestionSet(raw)
	require.NoError(t, err, raw)
	require.Len(t, questions, 4)
}
