package factory

import (
	"context"
	"fmt"

	"github.com/dhanushgc/HireMind/pkg/llm"
	"github.com/dhanushgc/HireMind/pkg/llm/gemini"
	"github.com/dhanushgc/HireMind/pkg/llm/ollama"
	"github.com/dhanushgc/HireMind/pkg/llm/openai"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

type ProviderConfig struct {
	Provider  string
	ModelName string
	APIKey    string
	BaseURL   string
}

func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an api key")
		}
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.ModelName), nil
	case ProviderGemini:
		return gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.BaseURL, cfg.ModelName)
	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
