package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dhanushgc/HireMind/pkg/llm"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

var _ llm.LLMProvider = &GeminiProvider{}

// NewGeminiProvider talks to the Gemini API. An empty baseURL uses the
// public endpoint.
func NewGeminiProvider(ctx context.Context, apiKey, baseURL, modelName string) (*GeminiProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if modelName = strings.TrimSpace(modelName); modelName == "" {
		modelName = defaultModel
	}

	return &GeminiProvider{client: client, modelName: modelName}, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	temperature := float32(options.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.JSONResponse {
		config.ResponseMIMEType = "application/json"
	}

	var contents []*genai.Content
	for _, m := range history {
		switch m.Role {
		case llm.RoleSystem:
			// Gemini takes the system prompt out of band
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
		case llm.RoleAssistant, "model":
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}
	if len(contents) == 0 {
		return "", errors.New("prompt must not be empty")
	}

	model := g.modelName
	if options.Model != "" {
		model = options.Model
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
