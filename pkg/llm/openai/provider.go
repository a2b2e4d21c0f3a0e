package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhanushgc/HireMind/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client    *goopenai.Client
	modelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider builds a client for OpenAI or any compatible endpoint
// when baseURL is set.
func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(config),
		modelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	messages := make([]goopenai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		role := m.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages = append(messages, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}
	if options.JSONResponse {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
