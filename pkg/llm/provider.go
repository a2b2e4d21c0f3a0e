package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature  float64
	MaxTokens    int
	Model        string // Override default model
	JSONResponse bool   // Ask the backend for a JSON object instead of free text
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithJSONResponse switches the backend into JSON mode where supported.
func WithJSONResponse() Option {
	return func(o *Options) {
		o.JSONResponse = true
	}
}

// NewOptions applies opts on top of the defaults every provider shares.
func NewOptions(opts ...Option) *Options {
	options := &Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
