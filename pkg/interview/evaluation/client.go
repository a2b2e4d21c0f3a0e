package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview"
	"github.com/dhanushgc/HireMind/pkg/schema"
)

const DefaultTimeout = 30 * time.Second

var resultSchema = schema.MustValidator("evaluation", []byte(`{
  "type": "object",
  "required": ["classification"],
  "properties": {
    "classification": {"type": "string", "enum": ["strong", "vague", "incomplete", "off-topic"]},
    "follow_up": {"type": ["string", "null"]}
  }
}`))

// Result is the scoring service's verdict on one answer. Raw keeps the
// full evaluation object, which may carry scores we do not interpret.
type Result struct {
	Classification string          `json:"classification"`
	FollowUp       string          `json:"follow_up"`
	Raw            json.RawMessage `json:"-"`
}

type envelope struct {
	Evaluation json.RawMessage `json:"evaluation"`
}

// Client calls the adaptive scoring service.
type Client struct {
	url        string
	httpClient *http.Client
	logger     logger.ILogger
}

func NewClient(url string, timeout time.Duration, logger logger.ILogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Evaluate(ctx context.Context, task interview.EvaluationTask) (*Result, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: adaptive engine: %v", interview.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read adaptive engine response: %v", interview.ErrUpstreamFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: adaptive engine status %d: %s", interview.ErrUpstreamFailure, resp.StatusCode, truncate(body, 256))
	}

	return ParseResult(body)
}

// ParseResult reads {"evaluation": ...}. The evaluation may be an object or
// a string holding JSON.
func ParseResult(body []byte) (*Result, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", interview.ErrMalformedResponse, err)
	}
	if len(env.Evaluation) == 0 || string(env.Evaluation) == "null" {
		return nil, fmt.Errorf("%w: response has no evaluation", interview.ErrMalformedResponse)
	}

	raw := []byte(env.Evaluation)
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		raw = []byte(encoded)
	}

	if err := resultSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", interview.ErrMalformedResponse, err)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", interview.ErrMalformedResponse, err)
	}
	result.Raw = json.RawMessage(raw)
	return &result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
