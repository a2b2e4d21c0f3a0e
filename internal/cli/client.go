package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dhanushgc/HireMind/internal/dto"
	"github.com/dhanushgc/HireMind/internal/pkg/serverutils"
)

const apiPrefix = "/api/interview/v1"

// Client talks to a running interview service.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Generate(ctx context.Context, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	var out dto.GenerateQuestionsResponse
	return &out, c.post(ctx, "/question", req, &out)
}

func (c *Client) Next(ctx context.Context, req dto.SessionQuery) (*dto.NextQuestionResponse, error) {
	var out dto.NextQuestionResponse
	return &out, c.post(ctx, "/next", req, &out)
}

func (c *Client) Answer(ctx context.Context, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	var out dto.SubmitAnswerResponse
	return &out, c.post(ctx, "/answer", req, &out)
}

func (c *Client) Transcript(ctx context.Context, req dto.SessionQuery) (*dto.TranscriptResponse, error) {
	var out dto.TranscriptResponse
	return &out, c.post(ctx, "/transcript", req, &out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode >= 300 {
		var e serverutils.ErrorBody
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s: %d %s", path, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	envelope := serverutils.SuccessBody[json.RawMessage]{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return json.Unmarshal(envelope.Data, out)
}
