package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview"

	"github.com/patrickmn/go-cache"
)

const (
	defaultTimeout = 10 * time.Second
	lookupCacheKey = "company_id"
	lookupCacheTTL = 5 * time.Minute
)

type companyProfile struct {
	CompanyId json.RawMessage `json:"company_id"`
}

type profilesResponse struct {
	CompanyProfiles []companyProfile `json:"company_profiles"`
}

// Client asks the company directory service which company is hiring.
type Client struct {
	url        string
	httpClient *http.Client
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewClient(url string, timeout time.Duration, logger logger.ILogger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.New(lookupCacheTTL, 10*time.Minute),
		logger:     logger,
	}
}

// LookupCompanyId returns the first company profile's id.
func (c *Client) LookupCompanyId(ctx context.Context) (string, error) {
	if x, found := c.cache.Get(lookupCacheKey); found {
		return x.(string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Directory", "Company lookup failed", map[string]interface{}{"error": err.Error()})
		return "", fmt.Errorf("%w: company directory: %v", interview.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read company directory response: %v", interview.ErrUpstreamFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Directory", "Company directory returned error status", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return "", fmt.Errorf("%w: company directory status %d", interview.ErrUpstreamFailure, resp.StatusCode)
	}

	var parsed profilesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: company directory: %v", interview.ErrMalformedResponse, err)
	}
	if len(parsed.CompanyProfiles) == 0 {
		return "", fmt.Errorf("%w: no company profiles found", interview.ErrUpstreamFailure)
	}

	id := rawID(parsed.CompanyProfiles[0].CompanyId)
	if id == "" {
		return "", fmt.Errorf("%w: company profile has no company_id", interview.ErrMalformedResponse)
	}

	c.cache.SetDefault(lookupCacheKey, id)
	return id, nil
}

// rawID accepts ids encoded as JSON strings or numbers.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
