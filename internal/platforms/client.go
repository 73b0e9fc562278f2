// ABOUTME: Shared HTTP plumbing for platform adapters.
// ABOUTME: Rate-limited requests, bearer auth, and error mapping to the feed taxonomy.
package platforms

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/myface/snapjournal/internal/feed"
)

// requestsPerSecond keeps adapters polite toward platform APIs even when
// live mode polls aggressively.
const requestsPerSecond = 2

// apiClient wraps http.Client with a token-bucket limiter shared by all
// calls for one adapter instance.
type apiClient struct {
	platform string
	http     *http.Client
	limiter  *rate.Limiter
}

func newAPIClient(platform string) *apiClient {
	return &apiClient{
		platform: platform,
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// getJSON issues an authenticated GET and decodes the response into out.
func (c *apiClient) getJSON(req *http.Request, op string, cred feed.Credential, out any) error {
	req.Header.Set("Authorization", "Bearer "+string(cred))
	return c.doJSON(req, op, out)
}

// postJSON issues an authenticated POST; out may be nil when the response
// body is irrelevant.
func (c *apiClient) postJSON(req *http.Request, op string, cred feed.Credential, out any) error {
	req.Header.Set("Authorization", "Bearer "+string(cred))
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, op, out)
}

func (c *apiClient) doJSON(req *http.Request, op string, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return &feed.NetworkError{Platform: c.platform, Op: op, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &feed.NetworkError{Platform: c.platform, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.statusError(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &feed.NetworkError{Platform: c.platform, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError maps HTTP status codes onto the pipeline error taxonomy:
// 401/403 demand re-authentication, everything else is retryable.
func (c *apiClient) statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err := fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &feed.AuthError{Platform: c.platform, Op: op, Err: err}
	default:
		return &feed.NetworkError{Platform: c.platform, Op: op, StatusCode: resp.StatusCode, Err: err}
	}
}
