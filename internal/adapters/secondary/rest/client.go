package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
)

const defaultTimeout = 15 * time.Second

// Client is the backend REST client shared by every endpoint wrapper. It
// carries the session cookie jar, the bearer token once logged in, a
// per-request id for log correlation, and an outbound rate limiter so a
// burst of calls (mark-all-read fans out one PATCH per notification) stays
// polite.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// Config holds REST client configuration.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	BurstSize         int
}

// NewClient creates a REST client for the given API base URL
// (e.g. http://host:8000/api).
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rest: base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("rest: creating cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	rps := cfg.RequestsPerSecond
	if rps == 0 {
		rps = 20
	}
	burst := cfg.BurstSize
	if burst == 0 {
		burst = 40
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger.With("component", "rest_client"),
	}, nil
}

// SetToken stores the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, or empty.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearToken drops the bearer token, e.g. after logout or a 401.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// doJSON performs a request with an optional JSON body and decodes a JSON
// response into out (out may be nil for endpoints with no useful body).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType, out)
}

// doForm performs a form-encoded POST, used by the auth endpoints.
func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	reader := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, reader, "application/x-www-form-urlencoded", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("rest: building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return fmt.Errorf("rest: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(method, path, requestID, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError surfaces the backend's {"detail": ...} message as a typed
// APIError. A body that isn't the expected envelope still produces an
// APIError with the status alone.
func (c *Client) decodeError(method, path, requestID string, resp *http.Response) error {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		_ = json.Unmarshal(body, &envelope)
	}

	apiErr := apperrors.NewAPIError(method, path, resp.StatusCode, envelope.Detail, requestID)
	c.logger.Warn("backend rejected request",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"detail", envelope.Detail,
		"request_id", requestID,
	)
	return apiErr
}
