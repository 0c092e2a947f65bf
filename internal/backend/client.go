package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// PasteService defines the remote operations the editor depends on.
// This interface is implemented by *Client and can be replaced in tests.
type PasteService interface {
	GetMeta(ctx context.Context, id string) Result[paste.Meta]
	GetPaste(ctx context.Context, id string) Result[string]
	SavePaste(ctx context.Context, req SaveRequest) (paste.SavedMeta, error)
}

// Ensure Client implements PasteService at compile time.
var _ PasteService = (*Client)(nil)

// SecretStore persists the ownership token handed out on save.
type SecretStore interface {
	Secret() string
	SetSecret(secret string) error
}

// SaveRequest describes a create or overwrite.
type SaveRequest struct {
	Text string
	Mime string
	// ID is empty to create a new paste.
	ID string
	// Expiry in seconds; zero or negative lets the backend pick its default.
	Expiry int64
}

// Client talks to the pasta HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	secrets   SecretStore
	limiter   *rate.Limiter
	log       zerolog.Logger
}

const (
	defaultBackendURL = "127.0.0.1:8080"
	defaultUserAgent  = "pasta/0.1"
	requestTimeout    = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests. A non-positive rps disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger attaches a logger for per-request debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for backendURL. Secrets are read for metadata
// lookups and saves, and written after every successful save.
func NewClient(backendURL string, secrets SecretStore, opts ...Option) (*Client, error) {
	if secrets == nil {
		return nil, errors.New("backend client requires a secret store")
	}
	base, err := ParseBaseURL(backendURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		secrets:   secrets,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetMeta fetches paste metadata, proving ownership with the stored secret
// when one is held.
func (c *Client) GetMeta(ctx context.Context, id string) Result[paste.Meta] {
	path := "/api/meta/" + url.PathEscape(id) + "/" + url.PathEscape(c.secrets.Secret())
	body, err := c.do(ctx, "meta", http.MethodGet, path, nil)
	if err != nil {
		return failed[paste.Meta](err)
	}
	var meta paste.Meta
	if err := json.Unmarshal(body, &meta); err != nil {
		return Result[paste.Meta]{Outcome: OutcomeTransient, Err: errors.Wrap(err, "decode response")}
	}
	return ok(meta)
}

// GetPaste fetches the raw paste body.
func (c *Client) GetPaste(ctx context.Context, id string) Result[string] {
	body, err := c.do(ctx, "raw", http.MethodGet, "/raw/"+url.PathEscape(id), nil)
	if err != nil {
		return failed[string](err)
	}
	return ok(string(body))
}

// SavePaste creates a paste, or overwrites req.ID when the stored secret owns
// it. The returned secret is persisted before SavePaste returns. Failures are
// always *SaveError.
func (c *Client) SavePaste(ctx context.Context, req SaveRequest) (paste.SavedMeta, error) {
	expiry := ""
	if req.Expiry > 0 {
		expiry = strconv.FormatInt(req.Expiry, 10)
	}
	path := "/api/new/" + url.PathEscape(req.ID) +
		"/" + url.PathEscape(c.secrets.Secret()) +
		"/" + expiry +
		"/" + escapeMime(req.Mime)

	body, err := c.do(ctx, "new", http.MethodPost, path, strings.NewReader(req.Text))
	if err != nil {
		return paste.SavedMeta{}, newSaveError(err)
	}
	var meta paste.SavedMeta
	if err := json.Unmarshal(body, &meta); err != nil {
		return paste.SavedMeta{}, newSaveError(errors.Wrap(err, "decode response"))
	}
	if err := c.secrets.SetSecret(meta.Secret); err != nil {
		c.log.Warn().Err(err).Str("id", meta.ID).Msg("persist paste secret failed")
	}
	return meta, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader) ([]byte, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "wait for rate limiter")
		}
	}

	reqURL := strings.TrimRight(c.baseURL.String(), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Str("request_id", requestID).Msg("backend request failed")
		return nil, errors.Wrap(err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	c.log.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode >= 400 {
		return nil, &StatusError{Op: op, Status: resp.StatusCode, Body: payload}
	}
	return payload, nil
}

// escapeMime escapes each segment of a MIME type but keeps the separating
// slash, which the backend routes on.
func escapeMime(mime string) string {
	parts := strings.Split(mime, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// ParseBaseURL normalizes a backend address. Bare host:port values get an
// http scheme; a path prefix is kept so the API can live below a subpath.
func ParseBaseURL(backendURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(backendURL)
	if trimmed == "" {
		trimmed = defaultBackendURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "parse backend url %q", backendURL)
	}
	if u.Host == "" {
		return nil, errors.Errorf("backend url %q has no host", backendURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
