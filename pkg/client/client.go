package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pioneersx/pioneersx/pkg/session"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.pioneersx.store/api"

// RequestIDHeader carries a per-request UUID for log correlation.
const RequestIDHeader = "X-Request-ID"

const maxBodySize = 10 << 20 // 10 MB

// Client is the PioneersX backend client. It is safe for concurrent use;
// the only state shared between calls is the session store.
type Client struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
	log        *zap.Logger
	headers    map[string]string
	onExpired  func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHeader adds a header sent on every request. Per-call headers and the
// Authorization header take precedence.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return WithHeader("User-Agent", ua)
}

// WithSessionExpiredHandler registers fn to run after a 401 has cleared the
// session. The CLI uses it to point the user back at `login`.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) {
		c.onExpired = fn
	}
}

// New creates a client for baseURL that keeps its session in store.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:     zap.NewNop(),
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Execute sends one request and normalizes the outcome. body is JSON-encoded
// when non-nil; headers are merged over the defaults. It never returns an
// error: transport failures become a KindTransport result and a 401 clears
// the session and yields KindSessionExpired.
func (c *Client) Execute(ctx context.Context, method, path string, body any, headers map[string]string) Result {
	reqID := uuid.NewString()
	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
	)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return c.fail(log, fmt.Errorf("marshal body: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return c.fail(log, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(RequestIDHeader, reqID)

	token, err := c.store.Token(ctx)
	if err != nil {
		log.Warn("read session token, sending unauthenticated", zap.Error(err))
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(log, fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	log = log.With(zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize)) //nolint:errcheck // drain for connection reuse
		c.expire(ctx, log)
		return sessionExpired()
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.fail(log, fmt.Errorf("read response: %w", err))
	}
	res, err := normalize(resp.StatusCode, raw)
	if err != nil {
		return c.fail(log, err)
	}
	log.Debug("backend response", zap.Bool("success", res.Success))
	return res
}

// normalize maps a non-401 response onto a Result. An empty body is read
// as JSON null; any other non-JSON body is an error.
func normalize(status int, raw []byte) (Result, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("null")
	}
	if !json.Valid(raw) {
		return Result{}, fmt.Errorf("decode response: body is not JSON")
	}

	res := Result{
		Success: status >= 200 && status < 300,
		Data:    json.RawMessage(raw),
		Status:  status,
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) == nil {
		if d, ok := fields["data"]; ok && truthy(d) {
			res.Data = d
		}
		var msg string
		if m, ok := fields["message"]; ok && json.Unmarshal(m, &msg) == nil {
			res.Message = msg
		}
	}

	if res.Success {
		res.Kind = KindOK
		if res.Message == "" {
			res.Message = MsgSuccess
		}
	} else {
		res.Kind = KindDomain
		if res.Message == "" {
			res.Message = MsgRequestFailed
		}
	}
	if isNull(res.Data) {
		res.Data = nil
	}
	return res, nil
}

func (c *Client) fail(log *zap.Logger, err error) Result {
	log.Warn("backend request failed", zap.Error(err))
	return transportFailure(err)
}

func (c *Client) expire(ctx context.Context, log *zap.Logger) {
	log.Info("session expired, clearing stored credentials")
	if err := c.store.Clear(ctx); err != nil {
		log.Warn("clear session", zap.Error(err))
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// truthy mirrors the web client's loose presence test, used both for the
// data fallback and before persisting a value: null, false, 0 and "" do
// not count.
func truthy(raw json.RawMessage) bool {
	switch s := string(bytes.TrimSpace(raw)); s {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}
