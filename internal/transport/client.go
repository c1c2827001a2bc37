package transport

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client talks JSON to one marketplace API with authentication applied.
type Client struct {
	http        *http.Client
	auth        Authenticator
	baseURL     string
	marketplace string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a client for marketplace rooted at baseURL.
func New(marketplace, baseURL string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = NoAuth{}
	}
	c := &Client{
		http:        &http.Client{Timeout: DefaultHTTPTimeout},
		auth:        auth,
		baseURL:     strings.TrimRight(baseURL, "/"),
		marketplace: marketplace,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path and query onto the base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// DoJSON sends body as JSON with the given method and decodes the response into out.
// A nil body sends no payload; a nil out discards the response body.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WrapParse("json", path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), payload)
	if err != nil {
		return errors.NewValidationError("url", path, err.Error())
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return c.transportError(path, err)
	}
	return DecodeResponse(resp, out, c.marketplace, path)
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)

	start := time.Now()
	resp, err := c.http.Do(req)

	event := logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("took", time.Since(start))
	if resp != nil {
		event = event.Int("status", resp.StatusCode)
	}
	event.Msg("HTTP request")

	return resp, err
}

// Get downloads url and returns at most limit bytes of the body.
func (c *Client) Get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewValidationError("url", rawURL, err.Error())
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, c.transportError("download", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.APIError{
			Marketplace: c.marketplace,
			StatusCode:  resp.StatusCode,
			Endpoint:    rawURL,
			Message:     http.StatusText(resp.StatusCode),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, c.transportError("download", err)
	}
	if int64(len(data)) > limit {
		return nil, &errors.IOError{Operation: "read", Path: rawURL, Message: "download exceeds size limit"}
	}
	return data, nil
}

func (c *Client) transportError(operation string, err error) error {
	return &errors.TransportError{
		Marketplace: c.marketplace,
		Operation:   operation,
		Timeout:     IsTimeout(err),
		Err:         err,
	}
}

// IsTimeout reports whether err came from a deadline or network timeout.
func IsTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
