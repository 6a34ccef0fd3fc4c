// Package remote is the HTTP client of the storefront backend. Every
// endpoint answers with a JSON envelope {success, message, <payload>}; the
// client maps each payload into domain types and every failure into *Error.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

var (
	// ErrUnavailable covers network failures, unexpected statuses and
	// bodies that are not a valid envelope.
	ErrUnavailable = errors.New("remote store unavailable")
	// ErrRejected means the remote store answered with success=false.
	ErrRejected = errors.New("remote store rejected request")
)

// Error describes a failed remote call.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Kind       error
	Cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

type Client struct {
	baseURL  *url.URL
	http     *http.Client
	currency currency.Unit
	log      *zap.SugaredLogger
	timeout  *time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request; zero leaves requests unbounded. The
// timeout is set on a copy, a client passed to WithHTTPClient is not changed.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithCurrency sets the unit of the amounts the backend reports.
func WithCurrency(unit currency.Unit) Option {
	return func(c *Client) {
		c.currency = unit
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.Sugar()
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:  u,
		http:     &http.Client{},
		currency: domain.DefaultCurrency,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}

	return c, nil
}

var (
	_ port.Catalog    = (*Client)(nil)
	_ port.RemoteCart = (*Client)(nil)
	_ port.Orders     = (*Client)(nil)
	_ port.Payments   = (*Client)(nil)
)

// enveloped is implemented by every response type through the embedded envelope.
type enveloped interface {
	header() envelope
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out enveloped) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: ErrUnavailable, Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.log.Debugw("remote_call",
		"op", op,
		"method", method,
		"path", endpoint.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	if resp.StatusCode == http.StatusMethodNotAllowed {
		return &Error{Op: op, StatusCode: resp.StatusCode, Kind: port.ErrUnsupported}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Kind: ErrUnavailable, Cause: err}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Kind: ErrUnavailable, Cause: fmt.Errorf("malformed envelope: %w", err)}
	}

	head := out.header()
	if !head.Success {
		kind := ErrRejected
		if resp.StatusCode >= http.StatusInternalServerError {
			kind = ErrUnavailable
		}
		return &Error{Op: op, StatusCode: resp.StatusCode, Message: head.Message, Kind: kind}
	}

	return nil
}

func (c *Client) money(amount jsonAmount) domain.Money {
	return domain.Money{Amount: amount.Decimal, Currency: c.currency}
}
