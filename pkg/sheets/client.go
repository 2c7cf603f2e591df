// Package sheets is a client for the spreadsheet-backed Apps Script web app
// that stores students, attendance, calendars and the school profile.
//
// Reads are GET requests selected by an action query parameter and answer
// with a {success, data, message} envelope, except the student list which
// is a bare array. Writes are JSON POSTs discriminated by a "type" field
// whose response body is not part of the contract: a 2xx status only means
// the request was delivered, so callers re-read to learn the outcome.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/middleware/requestid"
)

const maxErrorBody = 512

// Observer receives one observation per store round-trip.
type Observer interface {
	ObserveStoreRequest(action, outcome string, duration time.Duration)
}

// Config configures a Client. Zero timeouts disable the per-call deadline.
type Config struct {
	Endpoint     string
	HTTPClient   *http.Client
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Observer     Observer
	Logger       *zap.Logger
}

// Client talks to the store endpoint.
type Client struct {
	endpoint     *url.URL
	http         *http.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
	observer     Observer
	logger       *zap.Logger
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// New validates the endpoint and returns a client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("store endpoint is required")
	}
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid store endpoint %q", cfg.Endpoint)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:     endpoint,
		http:         httpClient,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		observer:     cfg.Observer,
		logger:       logger,
	}, nil
}

// Get performs a read action and decodes the envelope's data into dest.
// A success=false envelope is reported as ErrStoreUnavailable carrying the
// store's message. A null data field leaves dest untouched.
func (c *Client) Get(ctx context.Context, action string, params url.Values, dest interface{}) error {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("action", action)

	body, err := c.do(ctx, action, http.MethodGet, query, nil, c.readTimeout)
	if err != nil {
		return err
	}
	return decodeEnvelope(action, body, dest)
}

// GetRaw performs the action-less read that returns the bare student array.
func (c *Client) GetRaw(ctx context.Context, label string, dest interface{}) error {
	body, err := c.do(ctx, label, http.MethodGet, nil, nil, c.readTimeout)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "unexpected "+label+" payload from store")
	}
	return nil
}

// Post delivers a write. Only transport failures and non-2xx statuses are
// errors; the response body is discarded.
func (c *Client) Post(ctx context.Context, label string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode "+label+" request")
	}
	_, err = c.do(ctx, label, http.MethodPost, nil, raw, c.writeTimeout)
	return err
}

// PostConfirmed delivers a write whose response must be a success envelope.
// timeout overrides the configured write timeout when positive.
func (c *Client) PostConfirmed(ctx context.Context, label string, payload interface{}, timeout time.Duration, dest interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode "+label+" request")
	}
	if timeout <= 0 {
		timeout = c.writeTimeout
	}
	body, err := c.do(ctx, label, http.MethodPost, nil, raw, timeout)
	if err != nil {
		return err
	}
	return decodeEnvelope(label, body, dest)
}

func (c *Client) do(ctx context.Context, label, method string, query url.Values, payload []byte, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target := *c.endpoint
	if query != nil {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build store request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := requestid.FromContext(ctx)
	if reqID != "" {
		req.Header.Set(requestid.Header, reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(label, "error", start)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, appErrors.Wrap(err, appErrors.ErrStoreTimeout.Code, appErrors.ErrStoreTimeout.Status, label+" timed out")
		}
		c.logger.Warn("store request failed", zap.String("action", label), zap.String("request_id", reqID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, label+" request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(label, "error", start)
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to read "+label+" response")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.observe(label, fmt.Sprintf("http_%d", resp.StatusCode), start)
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		c.logger.Warn("store returned non-2xx",
			zap.String("action", label),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return nil, appErrors.Clone(appErrors.ErrStoreUnavailable, fmt.Sprintf("%s failed with HTTP %d", label, resp.StatusCode))
	}

	c.observe(label, "ok", start)
	return body, nil
}

func (c *Client) observe(label, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveStoreRequest(label, outcome, time.Since(start))
	}
}

func decodeEnvelope(label string, body []byte, dest interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "unexpected "+label+" payload from store")
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = label + " was rejected by the store"
		}
		return appErrors.Clone(appErrors.ErrStoreUnavailable, msg)
	}
	if dest == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "unexpected "+label+" data from store")
	}
	return nil
}
