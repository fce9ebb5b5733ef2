package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// maxBodySize caps how much of a response body is read. Registry values are small strings,
// so anything near this size is a misbehaving server.
const maxBodySize = 2 * 1024 * 1024

// Operation names used in *TransportError messages.
const (
	opGetValue    = "get registry value"
	opGetValues   = "get registry values"
	opSetValue    = "set registry value"
	opDeleteValue = "delete registry value"
)

// RequestIDHeader is set on every request so registry logs can be matched with ours.
const RequestIDHeader = "X-Request-Id"

// Client reads and writes the MCP instance data registry over HTTP. It keeps no state between
// calls beyond its immutable Config and is safe for concurrent use.
type Client struct {
	cfg        Config
	logger     *slog.Logger
	httpClient *http.Client
}

// New creates a registry client. It never fails: the Config is validated on every call so a
// missing setting surfaces as a *ConfigurationError before any request is made.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout()}
	}

	return &Client{
		cfg:        cfg,
		logger:     logger.With("component", "registry"),
		httpClient: httpClient,
	}
}

// GetValue fetches a single key from {endpoint}/{key}. found is false when the registry
// answers 404 or when the response carries no value; neither case is an error.
func (c *Client) GetValue(ctx context.Context, key string) (value any, found bool, err error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, false, err
	}

	var body envelope
	status, err := c.exchange(ctx, call{
		op:            opGetValue,
		method:        http.MethodGet,
		url:           c.keyURL(key),
		into:          &body,
		allowNotFound: true,
	})
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusNotFound {
		c.logger.Debug("Key not found", "key", key)
		return nil, false, nil
	}

	if err := body.field(fieldValue, &value); err != nil {
		return nil, false, &TransportError{Op: opGetValue, Err: err}
	}
	return value, value != nil, nil
}

// GetAllValues fetches every key stored for this instance from the bare endpoint. A response
// without a "values" field yields an empty map. Unlike GetValue, a 404 here is an *HTTPError.
func (c *Client) GetAllValues(ctx context.Context) (map[string]any, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	var body envelope
	if _, err := c.exchange(ctx, call{
		op:     opGetValues,
		method: http.MethodGet,
		url:    c.cfg.Endpoint,
		into:   &body,
	}); err != nil {
		return nil, err
	}

	var values map[string]any
	if err := body.field(fieldValues, &values); err != nil {
		return nil, &TransportError{Op: opGetValues, Err: err}
	}
	if values == nil {
		return map[string]any{}, nil
	}
	return values, nil
}

// SetValue stores a string value under key. The registry only accepts string values.
func (c *Client) SetValue(ctx context.Context, key, value string) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	_, err := c.exchange(ctx, call{
		op:      opSetValue,
		method:  http.MethodPut,
		url:     c.keyURL(key),
		payload: setValueRequest{Value: value},
	})
	return err
}

// DeleteValue removes key from the registry. deleted is false when the key did not exist.
func (c *Client) DeleteValue(ctx context.Context, key string) (deleted bool, err error) {
	if err := c.cfg.Validate(); err != nil {
		return false, err
	}

	status, err := c.exchange(ctx, call{
		op:            opDeleteValue,
		method:        http.MethodDelete,
		url:           c.keyURL(key),
		allowNotFound: true,
	})
	if err != nil {
		return false, err
	}
	return status != http.StatusNotFound, nil
}

// keyURL joins by plain concatenation; keys are not escaped.
func (c *Client) keyURL(key string) string {
	return c.cfg.Endpoint + "/" + key
}

// call describes a single request/response round trip.
type call struct {
	op      string
	method  string
	url     string
	payload any
	// into receives the decoded body of a 2xx response; nil skips decoding
	into any
	// allowNotFound turns a 404 into a normal return instead of an *HTTPError
	allowNotFound bool
}

// exchange performs the request and maps the response status onto the error taxonomy.
// The returned status code is only meaningful when err is nil.
func (c *Client) exchange(ctx context.Context, ex call) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	req, err := c.newRequest(ctx, ex)
	if err != nil {
		return 0, &TransportError{Op: ex.op, Err: err}
	}
	logger := c.logger.With("method", ex.method, "url", ex.url, "request_id", req.Header.Get(RequestIDHeader))
	logger.Debug("Sending registry request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Op: ex.op, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Debug("Failed to close response body", "error", err)
		}
	}()

	logger.Debug("Received registry response", "status", resp.StatusCode)

	switch code := resp.StatusCode; {
	case code == http.StatusNotFound && ex.allowNotFound:
		drain(resp.Body)
		return code, nil
	case code == http.StatusUnauthorized:
		drain(resp.Body)
		return code, &AuthenticationError{URL: ex.url}
	case code < 200 || code >= 300:
		drain(resp.Body)
		return code, &HTTPError{StatusCode: code, Reason: reasonPhrase(resp), URL: ex.url}
	}

	if ex.into == nil {
		drain(resp.Body)
		return resp.StatusCode, nil
	}

	if err := decodeBody(resp.Body, ex.into); err != nil {
		return resp.StatusCode, &TransportError{Op: ex.op, Err: err}
	}
	return resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, ex call) (*http.Request, error) {
	var body io.Reader
	if ex.payload != nil {
		data, err := json.Marshal(ex.payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, ex.method, ex.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	requestID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request id: %w", err)
	}
	req.Header.Set(RequestIDHeader, requestID.String())

	return req, nil
}

// decodeBody reads at most maxBodySize bytes and decodes them as a single JSON value.
func decodeBody(body io.Reader, into any) error {
	data, err := io.ReadAll(io.LimitReader(body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > maxBodySize {
		return fmt.Errorf("response body exceeds %d bytes", maxBodySize)
	}
	return decodeJSON(data, into)
}

// reasonPhrase extracts the text after the status code, falling back to the standard text.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodySize))
}
