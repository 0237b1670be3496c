package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/common"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
)

const (
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"

	mimeJSON = "application/json"
)

// TokenProvider supplies the bearer token for authenticated calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Transport issues requests against one server. It is safe for concurrent use
// once the token provider has been set.
type Transport struct {
	baseURL   string
	client    *http.Client
	tokens    TokenProvider
	userAgent string
	logger    logging.Logger
}

// NewTransport builds a Transport for baseURL. A nil httpClient gets a client
// with a 30 second timeout.
func NewTransport(baseURL string, httpClient *http.Client, logger logging.Logger) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Transport{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    httpClient,
		userAgent: common.AppName,
		logger:    logger,
	}
}

// SetTokenProvider installs the source of bearer tokens.
func (t *Transport) SetTokenProvider(p TokenProvider) {
	t.tokens = p
}

// HTTPClient exposes the underlying client so token issuers share it.
func (t *Transport) HTTPClient() *http.Client {
	return t.client
}

// URL joins path onto the base URL.
func (t *Transport) URL(path string) string {
	return t.baseURL + path
}

// Send performs one request and returns the body and status code. Non-2xx
// responses are returned together with a *StatusError.
func (t *Transport) Send(ctx context.Context, method, path string, headers map[string]string, body any) ([]byte, int, error) {
	target := t.URL(path)
	if hasPlaceholder(path) {
		return nil, 0, &TransportError{Op: "build", URL: target, Err: ErrInvalidURL}
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, 0, &TransportError{Op: "build", URL: target, Err: fmt.Errorf("%w: %v", ErrInvalidURL, err)}
	}

	reqHeaders := make(map[string]string, len(headers)+4)
	for k, v := range headers {
		reqHeaders[http.CanonicalHeaderKey(k)] = v
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
		if _, ok := reqHeaders[HeaderContentType]; !ok {
			reqHeaders[HeaderContentType] = mimeJSON
		}
	}

	if _, ok := reqHeaders[HeaderAccept]; !ok {
		reqHeaders[HeaderAccept] = mimeJSON
	}

	if _, ok := reqHeaders[HeaderAuthorization]; !ok {
		if t.tokens == nil {
			t.logger.Error(ctx, "no authorization header set by caller and no auth token available", "url", target)
			return nil, 0, ErrInvalidCredentials
		}
		token, err := t.tokens.Token(ctx)
		if err != nil {
			return nil, 0, err
		}
		if token == "" {
			return nil, 0, ErrInvalidCredentials
		}
		reqHeaders[HeaderAuthorization] = "Bearer " + token
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, &TransportError{Op: "build", URL: target, Err: fmt.Errorf("%w: %v", ErrInvalidURL, err)}
	}
	for k, v := range reqHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set(HeaderUserAgent, t.userAgent)

	t.logger.Debug(ctx, "sending request", "method", method, "path", path)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Op: strings.ToLower(method), URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Op: "read", URL: target, Err: err}
	}

	if !IsSuccess(resp.StatusCode) {
		t.logger.Debug(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode)
		return data, resp.StatusCode, &StatusError{Code: resp.StatusCode, Method: method, URL: target, Err: MapStatus(resp.StatusCode)}
	}

	return data, resp.StatusCode, nil
}

// SendJSON sends body and decodes a successful response into out. A nil out
// discards the response body.
func (t *Transport) SendJSON(ctx context.Context, method, path string, body, out any) error {
	data, _, err := t.Send(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
