// Package rest implements the repository interfaces against the JSON REST backend.
package rest

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

	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"
)

const maxErrorBody = 64 << 10

// Observer receives one notification per backend call, used for metrics
type Observer interface {
	ObserveBackendCall(operation string, status int, duration time.Duration)
}

type Client struct {
	baseURL  *url.URL
	http     *http.Client
	observer Observer
}

// NewClient builds a client for baseURL. A zero timeout leaves the http.Client
// default in place, which never times out.
func NewClient(baseURL string, timeout time.Duration, observer Observer) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse backend URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend URL must be absolute: %q", baseURL)
	}
	return &Client{
		baseURL:  u,
		http:     &http.Client{Timeout: timeout},
		observer: observer,
	}, nil
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

type result struct {
	status  int
	cookies []*http.Cookie
}

// do performs one backend request and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, req call, out any) (*result, error) {
	logger.BackendCall(ctx, req.method, req.path, "operation", req.op)
	start := time.Now()

	res, err := c.roundTrip(ctx, req, out)
	status := 0
	if res != nil {
		status = res.status
	}
	if c.observer != nil {
		c.observer.ObserveBackendCall(req.op, status, time.Since(start))
	}
	logger.BackendResult(ctx, req.method, req.path, status, err, "operation", req.op)
	return res, err
}

func (c *Client) roundTrip(ctx context.Context, req call, out any) (*result, error) {
	u := *c.baseURL
	u.Path = u.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		// Messages are sanitized HTML and go out unescaped
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(req.body); err != nil {
			return nil, &UnexpectedError{Op: req.op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		body = bytes.NewReader(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, &UnexpectedError{Op: req.op, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range repository.CredentialsFrom(ctx) {
		httpReq.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &UnexpectedError{Op: req.op, Err: err}
	}
	defer resp.Body.Close()

	res := &result{status: resp.StatusCode, cookies: resp.Cookies()}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return res, errorFromResponse(req.op, resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return res, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return res, &UnexpectedError{Op: req.op, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return res, nil
}

func toBackendCookies(cookies []*http.Cookie) []domain.BackendCookie {
	out := make([]domain.BackendCookie, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		out = append(out, domain.BackendCookie{Name: ck.Name, Value: ck.Value, Expires: ck.Expires})
	}
	return out
}

func idPath(format string, ids ...int32) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}

// messageBody is the optional free-text note sent with enrollment transitions
type messageBody struct {
	Message string `json:"message,omitempty"`
}

func withMessage(message string) any {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	return messageBody{Message: message}
}
