// Package backend is the single choke point for every PrismTrack API call.
// It owns bearer-header injection, the one-shot token refresh on 401, and
// the unwrapping of backend error payloads.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prismtrack/console/internal/metrics"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultDownloadTimeout = 5 * time.Minute
	maxErrorBodySize       = 1 << 20 // 1 MiB
	userAgent              = "prismtrack-console"
)

type Options struct {
	HTTPClient      *http.Client
	DownloadClient  *http.Client
	Logger          *slog.Logger
	Timeout         time.Duration
	DownloadTimeout time.Duration
}

// Client issues requests against the PrismTrack REST backend. It carries no
// credential state of its own; every call takes the caller's Session.
type Client struct {
	baseURL  string
	http     *http.Client
	download *http.Client
	logger   *slog.Logger
}

func New(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	downloadTimeout := opts.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = defaultDownloadTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	downloadClient := opts.DownloadClient
	if downloadClient == nil {
		downloadClient = &http.Client{Timeout: downloadTimeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		download: downloadClient,
		logger:   logger,
	}, nil
}

// call performs one backend request. A held access token is attached as a
// bearer header. A 401 triggers exactly one refresh attempt followed by one
// retry of the original request; a failed refresh clears the session and
// yields ErrSessionExpired. Other non-2xx statuses become *APIError.
func (c *Client) call(ctx context.Context, sess *Session, op, method, path string, query url.Values, in, out any) error {
	endpoint, err := c.endpointURL(path, query)
	if err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		payload, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	started := time.Now()
	token := sess.bearer()
	status, err := c.doOnce(ctx, token, method, endpoint, payload, out)
	if status == http.StatusUnauthorized && sess != nil {
		if refreshErr := c.refreshSession(ctx, sess, token); refreshErr != nil {
			sess.Clear()
			c.logger.Warn("token refresh failed, session torn down", "operation", op, "error", refreshErr)
			c.observe(op, started, "session_expired")
			return ErrSessionExpired
		}
		status, err = c.doOnce(ctx, sess.bearer(), method, endpoint, payload, out)
	}

	switch {
	case err == nil:
		c.observe(op, started, "ok")
	case errors.Is(err, ErrAPI):
		c.observe(op, started, strconv.Itoa(status))
	default:
		c.logger.Error("backend request failed", "operation", op, "method", method, "url", safeURL(endpoint), "error", err)
		c.observe(op, started, "transport_error")
	}
	return err
}

// doOnce issues a single attempt and reports the HTTP status it saw
// (0 on transport failure).
func (c *Client) doOnce(ctx context.Context, token, method, endpoint string, payload []byte, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		resp.Body.Close()
		if readErr != nil {
			return resp.StatusCode, readErr
		}
		return resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     extractDetail(raw),
		}
	}

	raw, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return resp.StatusCode, readErr
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// refreshSession exchanges the held refresh token for a new token pair and
// rotates the session in place. It never recurses into call.
//
// Concurrent calls sharing one expired session all land here; the session
// lock is held across the exchange so only the first caller spends the
// refresh token. Later callers find staleToken already replaced and retry
// with the new one without issuing a second refresh.
func (c *Client) refreshSession(ctx context.Context, sess *Session, staleToken string) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.AccessToken != staleToken {
		if sess.AccessToken == "" {
			return errors.New("session cleared while waiting for refresh")
		}
		return nil
	}
	if sess.RefreshToken == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return errors.New("no refresh token held")
	}

	endpoint, err := c.endpointURL("/auth/refresh", nil)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return err
	}

	payload, err := json.Marshal(map[string]string{"refresh_token": sess.RefreshToken})
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	resp.Body.Close()
	if readErr != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Detail: extractDetail(raw)}
	}

	var tok Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return errors.New("refresh response missing access_token")
	}

	sess.AccessToken = tok.AccessToken
	sess.RefreshToken = tok.RefreshToken
	sess.rotated = true
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return nil
}

func (c *Client) endpointURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	u.Fragment = ""
	return u.String(), nil
}

func (c *Client) observe(op string, started time.Time, status string) {
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(op, status).Inc()
}

func pageQuery(skip, limit int) url.Values {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 100
	}
	return url.Values{
		"skip":  []string{strconv.Itoa(skip)},
		"limit": []string{strconv.Itoa(limit)},
	}
}

// extractDetail pulls the backend's "detail" message out of an error body.
// FastAPI-style validation errors carry structured detail; anything that is
// not a plain string is flattened to compact JSON.
func extractDetail(raw []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return strings.TrimSpace(s)
		}
		if b, err := json.Marshal(payload.Detail); err == nil {
			return string(b)
		}
	}
	return ""
}

func safeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Scheme + "://" + u.Host + u.Path
}
