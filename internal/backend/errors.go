package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAPI is the sentinel wrapped by every APIError.
var ErrAPI = errors.New("prismtrack api error")

// ErrDownload is the sentinel wrapped by every DownloadError.
var ErrDownload = errors.New("agent download failed")

// ErrSessionExpired is returned when the held access token was rejected and
// the single refresh attempt failed. The session is already cleared by the
// time callers see this; the HTTP layer turns it into a login redirect.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the PrismTrack backend.
type APIError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	status := strings.TrimSpace(e.Status)
	detail := strings.TrimSpace(e.Detail)
	if status != "" && detail != "" {
		return fmt.Sprintf("prismtrack api error: %s: %s", status, detail)
	}
	if status != "" {
		return fmt.Sprintf("prismtrack api error: %s", status)
	}
	if detail != "" {
		return fmt.Sprintf("prismtrack api error: %s", detail)
	}
	return "prismtrack api error"
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

// Message returns the backend detail when present, generic text otherwise.
// This is the string surfaced to browsers.
func (e *APIError) Message() string {
	if e == nil {
		return "Request failed"
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		return detail
	}
	return "Request failed"
}

// DownloadError is a non-2xx response from the agent package endpoint.
type DownloadError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *DownloadError) Error() string {
	if e == nil {
		return ""
	}
	detail := strings.TrimSpace(e.Detail)
	if detail == "" {
		detail = strings.TrimSpace(e.Status)
	}
	if detail == "" {
		return "agent download failed"
	}
	return fmt.Sprintf("agent download failed: %s", detail)
}

func (e *DownloadError) Unwrap() error {
	return ErrDownload
}

func (e *DownloadError) Message() string {
	if e == nil || strings.TrimSpace(e.Detail) == "" {
		return "Download failed"
	}
	return strings.TrimSpace(e.Detail)
}

// UserMessage extracts the text to show a browser for any backend error.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	var dlErr *DownloadError
	if errors.As(err, &dlErr) {
		return dlErr.Message()
	}
	if err != nil {
		return err.Error()
	}
	return "Request failed"
}
