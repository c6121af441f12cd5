package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/prismtrack/console/internal/metrics"
)

// AgentPackage is an open installer stream. The caller owns Body and must
// close it.
type AgentPackage struct {
	Filename      string
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

var (
	rfc5987Filename  = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;]+)`)
	standardFilename = regexp.MustCompile(`(?i)filename\*?=['"]?([^'";\s]+)['"]?`)
	trailingJunk     = regexp.MustCompile(`[_\s]+$`)
	msiUnderscores   = regexp.MustCompile(`\.msi_+$`)
	msiSuffix        = regexp.MustCompile(`\.msi_?$`)
)

// DownloadAgentPackage fetches the installer for one org ID. It uses the
// long-timeout download client and never attempts a token refresh; a 401
// here means the page is stale and the caller should re-run the page flow.
func (c *Client) DownloadAgentPackage(ctx context.Context, sess *Session, orgID string) (*AgentPackage, error) {
	token := sess.bearer()
	if token == "" {
		return nil, ErrSessionExpired
	}

	endpoint, err := c.endpointURL("/tenant/download-agent/"+url.PathEscape(orgID), nil)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.download.Do(req)
	if err != nil {
		metrics.AgentDownloadsTotal.WithLabelValues("transport_error").Inc()
		c.logger.Error("agent download failed", "org_id", orgID, "error", err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		resp.Body.Close()
		metrics.AgentDownloadsTotal.WithLabelValues("error").Inc()
		return nil, &DownloadError{
			StatusCode: resp.StatusCode,
			Detail:     downloadDetail(raw),
		}
	}

	metrics.AgentDownloadsTotal.WithLabelValues("ok").Inc()
	if resp.ContentLength > 0 {
		metrics.AgentDownloadBytes.Add(float64(resp.ContentLength))
	}
	return &AgentPackage{
		Filename:      packageFilename(resp.Header.Get("Content-Disposition"), orgID),
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// packageFilename derives the installer filename from a Content-Disposition
// header, preferring the RFC 5987 encoded form, and guarantees a .msi name
// even when the header is absent or mangled.
func packageFilename(disposition, orgID string) string {
	filename := fmt.Sprintf("PrismTrack_Agent_%s.msi", orgID)

	if disposition != "" {
		var extracted string
		if m := rfc5987Filename.FindStringSubmatch(disposition); m != nil {
			if decoded, err := url.PathUnescape(m[1]); err == nil {
				extracted = decoded
			}
		}
		if extracted == "" {
			if m := standardFilename.FindStringSubmatch(disposition); m != nil {
				extracted = m[1]
			}
		}
		if extracted != "" {
			extracted = cleanFilename(extracted)
			if strings.HasSuffix(extracted, ".msi") {
				filename = extracted
			}
		}
	}

	filename = cleanFilename(filename)
	if !strings.HasSuffix(filename, ".msi") {
		filename = msiSuffix.ReplaceAllString(filename, "") + ".msi"
	}
	return filename
}

func cleanFilename(name string) string {
	name = strings.TrimSpace(name)
	name = trailingJunk.ReplaceAllString(name, "")
	return msiUnderscores.ReplaceAllString(name, ".msi")
}

func downloadDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return "Download failed"
}
