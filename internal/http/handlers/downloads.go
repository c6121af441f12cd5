package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/http/viewmodels"
)

// HandleAgentDownloadGet streams an agent installer for one org ID. The
// backend response body is piped straight through so large packages never
// buffer in memory.
func (h *Handlers) HandleAgentDownloadGet(c *echo.Context) error {
	orgID := strings.TrimSpace(c.Param("orgID"))
	if orgID == "" {
		return h.RenderNotFound(c)
	}
	sess := h.requestSession(c)

	pkg, err := h.API.DownloadAgentPackage(c.Request().Context(), sess, orgID)
	if expired, expErr := h.handleExpired(c, err); expired {
		return expErr
	}
	if err != nil {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Download failed",
			Description: backend.UserMessage(err),
		})
		return c.Redirect(http.StatusSeeOther, "/tenant")
	}
	defer pkg.Body.Close()

	header := c.Response().Header()
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pkg.Filename))
	header.Set("Content-Type", pkg.ContentType)
	if pkg.ContentLength > 0 {
		header.Set("Content-Length", fmt.Sprintf("%d", pkg.ContentLength))
	}
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response(), pkg.Body)
	return err
}
