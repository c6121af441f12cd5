package handlers

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/prismtrack/console/internal/http/viewmodels"
	"github.com/prismtrack/console/internal/http/views"
)

// parseListParams reads skip/limit query params, clamping to sane bounds.
// The limit default comes from config so operators can tune page size.
func (h *Handlers) parseListParams(c *echo.Context) (int, int) {
	skip := 0
	if raw := strings.TrimSpace(c.QueryParam("skip")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			skip = parsed
		}
	}

	limit := h.Cfg.ListLimit
	if limit < 1 {
		limit = 100
	}
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	return skip, limit
}

// buildPagination derives the paging strip for a skip/limit listing.
func buildPagination(baseHref string, skip, limit, shown, total int) viewmodels.PaginationViewData {
	if limit < 1 {
		limit = 1
	}
	pg := viewmodels.PaginationViewData{
		Page:       skip/limit + 1,
		TotalPages: (total + limit - 1) / limit,
		PerPage:    limit,
		Total:      total,
	}
	if pg.TotalPages < 1 {
		pg.TotalPages = 1
	}
	if shown > 0 {
		pg.ShowingFrom = skip + 1
		pg.ShowingTo = skip + shown
		if pg.ShowingTo > total {
			pg.ShowingTo = total
		}
	}
	if skip > 0 {
		prev := skip - limit
		if prev < 0 {
			prev = 0
		}
		pg.PrevHref = views.ListURL(baseHref, prev, limit)
	}
	if skip+shown < total {
		pg.NextHref = views.ListURL(baseHref, skip+limit, limit)
	}
	return pg
}
