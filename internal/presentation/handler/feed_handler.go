package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storysync/internal/application/usecase/abstraction"
	"storysync/internal/domain/errs"
	"storysync/internal/presentation"
)

type FeedHandler struct {
	viewer abstraction.FeedViewer
}

func NewFeedHandler(viewer abstraction.FeedViewer) *FeedHandler {
	return &FeedHandler{viewer: viewer}
}

// HandleFeed handles GET /stories requests. Optional query parameters:
// date=YYYY-MM-DD restricts the feed to one calendar day, tz names the
// observer's zone (default UTC).
func (h *FeedHandler) HandleFeed(c echo.Context) error {
	loc := time.UTC
	if tz := c.QueryParam(presentation.TZQuery); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			c.Response().Header().Set(presentation.ReasonTag, "unknown time zone")

			return c.NoContent(http.StatusBadRequest)
		}
		loc = parsed
	}

	var day *time.Time
	if date := c.QueryParam(presentation.DateQuery); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			c.Response().Header().Set(presentation.ReasonTag, "invalid date, expected YYYY-MM-DD")

			return c.NoContent(http.StatusBadRequest)
		}
		day = &parsed
	}

	groups, err := h.viewer.Snapshot(c.Request().Context(), loc, day)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())
		if errors.Is(err, errs.ErrUnauthenticated) {
			return c.NoContent(http.StatusUnauthorized)
		}

		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.JSON(http.StatusOK, groups)
}
