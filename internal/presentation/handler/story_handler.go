package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/application/usecase/abstraction"
	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
	"storysync/internal/presentation"
	"storysync/pkg/logger"
)

type StoryHandler struct {
	editor abstraction.StoryEditor
}

func NewStoryHandler(editor abstraction.StoryEditor) *StoryHandler {
	return &StoryHandler{editor: editor}
}

// HandleCreate handles POST /stories requests.
func (h *StoryHandler) HandleCreate(c echo.Context) error {
	var story model.Story
	if err := c.Bind(&story); err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "malformed story body")

		return c.NoContent(http.StatusBadRequest)
	}

	created, err := h.editor.Create(c.Request().Context(), &story)
	if err != nil {
		return fail(c, "create failed", err)
	}

	return c.JSON(http.StatusCreated, created)
}

// HandleUpdate handles PUT /stories/:id requests.
func (h *StoryHandler) HandleUpdate(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param(presentation.StoryIDParam))
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "invalid story id")

		return c.NoContent(http.StatusBadRequest)
	}

	var story model.Story
	if err := c.Bind(&story); err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "malformed story body")

		return c.NoContent(http.StatusBadRequest)
	}
	story.ID = id

	updated, err := h.editor.Update(c.Request().Context(), &story)
	if err != nil {
		return fail(c, "update failed", err)
	}

	return c.JSON(http.StatusOK, updated)
}

// HandleDelete handles DELETE /stories/:id requests and returns the
// deleted snapshot.
func (h *StoryHandler) HandleDelete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param(presentation.StoryIDParam))
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "invalid story id")

		return c.NoContent(http.StatusBadRequest)
	}

	deleted, err := h.editor.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, "delete failed", err)
	}

	return c.JSON(http.StatusOK, deleted)
}

// HandleDeleteAll handles DELETE /stories requests.
func (h *StoryHandler) HandleDeleteAll(c echo.Context) error {
	ok, err := h.editor.DeleteAll(c.Request().Context())
	if err != nil {
		return fail(c, "delete all failed", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"deleted": ok})
}

func fail(c echo.Context, msg string, err error) error {
	logger.Error(msg, "err", err)
	c.Response().Header().Set(presentation.ReasonTag, err.Error())

	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return c.NoContent(http.StatusUnauthorized)
	case errors.Is(err, errs.ErrNotFound):
		return c.NoContent(http.StatusNotFound)
	case errors.Is(err, errs.ErrTransient):
		return c.NoContent(http.StatusServiceUnavailable)
	default:
		return c.NoContent(http.StatusInternalServerError)
	}
}
