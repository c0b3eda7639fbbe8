package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/application/usecase/abstraction"
	"storysync/internal/presentation"
)

type GalleryHandler struct {
	editor abstraction.ImageEditor
}

func NewGalleryHandler(editor abstraction.ImageEditor) *GalleryHandler {
	return &GalleryHandler{editor: editor}
}

type imagesRequest struct {
	Images []string `json:"images"`
}

// HandleAttach handles POST /stories/:id/images requests. The body lists
// local image references to stage and upload.
func (h *GalleryHandler) HandleAttach(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param(presentation.StoryIDParam))
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "invalid story id")

		return c.NoContent(http.StatusBadRequest)
	}

	var req imagesRequest
	if err := c.Bind(&req); err != nil || len(req.Images) == 0 {
		c.Response().Header().Set(presentation.ReasonTag, "missing image list")

		return c.NoContent(http.StatusBadRequest)
	}

	story, err := h.editor.Attach(c.Request().Context(), id, req.Images)
	if err != nil {
		return fail(c, "attach failed", err)
	}

	return c.JSON(http.StatusOK, story)
}

// HandleDetach handles DELETE /stories/:id/images requests. The body lists
// remote paths to drop from the story.
func (h *GalleryHandler) HandleDetach(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param(presentation.StoryIDParam))
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "invalid story id")

		return c.NoContent(http.StatusBadRequest)
	}

	var req imagesRequest
	if err := c.Bind(&req); err != nil || len(req.Images) == 0 {
		c.Response().Header().Set(presentation.ReasonTag, "missing image list")

		return c.NoContent(http.StatusBadRequest)
	}

	story, err := h.editor.Detach(c.Request().Context(), id, req.Images)
	if err != nil {
		return fail(c, "detach failed", err)
	}

	return c.JSON(http.StatusOK, story)
}
