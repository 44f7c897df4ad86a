// README: Widget catalogue and photo proxy handlers.
package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/imagesearch"
	"voyage/internal/types"
)

// GetWidget handles GET /api/widgets/:ui. "start" (or "none") returns the
// empty-state suggestions.
func GetWidget(c *gin.Context) {
	raw := c.Param("ui")
	tag := types.UINone
	if !strings.EqualFold(raw, "start") && !strings.EqualFold(raw, "none") {
		tag = types.ParseUITag(raw)
	}
	w, ok := dialogue.WidgetFor(tag, dialogue.Preferences{})
	if !ok {
		writeError(c, http.StatusNotFound, "no widget for "+raw)
		return
	}
	writeJSON(c, http.StatusOK, w)
}

// PhotoSource fetches a stored place photo.
type PhotoSource interface {
	Photo(ctx context.Context, ref string) (contentType string, body io.ReadCloser, err error)
}

type PhotoHandler struct {
	photos PhotoSource
}

func NewPhotoHandler(photos PhotoSource) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Get handles GET /api/photos/:ref and streams the image bytes.
func (h *PhotoHandler) Get(c *gin.Context) {
	if h.photos == nil {
		writeError(c, http.StatusNotFound, "photos disabled")
		return
	}
	contentType, body, err := h.photos.Photo(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, imagesearch.ErrMissingTerm) {
			writeError(c, http.StatusBadRequest, "missing photo reference")
			return
		}
		log.Printf("handlers: photo %s: %v", c.Param("ref"), err)
		writeError(c, http.StatusBadGateway, "photo unavailable")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
