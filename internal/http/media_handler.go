package http

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/media"
)

type MediaSweeper interface {
	Sweep(ctx context.Context) (*media.SweepResult, error)
}

type MediaHandler struct {
	store   *media.Store
	janitor MediaSweeper
	logger  *zap.Logger
}

func NewMediaHandler(store *media.Store, janitor MediaSweeper, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{store: store, janitor: janitor, logger: logger}
}

// Upload stores an admin-provided image and returns its public URL.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	image, err := h.store.Save(header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, media.ErrNotAnImage) || errors.Is(err, media.ErrInvalidFormat) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("upload failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"image":   image,
	})
}

// Cleanup sweeps the upload directory for files no product references.
func (h *MediaHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	result, err := h.janitor.Sweep(r.Context())
	if err != nil {
		h.logger.Error("media cleanup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to run media cleanup")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}
