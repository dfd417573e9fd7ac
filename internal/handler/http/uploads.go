package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type UploadHandler interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type uploadHandlerImpl struct {
	fileService file.FileService
}

func NewUploadHandler(fileService file.FileService) UploadHandler {
	return &uploadHandlerImpl{fileService: fileService}
}

// Serve streams a stored upload addressed by the wildcard part of the URL.
func (h *uploadHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if name == "" {
		response.NotFound(w, "File not found")
		return
	}

	f, err := h.fileService.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			response.NotFound(w, "File not found")
			return
		}
		response.HandleError(w, err)
		return
	}
	defer f.Close()

	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		slog.Error("Failed to stream upload", "path", name, "error", err)
	}
}
