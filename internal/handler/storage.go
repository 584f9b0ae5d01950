package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/voblako/voblako/internal/service"
)

type storageHandler struct {
	storageService *service.StorageService
}

func NewStorageHandler(storageService *service.StorageService) *storageHandler {
	return &storageHandler{storageService: storageService}
}

// Listing resolves ?path=a/b/c against the folder tree and returns the
// joined listing. Unresolved paths are a 404 with a localized error, not
// the `{status}` envelope the file endpoints use.
func (h *storageHandler) Listing(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	listing, err := h.storageService.Listing(path)
	if err != nil {
		if errors.Is(err, service.ErrFolderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Папка не найдена"})
			return
		}
		slog.Error("storage listing failed", "error", err, "path", path)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}
