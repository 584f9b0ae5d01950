package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/voblako/voblako/internal/model"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/service"
	"github.com/voblako/voblako/internal/validation"
)

// Uploads beyond this size are rejected at parse time.
const maxUploadBytes = 32 << 20 // 32MB

type filesHandler struct {
	fileService *service.FileService
}

func NewFilesHandler(fileService *service.FileService) *filesHandler {
	return &filesHandler{fileService: fileService}
}

type renameRequest struct {
	Filename string `json:"filename"`
}

// formFile extracts the multipart "file" field from the request.
func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		return nil, nil, err
	}
	return r.FormFile("file")
}

// Upload creates a new file from a multipart form.
func (h *filesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r)
	if err != nil {
		statusError(w, http.StatusBadRequest, msgWrongForm)
		return
	}
	defer func() { _ = file.Close() }()

	meta, err := h.fileService.Create(file, header)
	if err != nil {
		slog.Error("file upload failed", "error", err)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	slog.Info("file uploaded", "uuid", meta.UUID, "filename", meta.Filename, "size", meta.Size)
	writeJSON(w, http.StatusOK, meta)
}

// List returns metadata pages ordered by recency.
func (h *filesHandler) List(w http.ResponseWriter, r *http.Request) {
	var opts model.ListOptions
	err := json.NewDecoder(r.Body).Decode(&opts)
	if err != nil {
		statusError(w, http.StatusBadRequest, msgWrongJSON)
		return
	}

	if (opts.Limit != nil && *opts.Limit < 0) || (opts.Offset != nil && *opts.Offset < 0) {
		statusError(w, http.StatusBadRequest, msgInvalidParams)
		return
	}

	files, err := h.fileService.List(opts)
	if err != nil {
		slog.Error("file listing failed", "error", err)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, files)
}

// Download streams the raw file content. Soft-deleted files exist but are
// not accessible.
func (h *filesHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	payload, err := h.fileService.Payload(id)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			statusError(w, http.StatusBadRequest, msgInvalidID)
			return
		}
		slog.Error("file download failed", "error", err, "uuid", id)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if payload.Metadata.IsDeleted {
		statusError(w, http.StatusForbidden, msgNoAccess)
		return
	}

	w.Header().Set("Content-Type", payload.Metadata.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(payload.Metadata.Size, 10))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(payload.Metadata.Filename)))
	_, err = w.Write(payload.Content)
	if err != nil {
		slog.Warn("failed to write download body", "error", err, "uuid", id)
	}
}

// Replace swaps the file's content and metadata in one step.
func (h *filesHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !h.ensureAvailable(w, id) {
		return
	}

	file, header, err := formFile(r)
	if err != nil {
		statusError(w, http.StatusBadRequest, msgWrongForm)
		return
	}
	defer func() { _ = file.Close() }()

	_, err = h.fileService.Replace(id, file, header)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			statusError(w, http.StatusBadRequest, msgInvalidID)
			return
		}
		slog.Error("file replace failed", "error", err, "uuid", id)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	emptySuccess(w)
}

// Delete soft-deletes the file; content is retained.
func (h *filesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, err := h.fileService.SoftDelete(id)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			statusError(w, http.StatusBadRequest, msgInvalidID)
			return
		}
		slog.Error("file delete failed", "error", err, "uuid", id)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	slog.Info("file soft-deleted", "uuid", id)
	emptySuccess(w)
}

// Meta returns the metadata record, including soft-deleted ones.
func (h *filesHandler) Meta(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	meta, err := h.fileService.Metadata(id)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			statusError(w, http.StatusBadRequest, msgInvalidID)
			return
		}
		slog.Error("metadata fetch failed", "error", err, "uuid", id)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, meta)
}

// Rename validates and applies a new filename.
func (h *filesHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req renameRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		statusError(w, http.StatusBadRequest, msgWrongJSON)
		return
	}

	filename, ok := validation.CleanFilename(req.Filename)
	if !ok {
		statusError(w, http.StatusBadRequest, msgFilenameLength)
		return
	}

	if !h.ensureAvailable(w, id) {
		return
	}

	_, err = h.fileService.Rename(id, filename)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			statusError(w, http.StatusBadRequest, msgInvalidID)
			return
		}
		slog.Error("file rename failed", "error", err, "uuid", id)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	emptySuccess(w)
}

// ensureAvailable writes the 400/403 error for missing or soft-deleted
// files and reports whether the caller may proceed.
func (h *filesHandler) ensureAvailable(w http.ResponseWriter, id string) bool {
	meta, err := h.fileService.Metadata(id)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			statusError(w, http.StatusBadRequest, msgInvalidID)
			return false
		}
		slog.Error("metadata fetch failed", "error", err, "uuid", id)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return false
	}

	if meta.IsDeleted {
		statusError(w, http.StatusForbidden, msgNoAccess)
		return false
	}

	return true
}
