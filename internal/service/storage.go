package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/voblako/voblako/internal/model"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/storagetree"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
)

// StorageService joins the static folder tree against the file store to
// produce the browsable listing.
type StorageService struct {
	tree  *storagetree.Tree
	files repository.FileRepository
}

func NewStorageService(tree *storagetree.Tree, files repository.FileRepository) *StorageService {
	return &StorageService{
		tree:  tree,
		files: files,
	}
}

// Listing resolves a slash-delimited path and assembles the response for
// it. Empty segments are ignored, so "", "/" and "projects/" behave as
// their obvious canonical forms.
func (s *StorageService) Listing(path string) (*model.StorageResponse, error) {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	node, breadcrumbs, ok := s.tree.Resolve(segments)
	if !ok {
		return nil, ErrFolderNotFound
	}

	folders := make([]model.FolderItem, 0, len(node.Folders))
	for _, child := range node.Folders {
		folders = append(folders, model.FolderItem{ID: child.ID, Label: child.Label})
	}

	return &model.StorageResponse{
		ID:          node.ID,
		Label:       node.Label,
		Breadcrumbs: breadcrumbs,
		Folders:     folders,
		Files:       s.buildFileItems(node.Files),
	}, nil
}

// buildFileItems resolves each file reference against the store. A
// reference is omitted when its metadata is missing or soft-deleted; that
// is a deliberate lazy-consistency outcome, surfaced in the debug log
// rather than as an error.
func (s *StorageService) buildFileItems(refs []storagetree.FileRef) []model.FileItem {
	items := make([]model.FileItem, 0, len(refs))

	for _, ref := range refs {
		meta, err := s.files.ByID(ref.FileID)
		if err != nil {
			slog.Debug("file reference omitted", "file_id", ref.FileID, "reason", "metadata missing")
			continue
		}
		if meta.IsDeleted {
			slog.Debug("file reference omitted", "file_id", ref.FileID, "reason", "soft-deleted")
			continue
		}

		item := model.FileItem{
			ID:    meta.UUID,
			Label: meta.Filename,
			Meta:  buildMeta(meta),
		}

		if strings.HasPrefix(meta.ContentType, "image/") {
			item.Preview = "/api/files/" + meta.UUID
		} else if ref.Preview != "" {
			item.Preview = ref.Preview
		}

		items = append(items, item)
	}

	return items
}

// buildMeta derives the display string, e.g. "PNG • 5.2 МБ". Files without
// an extension fall back to the upper-cased content type.
func buildMeta(meta *model.FileMetadata) string {
	ext := strings.ToUpper(meta.ContentType)
	if idx := strings.LastIndex(meta.Filename, "."); idx >= 0 && idx < len(meta.Filename)-1 {
		ext = strings.ToUpper(meta.Filename[idx+1:])
	}
	return fmt.Sprintf("%s • %s", ext, formatSize(meta.Size))
}

var sizeUnits = []string{"Б", "КБ", "МБ", "ГБ"}

// formatSize renders a byte count with binary-prefix Russian units.
// Values of ten and above (and plain bytes) are rounded to an integer,
// smaller ones keep one decimal.
func formatSize(size int64) string {
	if size <= 0 {
		return "0 Б"
	}

	value := float64(size)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(sizeUnits)-1 {
		value /= 1024
		unitIndex++
	}

	if value >= 10 || unitIndex == 0 {
		return fmt.Sprintf("%d %s", int64(math.Round(value)), sizeUnits[unitIndex])
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unitIndex])
}
