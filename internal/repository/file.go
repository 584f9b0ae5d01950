package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/voblako/voblako/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type FileRepository interface {
	Create(meta *model.FileMetadata) error
	ByID(id string) (*model.FileMetadata, error)
	List(opts model.ListOptions) ([]*model.FileMetadata, error)
	Rename(id, filename string) (*model.FileMetadata, error)
	Replace(id, filename, contentType string, size int64) (*model.FileMetadata, error)
	SoftDelete(id string) (*model.FileMetadata, error)
	Count() (int, error)
	Reset() error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) *fileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(meta *model.FileMetadata) error {
	query := `INSERT INTO files (uuid, owner_id, filename, content_type, size, is_deleted, upload_time, update_time, deleted_time)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		meta.UUID,
		meta.OwnerID,
		meta.Filename,
		meta.ContentType,
		meta.Size,
		meta.IsDeleted,
		meta.UploadTime,
		meta.UpdateTime,
		meta.DeletedTime,
	)

	return err
}

func (r *fileRepository) ByID(id string) (*model.FileMetadata, error) {
	meta := &model.FileMetadata{}
	query := `SELECT * FROM files WHERE uuid = $1`

	err := r.db.Get(meta, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return meta, err
}

// clampLimit applies the listing bounds: default 20, floor 0, ceiling 100.
func clampLimit(limit *int) int {
	if limit == nil {
		return DefaultListLimit
	}
	if *limit < 0 {
		return 0
	}
	if *limit > MaxListLimit {
		return MaxListLimit
	}
	return *limit
}

func clampOffset(offset *int) int {
	if offset == nil || *offset < 0 {
		return 0
	}
	return *offset
}

// List returns file metadata ordered by update_time descending (most
// recently touched first). Soft-deleted rows are excluded unless
// WithDeleted is set. A limit of 0 yields an empty result without error.
func (r *fileRepository) List(opts model.ListOptions) ([]*model.FileMetadata, error) {
	limit := clampLimit(opts.Limit)
	offset := clampOffset(opts.Offset)

	if limit == 0 {
		return []*model.FileMetadata{}, nil
	}

	query := `SELECT * FROM files WHERE ($1 OR NOT is_deleted) ORDER BY update_time DESC LIMIT $2 OFFSET $3`

	files := []*model.FileMetadata{}
	err := r.db.Select(&files, query, opts.WithDeleted, limit, offset)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Rename(id, filename string) (*model.FileMetadata, error) {
	query := `UPDATE files SET filename = $1, update_time = $2 WHERE uuid = $3`

	res, err := r.db.Exec(query, filename, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrFileNotFound
	}

	return r.ByID(id)
}

// Replace swaps filename, content type and size in one update and clears
// the deletion flag. Reuploading over a soft-deleted file therefore
// undeletes it, matching the observed behavior of the mock API.
func (r *fileRepository) Replace(id, filename, contentType string, size int64) (*model.FileMetadata, error) {
	query := `UPDATE files
	          SET filename = $1, content_type = $2, size = $3, update_time = $4, is_deleted = FALSE, deleted_time = NULL
	          WHERE uuid = $5`

	res, err := r.db.Exec(query, filename, contentType, size, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrFileNotFound
	}

	return r.ByID(id)
}

// SoftDelete marks the row deleted without removing it. Content stays in
// place so a later replace can revive the file.
func (r *fileRepository) SoftDelete(id string) (*model.FileMetadata, error) {
	now := time.Now().UTC()
	query := `UPDATE files SET is_deleted = TRUE, deleted_time = $1, update_time = $1 WHERE uuid = $2`

	res, err := r.db.Exec(query, now, id)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrFileNotFound
	}

	return r.ByID(id)
}

func (r *fileRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM files`)
	return count, err
}

// Reset removes every row. Tests use it together with seeding for
// isolation between cases.
func (r *fileRepository) Reset() error {
	_, err := r.db.Exec(`DELETE FROM files`)
	return err
}
