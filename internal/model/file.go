package model

import (
	"time"
)

// FileMetadata describes a stored file. JSON field names follow the public
// API contract, db tags follow the files table.
type FileMetadata struct {
	UUID        string     `db:"uuid" json:"uuid"`
	OwnerID     int64      `db:"owner_id" json:"owner_id"`
	Filename    string     `db:"filename" json:"filename"`
	ContentType string     `db:"content_type" json:"content_type"`
	Size        int64      `db:"size" json:"size"`
	IsDeleted   bool       `db:"is_deleted" json:"is_deleted"`
	UploadTime  time.Time  `db:"upload_time" json:"upload_time"`
	UpdateTime  time.Time  `db:"update_time" json:"update_time"`
	DeletedTime *time.Time `db:"deleted_time" json:"deleted_time"`
}

// StoredFile pairs metadata with the raw content bytes. Content is swapped
// together with metadata on replace, never independently.
type StoredFile struct {
	Metadata *FileMetadata
	Content  []byte
}

// ListOptions controls pagination and soft-delete visibility for file
// listings. Nil Limit/Offset fall back to the store defaults.
type ListOptions struct {
	Limit       *int `json:"limit,omitempty"`
	Offset      *int `json:"offset,omitempty"`
	WithDeleted bool `json:"with_deleted,omitempty"`
}
