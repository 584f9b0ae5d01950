package model

// Breadcrumb is one step of the trail from the root folder to the
// currently resolved node.
type Breadcrumb struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FolderItem is a direct child folder projected for the listing response.
type FolderItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FileItem is a file entry of the listing response. Meta is a display
// string of the form "PNG • 5.2 МБ"; Preview is a fetchable URL or a
// static hint, empty when neither applies.
type FileItem struct {
	ID      string `json:"id,omitempty"`
	Label   string `json:"label"`
	Meta    string `json:"meta,omitempty"`
	Preview string `json:"preview,omitempty"`
}

// StorageResponse is the /api/storage payload.
type StorageResponse struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	Folders     []FolderItem `json:"folders"`
	Files       []FileItem   `json:"files"`
}
