// Package uploader sequences client file uploads against the files API,
// tracking per-file task state and reconciling the optimistic local file
// list with the server's authoritative listing.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/voblako/voblako/internal/model"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusUploading TaskStatus = "uploading"
	StatusSuccess   TaskStatus = "success"
	StatusError     TaskStatus = "error"
)

// Fallback message when the server response carries no usable status.
const genericUploadError = "Не удалось загрузить файл. Попробуйте ещё раз."

// Task is the ephemeral per-file upload state. Tasks live only for the
// duration of an orchestrator run; nothing is persisted.
type Task struct {
	ID       int
	Name     string
	Size     int64
	Status   TaskStatus
	Error    string
	Metadata *model.FileMetadata

	source Source
}

// Source is one file queued for upload.
type Source struct {
	Name        string
	ContentType string
	Content     []byte
}

// Orchestrator runs one upload request per queued file, all concurrently,
// with no retries: a failed task stays failed.
type Orchestrator struct {
	client *Client

	mu    sync.Mutex
	tasks []*Task
}

func NewOrchestrator(client *Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// Enqueue registers sources as pending tasks.
func (o *Orchestrator) Enqueue(sources ...Source) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, src := range sources {
		o.tasks = append(o.tasks, &Task{
			ID:     len(o.tasks),
			Name:   src.Name,
			Size:   int64(len(src.Content)),
			Status: StatusPending,
			source: src,
		})
	}
}

// Run uploads every pending task concurrently and waits for all of them
// to settle.
func (o *Orchestrator) Run(ctx context.Context) {
	o.mu.Lock()
	pending := make([]*Task, 0, len(o.tasks))
	for _, task := range o.tasks {
		if task.Status == StatusPending {
			pending = append(pending, task)
		}
	}
	o.mu.Unlock()

	var wg sync.WaitGroup
	for _, task := range pending {
		wg.Add(1)
		go func(task *Task) {
			defer wg.Done()
			o.runTask(ctx, task)
		}(task)
	}
	wg.Wait()
}

func (o *Orchestrator) runTask(ctx context.Context, task *Task) {
	o.transition(task, StatusUploading, "", nil)

	meta, err := o.client.Upload(ctx, task.source.Name, task.source.ContentType, bytes.NewReader(task.source.Content))
	if err != nil {
		message := genericUploadError
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status != "" {
			message = apiErr.Status
		}
		o.transition(task, StatusError, message, nil)
		return
	}

	o.transition(task, StatusSuccess, "", meta)
}

func (o *Orchestrator) transition(task *Task, status TaskStatus, message string, meta *model.FileMetadata) {
	o.mu.Lock()
	defer o.mu.Unlock()

	task.Status = status
	task.Error = message
	task.Metadata = meta
}

// Tasks returns a snapshot of all task states.
func (o *Orchestrator) Tasks() []Task {
	o.mu.Lock()
	defer o.mu.Unlock()

	snapshot := make([]Task, len(o.tasks))
	for i, task := range o.tasks {
		snapshot[i] = *task
	}
	return snapshot
}

func fileKey(item model.FileItem) string {
	if item.ID != "" {
		return item.ID
	}
	return item.Label
}

// Reconcile merges an optimistic local file list with the authoritative
// server listing: local entries the server already knows, by id or by
// label, are dropped, the remainder is kept ahead of the server entries.
// Server entries win on collision.
func Reconcile(local, authoritative []model.FileItem) []model.FileItem {
	serverKeys := make(map[string]bool, 2*len(authoritative))
	for _, item := range authoritative {
		if item.ID != "" {
			serverKeys[item.ID] = true
		}
		serverKeys[item.Label] = true
	}

	merged := make([]model.FileItem, 0, len(local)+len(authoritative))
	for _, item := range local {
		if !serverKeys[fileKey(item)] {
			merged = append(merged, item)
		}
	}
	return append(merged, authoritative...)
}
