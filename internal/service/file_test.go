package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/seed"
	"github.com/voblako/voblako/internal/storage"
)

func newFileService(t *testing.T) (*FileService, repository.FileRepository, storage.Storage) {
	t.Helper()

	files, contents := newSeededFiles(t)
	return NewFileService(files, contents), files, contents
}

// makeUpload builds a parsed multipart "file" part the way the endpoints
// receive it.
func makeUpload(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/api/files", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())

	file, fileHeader, err := req.FormFile("file")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	return file, fileHeader
}

func TestCreateStoresContentAndMetadata(t *testing.T) {
	svc, files, contents := newFileService(t)

	file, header := makeUpload(t, "фото.jpg", "image/jpeg", []byte("jpeg-bytes"))
	meta, err := svc.Create(file, header)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(meta.UUID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "фото.jpg", meta.Filename)
	assert.Equal(t, "image/jpeg", meta.ContentType)
	assert.Equal(t, int64(len("jpeg-bytes")), meta.Size)
	assert.Equal(t, int64(seed.DefaultOwnerID), meta.OwnerID)
	assert.False(t, meta.IsDeleted)
	assert.Equal(t, meta.UploadTime, meta.UpdateTime)

	stored, err := files.ByID(meta.UUID)
	require.NoError(t, err)
	assert.Equal(t, meta.Filename, stored.Filename)

	content, err := contents.Load(meta.UUID)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), content)
}

func TestCreateFallbacks(t *testing.T) {
	svc, _, _ := newFileService(t)

	// A part with no filename and no content type
	file, _ := makeUpload(t, "placeholder", "", []byte("x"))
	header := &multipart.FileHeader{Header: textproto.MIMEHeader{}}
	meta, err := svc.Create(file, header)
	require.NoError(t, err)

	assert.Equal(t, fallbackFilename, meta.Filename)
	assert.Equal(t, fallbackContentType, meta.ContentType)
}

func TestPayloadPairsMetadataWithContent(t *testing.T) {
	svc, _, _ := newFileService(t)
	target := seed.FileIDs["welcome-note"]

	payload, err := svc.Payload(target)
	require.NoError(t, err)
	assert.Equal(t, target, payload.Metadata.UUID)
	assert.Equal(t, payload.Metadata.Size, int64(len(payload.Content)))

	_, err = svc.Payload("no-such-uuid")
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestReplaceSwapsContentWithMetadata(t *testing.T) {
	svc, _, contents := newFileService(t)
	target := seed.FileIDs["estimate"]

	file, header := makeUpload(t, "Смета v2.xlsx", "application/vnd.ms-excel", []byte("new-sheet"))
	meta, err := svc.Replace(target, file, header)
	require.NoError(t, err)

	assert.Equal(t, target, meta.UUID)
	assert.Equal(t, "Смета v2.xlsx", meta.Filename)
	assert.Equal(t, int64(len("new-sheet")), meta.Size)

	content, err := contents.Load(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new-sheet"), content)
}

func TestReplaceKeepsExistingNameWhenOmitted(t *testing.T) {
	svc, files, _ := newFileService(t)
	target := seed.FileIDs["roadmap"]

	before, err := files.ByID(target)
	require.NoError(t, err)

	file, _ := makeUpload(t, "placeholder", "", []byte("updated"))
	header := &multipart.FileHeader{Header: textproto.MIMEHeader{}}
	meta, err := svc.Replace(target, file, header)
	require.NoError(t, err)

	assert.Equal(t, before.Filename, meta.Filename)
	assert.Equal(t, before.ContentType, meta.ContentType)
	assert.Equal(t, int64(len("updated")), meta.Size)
}

func TestSoftDeleteKeepsContent(t *testing.T) {
	svc, _, contents := newFileService(t)
	target := seed.FileIDs["ticket"]

	meta, err := svc.SoftDelete(target)
	require.NoError(t, err)
	assert.True(t, meta.IsDeleted)

	// Content survives for a later replace
	_, err = contents.Load(target)
	assert.NoError(t, err)
}
