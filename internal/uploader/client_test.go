package uploader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voblako/voblako/internal/model"
)

func TestClientLoginKeepsSessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "demo@voblako.ru", req.Email)

			http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "token", Path: "/"})
			_ = json.NewEncoder(w).Encode(model.AuthResponse{
				IsAuth: true,
				User:   &model.PublicUser{ID: 1, Email: req.Email},
			})
		case "/api/storage":
			// The session cookie must come back on later calls
			cookie, err := r.Cookie("session_id")
			require.NoError(t, err)
			assert.Equal(t, "token", cookie.Value)
			_ = json.NewEncoder(w).Encode(model.StorageResponse{ID: "root", Label: "Главная"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	user, err := client.Login(context.Background(), "demo@voblako.ru", "password123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	listing, err := client.Listing(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "root", listing.ID)
}

func TestClientLoginError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "Wrong credentials"})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "demo@voblako.ru", "wrong-password")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Wrong credentials", apiErr.Status)
}

func TestClientListingPassesPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "projects/design", r.URL.Query().Get("path"))
		_ = json.NewEncoder(w).Encode(model.StorageResponse{ID: "design", Label: "Дизайн"})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	listing, err := client.Listing(context.Background(), "projects/design")
	require.NoError(t, err)
	assert.Equal(t, "design", listing.ID)
}

func TestClientFetchPreviewCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, _, fetchErr := client.FetchPreview(ctx, "some-uuid")
		errCh <- fetchErr
	}()

	<-started
	cancel()

	err = <-errCh
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientFetchPreviewContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/abc", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	content, contentType, err := client.FetchPreview(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), content)
	assert.Equal(t, "image/png", contentType)
}
