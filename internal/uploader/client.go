package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/voblako/voblako/internal/model"
)

// APIError carries the server's `{status}` payload for a failed request.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Status)
}

// Client is a thin HTTP client for the VOblako API. The cookie jar keeps
// the session across login and subsequent calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
	}, nil
}

// decodeError turns a non-2xx response into an APIError when the body
// carries the `{status}` envelope.
func decodeError(resp *http.Response) error {
	var payload struct {
		Status string `json:"status"`
	}
	err := json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil || payload.Status == "" {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return &APIError{StatusCode: resp.StatusCode, Status: payload.Status}
}

// Login authenticates and stores the session cookie for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*model.PublicUser, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var auth model.AuthResponse
	err = json.NewDecoder(resp.Body).Decode(&auth)
	if err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}
	if !auth.IsAuth || auth.User == nil {
		return nil, errors.New("login did not yield a session")
	}

	return auth.User, nil
}

// Upload sends one file to POST /api/files and returns the assigned
// metadata.
func (c *Client) Upload(ctx context.Context, filename, contentType string, content io.Reader) (*model.FileMetadata, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	_, err = io.Copy(part, content)
	if err != nil {
		return nil, err
	}
	err = form.Close()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var meta model.FileMetadata
	err = json.NewDecoder(resp.Body).Decode(&meta)
	if err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return &meta, nil
}

// Listing fetches the authoritative storage listing for a path.
func (c *Client) Listing(ctx context.Context, path string) (*model.StorageResponse, error) {
	endpoint := c.baseURL + "/api/storage"
	if path != "" {
		endpoint += "?path=" + url.QueryEscape(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var listing model.StorageResponse
	err = json.NewDecoder(resp.Body).Decode(&listing)
	if err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	return &listing, nil
}

// FetchPreview downloads raw content for a preview. The request aborts
// when the context is cancelled, e.g. on selection change.
func (c *Client) FetchPreview(ctx context.Context, id string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/files/"+id, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", decodeError(resp)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return content, resp.Header.Get("Content-Type"), nil
}
