// Package proxy forwards API requests verbatim to an external backend
// when API_TARGET=remote. The mock implementation is bypassed entirely;
// the remote contract is the remote's business.
package proxy

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var hopByHopRequestHeaders = map[string]bool{
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailer":             true,
	"transfer-encoding":   true,
	"upgrade":             true,
	"content-length":      true,
	"host":                true,
}

var hopByHopResponseHeaders = map[string]bool{
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailer":             true,
	"transfer-encoding":   true,
	"upgrade":             true,
	"content-length":      true,
}

// Handler forwards /api/* to the remote base URL.
type Handler struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Handler {
	return &Handler{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
			// Redirects belong to the caller, not the proxy
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	targetURL := h.baseURL + path
	if r.URL.RawQuery != "" {
		targetURL += "?" + r.URL.RawQuery
	}

	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = r.Body
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, targetURL, body)
	if err != nil {
		slog.Error("failed to build proxy request", "error", err, "url", targetURL)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	copyRequestHeaders(r.Header, req.Header)

	resp, err := h.client.Do(req)
	if err != nil {
		slog.Error("remote request failed", "error", err, "url", targetURL)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	copyResponseHeaders(resp.Header, w.Header())
	w.WriteHeader(resp.StatusCode)
	_, err = io.Copy(w, resp.Body)
	if err != nil {
		slog.Warn("failed to stream proxy response", "error", err, "url", targetURL)
	}
}

func copyRequestHeaders(src, dst http.Header) {
	for key, values := range src {
		if hopByHopRequestHeaders[strings.ToLower(key)] {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

func copyResponseHeaders(src, dst http.Header) {
	for key, values := range src {
		if hopByHopResponseHeaders[strings.ToLower(key)] {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
