/*
Copyright (c) 2025 Odd Kin <oddkin@oddkin.co>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPBackend implements Backend for repositories that accept plain HTTP PUT
// uploads, authenticated with basic auth
type HTTPBackend struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
}

// HTTPConfig holds configuration for an HTTP repository
type HTTPConfig struct {
	BaseURL    string
	Username   string
	Password   string
	UserAgent  string
	HTTPClient *http.Client
}

// NewHTTPBackend creates a new HTTP repository backend
func NewHTTPBackend(config HTTPConfig) *HTTPBackend {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return &HTTPBackend{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		username:   config.Username,
		password:   config.Password,
		userAgent:  config.UserAgent,
		httpClient: httpClient,
	}
}

// Store uploads data with a PUT request
func (h *HTTPBackend) Store(ctx context.Context, key string, data []byte) (string, error) {
	objectURL := h.GetURL(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", contentType(key))
	req.ContentLength = int64(len(data))
	h.authorize(req)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("upload of %s failed with status %d: %s", key, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return objectURL, nil
}

// Retrieve downloads an object with a GET request
func (h *HTTPBackend) Retrieve(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.GetURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	h.authorize(req)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download of %s failed with status %d", key, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// GetURL returns the URL of an object below the base URL
func (h *HTTPBackend) GetURL(key string) string {
	return h.baseURL + "/" + strings.TrimPrefix(key, "/")
}

func (h *HTTPBackend) authorize(req *http.Request) {
	if h.username != "" || h.password != "" {
		req.SetBasicAuth(h.username, h.password)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
}

// contentType picks the media type registries expect for Maven layout files
func contentType(key string) string {
	switch {
	case strings.HasSuffix(key, ".pom"), strings.HasSuffix(key, ".xml"):
		return "application/xml"
	case strings.HasSuffix(key, ".jar"):
		return "application/java-archive"
	case strings.HasSuffix(key, ".sha1"), strings.HasSuffix(key, ".md5"),
		strings.HasSuffix(key, ".sha256"), strings.HasSuffix(key, ".sha512"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
