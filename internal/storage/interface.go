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
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotFound is returned by Retrieve when the key does not exist
var ErrNotFound = errors.New("object not found")

// Backend defines the interface for repositories laid out as plain files,
// such as Maven-compatible hosts
type Backend interface {
	// Store writes data under key, replacing any existing object, and returns its URL
	Store(ctx context.Context, key string, data []byte) (string, error)

	// Retrieve reads the object stored under key
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// GetURL returns the URL of the object stored under key
	GetURL(key string) string
}

// Options holds what remote backends need beyond the endpoint
type Options struct {
	Username   string
	Password   string
	UserAgent  string
	HTTPClient *http.Client
}

// NewBackend selects a backend from the endpoint scheme: http(s) for remote
// hosts and file for a local directory repository. In-process memory backends
// are never opened from an endpoint since nothing written to them outlives the run.
func NewBackend(endpoint string, opts Options) (Backend, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid repository endpoint %q: %w", endpoint, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPBackend(HTTPConfig{
			BaseURL:    endpoint,
			Username:   opts.Username,
			Password:   opts.Password,
			UserAgent:  opts.UserAgent,
			HTTPClient: opts.HTTPClient,
		}), nil
	case "file":
		return NewFilesystemBackend(u.Path)
	default:
		return nil, fmt.Errorf("unsupported repository scheme %q", u.Scheme)
	}
}
