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

package source

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"sync"
	"time"
)

// HTTPLoader implements Loader for artifacts served over HTTP, such as a CI
// system's artifact store
type HTTPLoader struct {
	config HTTPConfig

	clientOnce sync.Once
	client     *http.Client
	clientErr  error
}

// HTTPConfig holds HTTP-specific configuration
type HTTPConfig struct {
	Headers            map[string]string `json:"headers"`
	CABundlePath       string            `json:"caBundlePath"`
	InsecureSkipVerify bool              `json:"insecureSkipVerify"`
	Timeout            time.Duration     `json:"timeout"`
	UserAgent          string            `json:"userAgent"`
}

// NewHTTPLoader creates a new HTTP loader
func NewHTTPLoader(config HTTPConfig) *HTTPLoader {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &HTTPLoader{
		config: config,
	}
}

// Load downloads the referenced artifact
func (h *HTTPLoader) Load(ctx context.Context, ref string) (*Payload, error) {
	h.clientOnce.Do(func() {
		h.client, h.clientErr = h.configureHTTPClient()
	})
	if h.clientErr != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", h.clientErr)
	}
	client := h.client
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range h.config.Headers {
		req.Header.Set(key, value)
	}
	if h.config.UserAgent != "" {
		req.Header.Set("User-Agent", h.config.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP request failed with status %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	name := ""
	if u, err := url.Parse(ref); err == nil {
		name = path.Base(u.Path)
	}

	return &Payload{
		Data: data,
		Name: name,
		Metadata: map[string]string{
			"url":          ref,
			"content-type": resp.Header.Get("Content-Type"),
			"etag":         resp.Header.Get("ETag"),
		},
	}, nil
}

// configureHTTPClient creates an HTTP client with appropriate TLS configuration
func (h *HTTPLoader) configureHTTPClient() (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: h.config.InsecureSkipVerify, //nolint:gosec // opt-in for self-signed CI stores
		},
	}

	if h.config.CABundlePath != "" {
		caBundle, err := os.ReadFile(h.config.CABundlePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caBundle) {
			return nil, fmt.Errorf("failed to parse CA bundle")
		}
		transport.TLSClientConfig.RootCAs = caCertPool
	}

	return &http.Client{
		Transport: transport,
		Timeout:   h.config.Timeout,
	}, nil
}
