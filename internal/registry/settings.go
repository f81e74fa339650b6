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

package registry

import (
	"errors"
	"net/http"
	"time"

	"github.com/oddkinco/registry-publisher/internal/credentials"
)

// ErrMalformedDescriptor is returned when a registry requires metadata that
// the descriptive block does not carry
var ErrMalformedDescriptor = errors.New("malformed package descriptor")

// ErrNotConfigured is returned when a registry with credentials lacks the
// endpoint settings it needs
var ErrNotConfigured = errors.New("registry not configured")

// Settings configures the built-in adapters
type Settings struct {
	Maven   MavenConfig
	Bintray BintrayConfig
	GitHub  GitHubConfig
	HTTP    HTTPOptions
}

// HTTPOptions are shared by every adapter that talks HTTP
type HTTPOptions struct {
	// Timeout bounds every request. Zero means 60 seconds.
	Timeout   time.Duration
	UserAgent string
	// Client overrides the client built from Timeout; used by tests
	Client *http.Client
}

func (o HTTPOptions) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func (o HTTPOptions) userAgent() string {
	if o.UserAgent == "" {
		return "registry-publisher"
	}
	return o.UserAgent
}

// supports is the common credential check: the credential must exist, belong
// to the registry and carry both halves
func supports(id RegistryID, cred *credentials.Credential) bool {
	return cred != nil && cred.Registry == id && cred.Username != "" && cred.Secret() != ""
}
