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
	"context"
	"fmt"
	"time"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/credentials"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/storage"
)

// MavenCredentials are the variables a CI publish flow exports for a generic Maven host
var MavenCredentials = credentials.EnvPair{UsernameVar: "MAVEN_USERNAME", SecretVar: "MAVEN_PASSWORD"}

// MavenConfig configures the generic Maven host adapter
type MavenConfig struct {
	// URL is the repository root: https:// or file://
	URL string `json:"url"`
	// IncludePOM writes a POM next to the artifacts. The host does not require one.
	IncludePOM bool `json:"includePOM"`
}

// BackendFactory opens the storage backend behind a repository endpoint
type BackendFactory func(endpoint string, opts storage.Options) (storage.Backend, error)

// MavenAdapter publishes to any host that accepts Maven layout uploads.
// Files are always overwritten; the adapter never checks for existing versions.
type MavenAdapter struct {
	config     MavenConfig
	http       HTTPOptions
	newBackend BackendFactory
	now        func() time.Time
}

// NewMavenAdapter creates the generic Maven host adapter
func NewMavenAdapter(config MavenConfig, httpOptions HTTPOptions) *MavenAdapter {
	return &MavenAdapter{
		config:     config,
		http:       httpOptions,
		newBackend: storage.NewBackend,
		now:        time.Now,
	}
}

// WithBackendFactory replaces how the repository backend is opened
func (m *MavenAdapter) WithBackendFactory(factory BackendFactory) *MavenAdapter {
	m.newBackend = factory
	return m
}

// ID returns the registry identifier
func (m *MavenAdapter) ID() RegistryID { return Maven }

// Credentials returns the environment variables the credential is read from
func (m *MavenAdapter) Credentials() credentials.EnvPair { return MavenCredentials }

// Target describes the host's policy
func (m *MavenAdapter) Target() Target {
	return Target{
		Registry:                 Maven,
		EndpointURL:              m.config.URL,
		RequiresPOM:              false,
		RequiresVersionedPackage: false,
		Override:                 true,
		PublishImmediately:       true,
	}
}

// Supports reports whether cred is a complete maven credential
func (m *MavenAdapter) Supports(cred *credentials.Credential) bool {
	return supports(Maven, cred)
}

// Publish writes the bundle, checksums and maven-metadata.xml, plus a POM when configured
func (m *MavenAdapter) Publish(ctx context.Context, coord project.Coordinate, bundle *artifact.Bundle,
	meta metadata.Descriptive, cred *credentials.Credential) Result {
	if !m.Supports(cred) {
		return Skipped(Maven)
	}
	if m.config.URL == "" {
		return Failed(Maven, fmt.Errorf("%w: maven repository URL is empty", ErrNotConfigured))
	}

	backend, err := m.newBackend(m.config.URL, storage.Options{
		Username:   cred.Username,
		Password:   cred.Secret(),
		UserAgent:  m.http.userAgent(),
		HTTPClient: m.http.client(),
	})
	if err != nil {
		return Failed(Maven, err)
	}

	var pom []byte
	if m.config.IncludePOM {
		primary, _ := bundle.Get(project.Primary)
		pom, err = BuildPOM(coord, meta, primary.Extension)
		if err != nil {
			return Failed(Maven, err)
		}
	}

	writer := &layoutWriter{
		backend:        backend,
		checksums:      true,
		updateMetadata: true,
		now:            m.now,
	}
	up, err := writer.write(ctx, coord, bundle, pom)
	if err != nil {
		return Failed(Maven, fmt.Errorf("publishing %s: %w", coord, err))
	}

	return Published(Maven, backend.GetURL(coord.Path()), up.files, up.bytes)
}
