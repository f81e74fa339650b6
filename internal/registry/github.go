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
	"strings"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/credentials"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/storage"
)

// GitHubCredentials authenticate as the workflow actor with its token
var GitHubCredentials = credentials.EnvPair{UsernameVar: "GITHUB_ACTOR", SecretVar: "GITHUB_TOKEN"}

// DefaultGitHubURL is the package registry endpoint of the hosted service
const DefaultGitHubURL = "https://maven.pkg.github.com"

// GitHubConfig configures the source host package registry adapter
type GitHubConfig struct {
	// URL is the registry root; the owner and repository are appended
	URL        string `json:"url"`
	Owner      string `json:"owner"`
	Repository string `json:"repository"`
}

// GitHubAdapter publishes to a source host's Maven package registry. The host
// keeps its own version index, so only the artifacts, POM and checksums are sent.
type GitHubAdapter struct {
	config GitHubConfig
	http   HTTPOptions
}

// NewGitHubAdapter creates the source host adapter
func NewGitHubAdapter(config GitHubConfig, httpOptions HTTPOptions) *GitHubAdapter {
	if config.URL == "" {
		config.URL = DefaultGitHubURL
	}
	return &GitHubAdapter{config: config, http: httpOptions}
}

// ID returns the registry identifier
func (g *GitHubAdapter) ID() RegistryID { return GitHub }

// Credentials returns the environment variables the credential is read from
func (g *GitHubAdapter) Credentials() credentials.EnvPair { return GitHubCredentials }

// Target describes the host's policy
func (g *GitHubAdapter) Target() Target {
	return Target{
		Registry:                 GitHub,
		EndpointURL:              g.endpoint(),
		RequiresPOM:              true,
		RequiresVersionedPackage: false,
		Override:                 false,
		PublishImmediately:       true,
	}
}

// Supports reports whether cred is a complete actor/token pair
func (g *GitHubAdapter) Supports(cred *credentials.Credential) bool {
	return supports(GitHub, cred)
}

func (g *GitHubAdapter) endpoint() string {
	if g.config.Owner == "" || g.config.Repository == "" {
		return ""
	}
	return strings.TrimSuffix(g.config.URL, "/") + "/" + g.config.Owner + "/" + g.config.Repository
}

// Publish uploads the artifacts and a POM derived from the coordinate
func (g *GitHubAdapter) Publish(ctx context.Context, coord project.Coordinate, bundle *artifact.Bundle,
	meta metadata.Descriptive, cred *credentials.Credential) Result {
	if !g.Supports(cred) {
		return Skipped(GitHub)
	}

	endpoint := g.endpoint()
	if endpoint == "" {
		return Failed(GitHub, fmt.Errorf("%w: github owner and repository are required", ErrNotConfigured))
	}

	primary, _ := bundle.Get(project.Primary)
	pom, err := BuildPOM(coord, meta, primary.Extension)
	if err != nil {
		return Failed(GitHub, err)
	}

	backend := storage.NewHTTPBackend(storage.HTTPConfig{
		BaseURL:    endpoint,
		Username:   cred.Username,
		Password:   cred.Secret(),
		UserAgent:  g.http.userAgent(),
		HTTPClient: g.http.client(),
	})

	writer := &layoutWriter{backend: backend, checksums: true}
	up, err := writer.write(ctx, coord, bundle, pom)
	if err != nil {
		return Failed(GitHub, fmt.Errorf("publishing %s: %w", coord, err))
	}

	return Published(GitHub, backend.GetURL(coord.Path()), up.files, up.bytes)
}
