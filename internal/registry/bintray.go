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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/credentials"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
)

// BintrayCredentials are the package index user and API key
var BintrayCredentials = credentials.EnvPair{UsernameVar: "BINTRAY_USER", SecretVar: "BINTRAY_KEY"}

// DefaultBintrayAPIURL is the hosted package index API
const DefaultBintrayAPIURL = "https://api.bintray.com"

// BintrayConfig configures the package index adapter
type BintrayConfig struct {
	APIURL string `json:"apiURL"`
	// Subject is the owning user or organisation
	Subject    string `json:"subject"`
	Repository string `json:"repository"`
	// Package defaults to the artifact id
	Package string `json:"package,omitempty"`
}

// BintrayAdapter publishes to a package index that tracks package and version
// records. Versions are published immediately and uploads override existing files.
type BintrayAdapter struct {
	config BintrayConfig
	http   HTTPOptions
}

// NewBintrayAdapter creates the package index adapter
func NewBintrayAdapter(config BintrayConfig, httpOptions HTTPOptions) *BintrayAdapter {
	if config.APIURL == "" {
		config.APIURL = DefaultBintrayAPIURL
	}
	config.APIURL = strings.TrimSuffix(config.APIURL, "/")
	return &BintrayAdapter{config: config, http: httpOptions}
}

// ID returns the registry identifier
func (b *BintrayAdapter) ID() RegistryID { return Bintray }

// Credentials returns the environment variables the credential is read from
func (b *BintrayAdapter) Credentials() credentials.EnvPair { return BintrayCredentials }

// Target describes the index's policy
func (b *BintrayAdapter) Target() Target {
	return Target{
		Registry:                 Bintray,
		EndpointURL:              b.config.APIURL,
		RequiresPOM:              true,
		RequiresVersionedPackage: true,
		Override:                 true,
		PublishImmediately:       true,
	}
}

// Supports reports whether cred is a complete user/key pair
func (b *BintrayAdapter) Supports(cred *credentials.Credential) bool {
	return supports(Bintray, cred)
}

type bintrayPackage struct {
	Name       string   `json:"name,omitempty"`
	Licenses   []string `json:"licenses"`
	VCSURL     string   `json:"vcs_url"`
	WebsiteURL string   `json:"website_url,omitempty"`
}

type bintrayVersion struct {
	Name string `json:"name,omitempty"`
	Desc string `json:"desc,omitempty"`
}

// bintrayClient carries one publication's requests
type bintrayClient struct {
	adapter *BintrayAdapter
	client  *http.Client
	cred    *credentials.Credential
}

// Publish creates or updates the package and version records, then uploads
// every file with publish and override set
func (b *BintrayAdapter) Publish(ctx context.Context, coord project.Coordinate, bundle *artifact.Bundle,
	meta metadata.Descriptive, cred *credentials.Credential) Result {
	if !b.Supports(cred) {
		return Skipped(Bintray)
	}
	if b.config.Subject == "" || b.config.Repository == "" {
		return Failed(Bintray, fmt.Errorf("%w: bintray subject and repository are required", ErrNotConfigured))
	}
	if err := requireComplete(meta); err != nil {
		return Failed(Bintray, err)
	}

	pkg := b.config.Package
	if pkg == "" {
		pkg = coord.ArtifactID()
	}

	c := &bintrayClient{adapter: b, client: b.http.client(), cred: cred}

	if err := c.ensurePackage(ctx, pkg, meta); err != nil {
		return Failed(Bintray, err)
	}
	if err := c.ensureVersion(ctx, pkg, coord); err != nil {
		return Failed(Bintray, err)
	}

	primary, _ := bundle.Get(project.Primary)
	pom, err := BuildPOM(coord, meta, primary.Extension)
	if err != nil {
		return Failed(Bintray, err)
	}

	var files int
	var size int64
	for _, a := range bundle.Artifacts() {
		if err := c.upload(ctx, pkg, coord, coord.FilePath(a.Classifier, a.Extension), a.Data()); err != nil {
			return Failed(Bintray, err)
		}
		files++
		size += int64(a.Size())
	}
	if err := c.upload(ctx, pkg, coord, coord.FilePath(project.Primary, "pom"), pom); err != nil {
		return Failed(Bintray, err)
	}
	files++
	size += int64(len(pom))

	return Published(Bintray, b.versionURL(pkg, coord), files, size)
}

func requireComplete(meta metadata.Descriptive) error {
	var missing []string
	if !meta.HasLicense() {
		missing = append(missing, "license")
	}
	if !meta.HasDeveloper() {
		missing = append(missing, "developer")
	}
	if !meta.HasSCM() {
		missing = append(missing, "scm url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedDescriptor, strings.Join(missing, ", "))
	}
	return nil
}

func (b *BintrayAdapter) packagesURL() string {
	return fmt.Sprintf("%s/packages/%s/%s", b.config.APIURL,
		url.PathEscape(b.config.Subject), url.PathEscape(b.config.Repository))
}

func (b *BintrayAdapter) versionURL(pkg string, coord project.Coordinate) string {
	return fmt.Sprintf("%s/%s/versions/%s", b.packagesURL(), url.PathEscape(pkg), url.PathEscape(coord.Version()))
}

func (c *bintrayClient) ensurePackage(ctx context.Context, pkg string, meta metadata.Descriptive) error {
	body := bintrayPackage{
		Name:       pkg,
		Licenses:   []string{meta.LicenseID},
		VCSURL:     meta.SCMURL,
		WebsiteURL: meta.SCMURL,
	}

	status, err := c.send(ctx, http.MethodPost, c.adapter.packagesURL(), body)
	if err != nil {
		return fmt.Errorf("failed to create package %s: %w", pkg, err)
	}
	if status != http.StatusConflict {
		return nil
	}

	body.Name = ""
	if _, err := c.send(ctx, http.MethodPatch, c.adapter.packagesURL()+"/"+url.PathEscape(pkg), body); err != nil {
		return fmt.Errorf("failed to update package %s: %w", pkg, err)
	}
	return nil
}

func (c *bintrayClient) ensureVersion(ctx context.Context, pkg string, coord project.Coordinate) error {
	versionsURL := c.adapter.packagesURL() + "/" + url.PathEscape(pkg) + "/versions"
	body := bintrayVersion{Name: coord.Version(), Desc: coord.String()}

	status, err := c.send(ctx, http.MethodPost, versionsURL, body)
	if err != nil {
		return fmt.Errorf("failed to create version %s: %w", coord.Version(), err)
	}
	if status != http.StatusConflict {
		return nil
	}

	body.Name = ""
	if _, err := c.send(ctx, http.MethodPatch, c.adapter.versionURL(pkg, coord), body); err != nil {
		return fmt.Errorf("failed to update version %s: %w", coord.Version(), err)
	}
	return nil
}

func (c *bintrayClient) upload(ctx context.Context, pkg string, coord project.Coordinate, filePath string, data []byte) error {
	target := fmt.Sprintf("%s/content/%s/%s/%s/%s/%s?publish=1&override=1", c.adapter.config.APIURL,
		url.PathEscape(c.adapter.config.Subject), url.PathEscape(c.adapter.config.Repository),
		url.PathEscape(pkg), url.PathEscape(coord.Version()), filePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	if _, err := c.do(req, false); err != nil {
		return fmt.Errorf("failed to upload %s: %w", filePath, err)
	}
	return nil
}

// send issues a JSON request. 409 Conflict is returned as a status rather than
// an error so callers can switch to an update.
func (c *bintrayClient) send(ctx context.Context, method, target string, body any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, true)
}

func (c *bintrayClient) do(req *http.Request, allowConflict bool) (int, error) {
	req.SetBasicAuth(c.cred.Username, c.cred.Secret())
	req.Header.Set("User-Agent", c.adapter.http.userAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if allowConflict && resp.StatusCode == http.StatusConflict {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("%s %s returned status %d: %s", req.Method, req.URL.Path,
			resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp.StatusCode, nil
}
