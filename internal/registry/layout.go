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
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/storage"
)

const metadataFile = "maven-metadata.xml"

// layoutWriter uploads a bundle into a Maven repository layout
type layoutWriter struct {
	backend storage.Backend
	// checksums writes .sha1/.md5/.sha256/.sha512 next to every file
	checksums bool
	// updateMetadata merges the version into maven-metadata.xml
	updateMetadata bool
	now            func() time.Time
}

// layoutUpload summarises what a layoutWriter stored
type layoutUpload struct {
	files int
	bytes int64
}

func (w *layoutWriter) write(ctx context.Context, coord project.Coordinate, bundle *artifact.Bundle, pom []byte) (layoutUpload, error) {
	var up layoutUpload

	for _, a := range bundle.Artifacts() {
		key := coord.FilePath(a.Classifier, a.Extension)
		if err := w.store(ctx, key, a.Data(), a.Digests, &up); err != nil {
			return up, err
		}
	}

	if pom != nil {
		key := coord.FilePath(project.Primary, "pom")
		if err := w.store(ctx, key, pom, artifact.ComputeDigests(pom), &up); err != nil {
			return up, err
		}
	}

	if w.updateMetadata {
		if err := w.mergeMetadata(ctx, coord, &up); err != nil {
			return up, err
		}
	}

	return up, nil
}

func (w *layoutWriter) store(ctx context.Context, key string, data []byte, digests artifact.Digests, up *layoutUpload) error {
	if _, err := w.backend.Store(ctx, key, data); err != nil {
		return err
	}
	up.files++
	up.bytes += int64(len(data))

	if !w.checksums {
		return nil
	}
	for _, sum := range digests.Checksums() {
		if _, err := w.backend.Store(ctx, key+"."+sum.Extension, []byte(sum.Value)); err != nil {
			return err
		}
		up.files++
		up.bytes += int64(len(sum.Value))
	}
	return nil
}

func (w *layoutWriter) mergeMetadata(ctx context.Context, coord project.Coordinate, up *layoutUpload) error {
	key := path.Join(coord.ArtifactPath(), metadataFile)

	existing, err := w.backend.Retrieve(ctx, key)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	now := time.Now
	if w.now != nil {
		now = w.now
	}

	merged, err := mergeMavenMetadata(existing, coord, now())
	if err != nil {
		return err
	}
	return w.store(ctx, key, merged, artifact.ComputeDigests(merged), up)
}

type mavenMetadata struct {
	XMLName    xml.Name        `xml:"metadata"`
	GroupID    string          `xml:"groupId"`
	ArtifactID string          `xml:"artifactId"`
	Versioning mavenVersioning `xml:"versioning"`
}

type mavenVersioning struct {
	Latest      string   `xml:"latest,omitempty"`
	Release     string   `xml:"release,omitempty"`
	Versions    []string `xml:"versions>version"`
	LastUpdated string   `xml:"lastUpdated"`
}

// mergeMavenMetadata adds coord's version to an existing maven-metadata.xml
// document, or starts a new one when existing is empty
func mergeMavenMetadata(existing []byte, coord project.Coordinate, now time.Time) ([]byte, error) {
	doc := mavenMetadata{
		GroupID:    coord.Group(),
		ArtifactID: coord.ArtifactID(),
	}

	if len(existing) > 0 {
		if err := xml.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", metadataFile, err)
		}
		if doc.GroupID != coord.Group() || doc.ArtifactID != coord.ArtifactID() {
			return nil, fmt.Errorf("%s describes %s:%s, not %s:%s", metadataFile,
				doc.GroupID, doc.ArtifactID, coord.Group(), coord.ArtifactID())
		}
	}

	versions := []string{coord.Version()}
	for _, v := range doc.Versioning.Versions {
		if v != "" && v != coord.Version() {
			versions = append(versions, v)
		}
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) < 0
	})

	doc.Versioning.Versions = versions
	doc.Versioning.Latest = versions[len(versions)-1]
	doc.Versioning.Release = ""
	for i := len(versions) - 1; i >= 0; i-- {
		if isRelease(versions[i]) {
			doc.Versioning.Release = versions[i]
			break
		}
	}
	doc.Versioning.LastUpdated = now.UTC().Format("20060102150405")

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", metadataFile, err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// compareVersions orders semantic versions numerically and falls back to
// string order for anything that does not parse
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func isRelease(version string) bool {
	v, err := semver.NewVersion(version)
	return err == nil && v.Prerelease() == ""
}
