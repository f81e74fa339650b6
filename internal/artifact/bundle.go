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

package artifact

import (
	"crypto/md5"  //nolint:gosec // Maven checksum sidecar, not a security control
	"crypto/sha1" //nolint:gosec // Maven checksum sidecar, not a security control
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/oddkinco/registry-publisher/internal/project"
)

// DefaultExtension is used when an artifact reference carries no extension
const DefaultExtension = "jar"

// ErrIncompleteBundle is returned when a bundle lacks one of the required classifiers
var ErrIncompleteBundle = errors.New("artifact bundle is incomplete")

// Digests are the checksums Maven-layout hosts expect next to every file
type Digests struct {
	SHA1   string `json:"sha1"`
	MD5    string `json:"md5"`
	SHA256 string `json:"sha256"`
	SHA512 string `json:"sha512"`
}

// Checksum is a single sidecar file: its extension and hex content
type Checksum struct {
	Extension string
	Value     string
}

// ComputeDigests hashes data with every supported algorithm
func ComputeDigests(data []byte) Digests {
	s1 := sha1.Sum(data) //nolint:gosec
	m5 := md5.Sum(data)  //nolint:gosec
	s256 := sha256.Sum256(data)
	s512 := sha512.Sum512(data)

	return Digests{
		SHA1:   hex.EncodeToString(s1[:]),
		MD5:    hex.EncodeToString(m5[:]),
		SHA256: hex.EncodeToString(s256[:]),
		SHA512: hex.EncodeToString(s512[:]),
	}
}

// Checksums returns the sidecar files in upload order
func (d Digests) Checksums() []Checksum {
	return []Checksum{
		{Extension: "sha1", Value: d.SHA1},
		{Extension: "md5", Value: d.MD5},
		{Extension: "sha256", Value: d.SHA256},
		{Extension: "sha512", Value: d.SHA512},
	}
}

// Artifact is one file of a bundle. The payload is private; Data returns a copy.
type Artifact struct {
	Classifier project.Classifier `json:"classifier"`
	Extension  string             `json:"extension"`
	Digests    Digests            `json:"digests"`
	data       []byte
}

// NewArtifact copies data and computes its digests
func NewArtifact(classifier project.Classifier, extension string, data []byte) Artifact {
	extension = strings.TrimPrefix(extension, ".")
	if extension == "" {
		extension = DefaultExtension
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	return Artifact{
		Classifier: classifier,
		Extension:  extension,
		Digests:    ComputeDigests(buf),
		data:       buf,
	}
}

// Data returns a copy of the payload
func (a Artifact) Data() []byte {
	buf := make([]byte, len(a.data))
	copy(buf, a.data)
	return buf
}

// Size returns the payload length in bytes
func (a Artifact) Size() int {
	return len(a.data)
}

// Bundle is a complete, read-only set of artifacts: primary, sources and javadoc.
// It is safe for concurrent use by multiple publish workers.
type Bundle struct {
	artifacts map[project.Classifier]Artifact
}

// NewBundle validates that every classifier is present exactly once
func NewBundle(artifacts ...Artifact) (*Bundle, error) {
	set := make(map[project.Classifier]Artifact, len(artifacts))
	for _, a := range artifacts {
		if _, dup := set[a.Classifier]; dup {
			return nil, fmt.Errorf("duplicate %s artifact in bundle", a.Classifier.Name())
		}
		set[a.Classifier] = NewArtifact(a.Classifier, a.Extension, a.data)
	}

	var missing []string
	for _, c := range project.Classifiers() {
		if _, ok := set[c]; !ok {
			missing = append(missing, c.Name())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteBundle, strings.Join(missing, ", "))
	}
	if len(set) != len(project.Classifiers()) {
		return nil, fmt.Errorf("bundle contains unsupported classifiers")
	}

	return &Bundle{artifacts: set}, nil
}

// Get returns the artifact for a classifier
func (b *Bundle) Get(c project.Classifier) (Artifact, bool) {
	if b == nil {
		return Artifact{}, false
	}
	a, ok := b.artifacts[c]
	return a, ok
}

// Artifacts returns every artifact in publish order
func (b *Bundle) Artifacts() []Artifact {
	if b == nil {
		return nil
	}
	out := make([]Artifact, 0, len(b.artifacts))
	for _, c := range project.Classifiers() {
		if a, ok := b.artifacts[c]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Size returns the total payload size of the bundle
func (b *Bundle) Size() int64 {
	var total int64
	for _, a := range b.Artifacts() {
		total += int64(a.Size())
	}
	return total
}

// Validate reports whether the bundle is complete. A nil bundle is incomplete.
func (b *Bundle) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: no artifacts", ErrIncompleteBundle)
	}
	for _, c := range project.Classifiers() {
		if _, ok := b.artifacts[c]; !ok {
			return fmt.Errorf("%w: missing %s", ErrIncompleteBundle, c.Name())
		}
	}
	return nil
}
