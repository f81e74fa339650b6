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

// Package project resolves the immutable coordinate of the library being published.
package project

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// Config holds the static project declarations a coordinate is resolved from
type Config struct {
	Group      string `json:"group"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
}

// Coordinate is the (group, artifact id, version) triple of a release.
// The zero value is not a valid coordinate; use Resolve.
type Coordinate struct {
	group      string
	artifactID string
	version    string
}

// Resolve validates the project declarations and returns the coordinate.
// It returns a *ConfigError when any field is empty or not usable as a
// registry path segment.
func Resolve(cfg Config) (Coordinate, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"group", cfg.Group},
		{"artifactId", cfg.ArtifactID},
		{"version", cfg.Version},
	}
	for _, f := range fields {
		if err := validateSegment(f.name, f.value, f.name == "version"); err != nil {
			return Coordinate{}, err
		}
	}

	if err := validateVersion(cfg.Version); err != nil {
		return Coordinate{}, err
	}

	return Coordinate{
		group:      cfg.Group,
		artifactID: cfg.ArtifactID,
		version:    cfg.Version,
	}, nil
}

// validateSegment accepts the characters Maven allows in coordinates, which
// are also safe to use unescaped in a URL path segment
func validateSegment(field, value string, version bool) error {
	if value == "" {
		return &ConfigError{Field: field, Reason: "must not be empty"}
	}
	if strings.Contains(value, "..") {
		return &ConfigError{Field: field, Value: value, Reason: "must not contain '..'"}
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		case r == '+' && version:
		case unicode.IsSpace(r):
			return &ConfigError{Field: field, Value: value, Reason: "must not contain whitespace"}
		case r == '/' || r == '\\':
			return &ConfigError{Field: field, Value: value, Reason: "must not contain path separators"}
		default:
			return &ConfigError{Field: field, Value: value, Reason: fmt.Sprintf("must not contain %q", r)}
		}
	}
	return nil
}

// validateVersion parses the version loosely. A trailing Maven qualifier
// separated by a dot, as in 1.0.0.Final or 5.3.0.RELEASE, is allowed.
func validateVersion(version string) error {
	_, err := semver.NewVersion(version)
	if err == nil {
		return nil
	}
	if i := strings.LastIndex(version, "."); i > 0 && isQualifier(version[i+1:]) {
		if _, qerr := semver.NewVersion(version[:i]); qerr == nil {
			return nil
		}
	}
	return &ConfigError{
		Field:  "version",
		Value:  version,
		Reason: fmt.Sprintf("not a semantic version: %v", err),
	}
}

func isQualifier(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	return (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')
}

// Group returns the group id, e.g. "com.example"
func (c Coordinate) Group() string { return c.group }

// ArtifactID returns the artifact id
func (c Coordinate) ArtifactID() string { return c.artifactID }

// Version returns the version string exactly as declared
func (c Coordinate) Version() string { return c.version }

// IsZero reports whether the coordinate was never resolved
func (c Coordinate) IsZero() bool {
	return c.group == "" && c.artifactID == "" && c.version == ""
}

// String renders the coordinate in group:artifact:version notation
func (c Coordinate) String() string {
	return fmt.Sprintf("%s:%s:%s", c.group, c.artifactID, c.version)
}

// GroupPath returns the group with dots mapped onto path segments
func (c Coordinate) GroupPath() string {
	return strings.ReplaceAll(c.group, ".", "/")
}

// ArtifactPath returns the Maven layout directory holding every version of the artifact
func (c Coordinate) ArtifactPath() string {
	return path.Join(c.GroupPath(), c.artifactID)
}

// Path returns the Maven layout directory of this version, e.g. com/example/lib/1.2.3
func (c Coordinate) Path() string {
	return path.Join(c.ArtifactPath(), c.version)
}

// FileName returns the file name of an artifact with the given classifier and extension,
// e.g. lib-1.2.3-sources.jar
func (c Coordinate) FileName(classifier Classifier, extension string) string {
	name := c.artifactID + "-" + c.version
	if classifier != Primary {
		name += "-" + string(classifier)
	}
	return name + "." + strings.TrimPrefix(extension, ".")
}

// FilePath joins Path and FileName
func (c Coordinate) FilePath(classifier Classifier, extension string) string {
	return path.Join(c.Path(), c.FileName(classifier, extension))
}
