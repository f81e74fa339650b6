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

package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/oddkinco/registry-publisher/api/v1alpha1"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
)

// LoadPublication reads a Publication manifest from a YAML or JSON file
func LoadPublication(path string) (*v1alpha1.Publication, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read publication manifest %s: %w", path, err)
	}
	pub, err := ParsePublication(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load publication manifest %s: %w", path, err)
	}
	return pub, nil
}

// ParsePublication decodes a Publication manifest. Unknown fields are rejected
// so that misspelt keys surface instead of silently publishing without them.
func ParsePublication(data []byte) (*v1alpha1.Publication, error) {
	pub := &v1alpha1.Publication{}
	if err := yaml.UnmarshalStrict(data, pub); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if pub.Kind != "" && pub.Kind != v1alpha1.PublicationKind {
		return nil, fmt.Errorf("unexpected kind %q, want %s", pub.Kind, v1alpha1.PublicationKind)
	}
	if pub.APIVersion != "" && pub.APIVersion != v1alpha1.GroupVersion.String() {
		return nil, fmt.Errorf("unexpected apiVersion %q, want %s", pub.APIVersion, v1alpha1.GroupVersion.String())
	}

	return pub, nil
}

// ApplyPublication overlays the registry settings a manifest carries.
// Empty fields in the manifest leave the configured value untouched.
func (c *Config) ApplyPublication(pub *v1alpha1.Publication) {
	if pub == nil || pub.Spec.Registries == nil {
		return
	}
	registries := pub.Spec.Registries

	if maven := registries.Maven; maven != nil {
		if maven.URL != "" {
			c.Registries.Maven.URL = maven.URL
		}
		if maven.IncludePOM != nil {
			c.Registries.Maven.IncludePOM = *maven.IncludePOM
		}
	}

	if bintray := registries.Bintray; bintray != nil {
		if bintray.APIURL != "" {
			c.Registries.Bintray.APIURL = bintray.APIURL
		}
		if bintray.Subject != "" {
			c.Registries.Bintray.Subject = bintray.Subject
		}
		if bintray.Repository != "" {
			c.Registries.Bintray.Repository = bintray.Repository
		}
		if bintray.Package != "" {
			c.Registries.Bintray.Package = bintray.Package
		}
	}

	if github := registries.GitHub; github != nil {
		if github.URL != "" {
			c.Registries.GitHub.URL = github.URL
		}
		if github.Owner != "" {
			c.Registries.GitHub.Owner = github.Owner
		}
		if github.Repository != "" {
			c.Registries.GitHub.Repository = github.Repository
		}
	}
}

// ProjectConfig returns the coordinate declarations of a manifest
func ProjectConfig(spec v1alpha1.PublicationSpec) project.Config {
	return project.Config{
		Group:      spec.Coordinate.Group,
		ArtifactID: spec.Coordinate.ArtifactID,
		Version:    spec.Coordinate.Version,
	}
}

// Policies returns the metadata policies of a manifest
func Policies(spec v1alpha1.PublicationSpec) (metadata.LicensePolicy, metadata.DeveloperPolicy, metadata.SCMPolicy) {
	return metadata.LicensePolicy{
			ID:   spec.License.ID,
			Name: spec.License.Name,
			URL:  spec.License.URL,
		}, metadata.DeveloperPolicy{
			ID:    spec.Developer.ID,
			Name:  spec.Developer.Name,
			Email: spec.Developer.Email,
		}, metadata.SCMPolicy{
			URL: spec.SCM.URL,
		}
}

// ArtifactReferences maps each classifier to the reference the manifest gives
// for it. Empty references are omitted.
func ArtifactReferences(spec v1alpha1.PublicationSpec) map[project.Classifier]string {
	refs := make(map[project.Classifier]string, 3)
	for classifier, ref := range map[project.Classifier]string{
		project.Primary: spec.Artifacts.Primary,
		project.Sources: spec.Artifacts.Sources,
		project.Javadoc: spec.Artifacts.Javadoc,
	} {
		if ref != "" {
			refs[classifier] = ref
		}
	}
	return refs
}
