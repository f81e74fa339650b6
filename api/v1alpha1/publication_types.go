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

package v1alpha1

import (
	fluxmeta "github.com/fluxcd/pkg/apis/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PublicationSpec defines what is published and where
type PublicationSpec struct {
	// Coordinate identifies the library
	// +required
	Coordinate CoordinateSpec `json:"coordinate"`

	// License of the library, by SPDX identifier
	// +required
	License LicenseSpec `json:"license"`

	// Developer or maintainer of the library
	// +required
	Developer DeveloperSpec `json:"developer"`

	// SCM points at the source repository
	// +required
	SCM SCMSpec `json:"scm"`

	// Artifacts references the primary, sources and javadoc files
	// +required
	Artifacts ArtifactsSpec `json:"artifacts"`

	// Registries overrides the configured registry endpoints
	// +optional
	Registries *RegistriesSpec `json:"registries,omitempty"`

	// Prepare lists commands that produce the artifacts before publication
	// +optional
	Prepare []PrepareStep `json:"prepare,omitempty"`
}

// CoordinateSpec is the group, artifact id and version of a library
type CoordinateSpec struct {
	// +kubebuilder:validation:MinLength=1
	Group string `json:"group"`
	// +kubebuilder:validation:MinLength=1
	ArtifactID string `json:"artifactId"`
	// +kubebuilder:validation:MinLength=1
	Version string `json:"version"`
}

// LicenseSpec selects the license
type LicenseSpec struct {
	// ID is the SPDX identifier, e.g. LGPL-3.0
	// +required
	ID string `json:"id"`
	// Name overrides the canonical license name
	// +optional
	Name string `json:"name,omitempty"`
	// URL overrides the canonical license URL; required for unknown identifiers
	// +kubebuilder:validation:Format=uri
	// +optional
	URL string `json:"url,omitempty"`
}

// DeveloperSpec identifies the developer
type DeveloperSpec struct {
	// +required
	ID string `json:"id"`
	// +optional
	Name string `json:"name,omitempty"`
	// +optional
	Email string `json:"email,omitempty"`
}

// SCMSpec points at the source repository
type SCMSpec struct {
	// +kubebuilder:validation:Format=uri
	// +required
	URL string `json:"url"`
}

// ArtifactsSpec references the three files of a publication. References are
// local paths, file:// URLs or http(s):// URLs.
type ArtifactsSpec struct {
	// +required
	Primary string `json:"primary"`
	// +required
	Sources string `json:"sources"`
	// +required
	Javadoc string `json:"javadoc"`
}

// RegistriesSpec overrides registry settings for this publication
type RegistriesSpec struct {
	// +optional
	Maven *MavenRegistrySpec `json:"maven,omitempty"`
	// +optional
	Bintray *BintrayRegistrySpec `json:"bintray,omitempty"`
	// +optional
	GitHub *GitHubRegistrySpec `json:"github,omitempty"`
}

// MavenRegistrySpec configures the generic Maven host
type MavenRegistrySpec struct {
	// +optional
	URL string `json:"url,omitempty"`
	// IncludePOM writes a POM next to the artifacts
	// +optional
	IncludePOM *bool `json:"includePOM,omitempty"`
}

// BintrayRegistrySpec configures the package index
type BintrayRegistrySpec struct {
	// +optional
	APIURL string `json:"apiURL,omitempty"`
	// +optional
	Subject string `json:"subject,omitempty"`
	// +optional
	Repository string `json:"repository,omitempty"`
	// +optional
	Package string `json:"package,omitempty"`
}

// GitHubRegistrySpec configures the source host package registry
type GitHubRegistrySpec struct {
	// +optional
	URL string `json:"url,omitempty"`
	// +optional
	Owner string `json:"owner,omitempty"`
	// +optional
	Repository string `json:"repository,omitempty"`
}

// PrepareStep is a command run before publication, typically the build that
// produces the artifacts
type PrepareStep struct {
	// Name identifies the step in logs
	// +required
	Name string `json:"name"`

	// Command must be permitted by the allow-list
	// +required
	Command string `json:"command"`

	// +optional
	Args []string `json:"args,omitempty"`

	// +optional
	Env map[string]string `json:"env,omitempty"`

	// Timeout bounds the step; the configured default applies when unset
	// +optional
	Timeout *metav1.Duration `json:"timeout,omitempty"`
}

// PublicationStatus defines the observed state of a Publication
type PublicationStatus struct {
	// Conditions represent the current state of the Publication
	// +listType=map
	// +listMapKey=type
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// ObservedGeneration is the last observed generation of the Publication
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// State is the terminal state of the last run: Done or Aborted
	// +optional
	State string `json:"state,omitempty"`

	// Results has one entry per known registry, in declaration order
	// +optional
	Results []RegistryResult `json:"results,omitempty"`

	// Artifacts describes the primary artifact as stored by each registry
	// that accepted it
	// +optional
	Artifacts []fluxmeta.Artifact `json:"artifacts,omitempty"`

	// LastPublishedTime is when the last run finished
	// +optional
	LastPublishedTime *metav1.Time `json:"lastPublishedTime,omitempty"`
}

// RegistryResult is the outcome of publishing to one registry
type RegistryResult struct {
	Registry string `json:"registry"`
	// +kubebuilder:validation:Enum=Published;Skipped;Failed
	Outcome string `json:"outcome"`
	// +optional
	Reason string `json:"reason,omitempty"`
	// +optional
	URL string `json:"url,omitempty"`
	// +optional
	Duration metav1.Duration `json:"duration,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Coordinate",type="string",JSONPath=".spec.coordinate.artifactId"
// +kubebuilder:printcolumn:name="Version",type="string",JSONPath=".spec.coordinate.version"
// +kubebuilder:printcolumn:name="Ready",type="string",JSONPath=".status.conditions[?(@.type==\"Ready\")].status"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// Publication is the Schema for the publications API
type Publication struct {
	metav1.TypeMeta `json:",inline"`

	// metadata is a standard object metadata
	// +optional
	metav1.ObjectMeta `json:"metadata,omitempty,omitzero"`

	// spec defines what to publish
	// +required
	Spec PublicationSpec `json:"spec"`

	// status defines the observed state of Publication
	// +optional
	Status PublicationStatus `json:"status,omitempty,omitzero"`
}

// +kubebuilder:object:root=true

// PublicationList contains a list of Publication
type PublicationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Publication `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Publication{}, &PublicationList{})
}
