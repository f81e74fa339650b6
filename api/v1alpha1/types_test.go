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
	"testing"
	"time"

	fluxmeta "github.com/fluxcd/pkg/apis/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

func testPublication() *Publication {
	includePOM := true
	return &Publication{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "sewer",
			Namespace: "default",
			Labels: map[string]string{
				"app": "sewer",
			},
		},
		Spec: PublicationSpec{
			Coordinate: CoordinateSpec{Group: "com.proximyst", ArtifactID: "sewer", Version: "0.4.0"},
			License:    LicenseSpec{ID: "LGPL-3.0"},
			Developer:  DeveloperSpec{ID: "Proximyst", Name: "Mariell Hoversholm", Email: "proximyst@proximy.st"},
			SCM:        SCMSpec{URL: "https://github.com/Proximyst/sewer"},
			Artifacts: ArtifactsSpec{
				Primary: "build/libs/sewer-0.4.0.jar",
				Sources: "build/libs/sewer-0.4.0-sources.jar",
				Javadoc: "build/libs/sewer-0.4.0-javadoc.jar",
			},
			Registries: &RegistriesSpec{
				Maven:  &MavenRegistrySpec{URL: "https://repo.example.com/releases", IncludePOM: &includePOM},
				GitHub: &GitHubRegistrySpec{Owner: "Proximyst", Repository: "sewer"},
			},
			Prepare: []PrepareStep{
				{
					Name:    "build",
					Command: "./gradlew",
					Args:    []string{"build"},
					Env:     map[string]string{"CI": "true"},
					Timeout: &metav1.Duration{Duration: 10 * time.Minute},
				},
			},
		},
		Status: PublicationStatus{
			State: "Done",
			Conditions: []metav1.Condition{
				{Type: fluxmeta.ReadyCondition, Status: metav1.ConditionTrue, Reason: fluxmeta.SucceededReason},
			},
			Results: []RegistryResult{
				{Registry: "maven", Outcome: "Published"},
				{Registry: "bintray", Outcome: "Skipped", Reason: "credentials absent"},
			},
			Artifacts: []fluxmeta.Artifact{
				{Path: "com/proximyst/sewer/0.4.0/sewer-0.4.0.jar", Revision: "0.4.0", Metadata: map[string]string{"registry": "maven"}},
			},
			LastPublishedTime: &metav1.Time{Time: time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)},
		},
	}
}

func TestPublicationDeepCopy(t *testing.T) {
	original := testPublication()

	copied := original.DeepCopy()
	assert.NotSame(t, original, copied)
	assert.Equal(t, original, copied)

	// Mutating the copy must leave the original intact
	copied.Name = "modified"
	copied.Labels["app"] = "modified"
	*copied.Spec.Registries.Maven.IncludePOM = false
	copied.Spec.Registries.GitHub.Owner = "someone-else"
	copied.Spec.Prepare[0].Args[0] = "clean"
	copied.Spec.Prepare[0].Env["CI"] = "false"
	copied.Spec.Prepare[0].Timeout.Duration = time.Second
	copied.Status.Conditions[0].Reason = fluxmeta.FailedReason
	copied.Status.Results[0].Outcome = "Failed"
	copied.Status.Artifacts[0].Metadata["registry"] = "github"
	copied.Status.LastPublishedTime.Time = time.Time{}

	assert.Equal(t, "sewer", original.Name)
	assert.Equal(t, "sewer", original.Labels["app"])
	assert.True(t, *original.Spec.Registries.Maven.IncludePOM)
	assert.Equal(t, "Proximyst", original.Spec.Registries.GitHub.Owner)
	assert.Equal(t, "build", original.Spec.Prepare[0].Args[0])
	assert.Equal(t, "true", original.Spec.Prepare[0].Env["CI"])
	assert.Equal(t, 10*time.Minute, original.Spec.Prepare[0].Timeout.Duration)
	assert.Equal(t, fluxmeta.SucceededReason, original.Status.Conditions[0].Reason)
	assert.Equal(t, "Published", original.Status.Results[0].Outcome)
	assert.Equal(t, "maven", original.Status.Artifacts[0].Metadata["registry"])
	assert.False(t, original.Status.LastPublishedTime.IsZero())

	obj := original.DeepCopyObject()
	copiedObj, ok := obj.(*Publication)
	require.True(t, ok)
	assert.Equal(t, original.Spec.Coordinate, copiedObj.Spec.Coordinate)
}

func TestPublicationDeepCopy_Nil(t *testing.T) {
	var pub *Publication
	assert.Nil(t, pub.DeepCopy())

	var spec *RegistriesSpec
	assert.Nil(t, spec.DeepCopy())

	empty := &Publication{}
	copied := empty.DeepCopy()
	assert.Nil(t, copied.Spec.Registries)
	assert.Nil(t, copied.Spec.Prepare)
	assert.Nil(t, copied.Status.LastPublishedTime)
}

func TestPublicationListDeepCopy(t *testing.T) {
	original := &PublicationList{
		Items: []Publication{*testPublication(), *testPublication()},
	}
	original.Items[1].Name = "other"

	copied := original.DeepCopy()
	require.Len(t, copied.Items, 2)
	assert.Equal(t, "other", copied.Items[1].Name)

	copied.Items[0].Spec.Prepare[0].Command = "make"
	assert.Equal(t, "./gradlew", original.Items[0].Spec.Prepare[0].Command)

	obj := original.DeepCopyObject()
	_, ok := obj.(*PublicationList)
	assert.True(t, ok)
}

func TestAddToScheme(t *testing.T) {
	scheme := runtime.NewScheme()
	require.NoError(t, AddToScheme(scheme))

	gvks, _, err := scheme.ObjectKinds(&Publication{})
	require.NoError(t, err)
	require.NotEmpty(t, gvks)
	assert.Equal(t, GroupVersion.WithKind(PublicationKind), gvks[0])

	assert.True(t, scheme.Recognizes(GroupVersion.WithKind("PublicationList")))
}
