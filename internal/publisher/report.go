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

package publisher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	fluxmeta "github.com/fluxcd/pkg/apis/meta"
	apimeta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/oddkinco/registry-publisher/api/v1alpha1"
	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/registry"
)

const (
	// ConfigurationErrorReason marks a run that aborted on its own declarations
	ConfigurationErrorReason = "ConfigurationError"
	// ArtifactLoadFailedReason marks a run that aborted because an artifact
	// could not be fetched; a later run may succeed unchanged
	ArtifactLoadFailedReason = "ArtifactLoadFailed"
)

// Report is the outcome of a run
type Report struct {
	// State is StateDone or StateAborted once Run returns
	State State
	// AbortedIn is the step that failed when State is StateAborted
	AbortedIn State
	// Cause is the error that aborted the run
	Cause error

	Coordinate project.Coordinate
	Metadata   metadata.Descriptive
	Bundle     *artifact.Bundle

	// Results holds one entry per registry in declaration order
	Results []registry.Result

	StartTime time.Time
	Duration  time.Duration
}

// Failed reports whether the run aborted or any registry failed.
// Skipped registries are not failures.
func (r *Report) Failed() bool {
	if r.State == StateAborted {
		return true
	}
	for _, result := range r.Results {
		if result.Outcome == registry.OutcomeFailed {
			return true
		}
	}
	return false
}

// Err aggregates the abort cause and every registry failure. It is nil when
// nothing failed.
func (r *Report) Err() error {
	var errs []error
	if r.Cause != nil {
		errs = append(errs, r.Cause)
	}
	for _, result := range r.Results {
		if result.Outcome != registry.OutcomeFailed {
			continue
		}
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Registry, result.Err))
		} else {
			errs = append(errs, fmt.Errorf("%s: %s", result.Registry, result.Reason))
		}
	}
	return utilerrors.NewAggregate(errs)
}

// Result returns the result for one registry
func (r *Report) Result(id registry.RegistryID) (registry.Result, bool) {
	for _, result := range r.Results {
		if result.Registry == id {
			return result, true
		}
	}
	return registry.Result{}, false
}

// Counts returns how many registries were published to, skipped and failed
func (r *Report) Counts() (published, skipped, failed int) {
	for _, result := range r.Results {
		switch result.Outcome {
		case registry.OutcomePublished:
			published++
		case registry.OutcomeSkipped:
			skipped++
		case registry.OutcomeFailed:
			failed++
		}
	}
	return published, skipped, failed
}

// ApplyTo records the report on the status of a Publication
func (r *Report) ApplyTo(pub *v1alpha1.Publication) {
	now := metav1.Now()
	status := &pub.Status

	status.ObservedGeneration = pub.Generation
	status.State = string(r.State)
	status.LastPublishedTime = &now

	status.Results = make([]v1alpha1.RegistryResult, 0, len(r.Results))
	for _, result := range r.Results {
		status.Results = append(status.Results, v1alpha1.RegistryResult{
			Registry: string(result.Registry),
			Outcome:  string(result.Outcome),
			Reason:   result.Reason,
			URL:      result.URL,
			Duration: metav1.Duration{Duration: result.Duration},
		})
	}
	status.Artifacts = r.storedArtifacts(now)

	if r.State == StateAborted {
		message := fmt.Sprintf("Aborted in %s: %v", r.AbortedIn, r.Cause)
		if !r.abortedOnDeclarations() {
			apimeta.RemoveStatusCondition(&status.Conditions, fluxmeta.StalledCondition)
			setCondition(pub, fluxmeta.ReadyCondition, metav1.ConditionFalse, ArtifactLoadFailedReason, message)
			return
		}
		setCondition(pub, fluxmeta.ReadyCondition, metav1.ConditionFalse, ConfigurationErrorReason, message)
		setCondition(pub, fluxmeta.StalledCondition, metav1.ConditionTrue, ConfigurationErrorReason, message)
		return
	}
	apimeta.RemoveStatusCondition(&status.Conditions, fluxmeta.StalledCondition)

	published, skipped, failed := r.Counts()
	if failed > 0 {
		setCondition(pub, fluxmeta.ReadyCondition, metav1.ConditionFalse, fluxmeta.FailedReason,
			fmt.Sprintf("%d of %d registries failed: %s", failed, len(r.Results), r.failedRegistries()))
		return
	}
	setCondition(pub, fluxmeta.ReadyCondition, metav1.ConditionTrue, fluxmeta.SucceededReason,
		fmt.Sprintf("Published %s to %d registries, skipped %d", r.Coordinate, published, skipped))
}

// storedArtifacts describes the primary artifact once per registry that accepted it
func (r *Report) storedArtifacts(now metav1.Time) []fluxmeta.Artifact {
	if r.Bundle == nil {
		return nil
	}
	primary, ok := r.Bundle.Get(project.Primary)
	if !ok {
		return nil
	}

	var stored []fluxmeta.Artifact
	for _, result := range r.Results {
		if result.Outcome != registry.OutcomePublished {
			continue
		}
		size := int64(primary.Size())
		stored = append(stored, fluxmeta.Artifact{
			Path:           r.Coordinate.FilePath(project.Primary, primary.Extension),
			URL:            result.URL,
			Revision:       r.Coordinate.Version(),
			Digest:         "sha256:" + primary.Digests.SHA256,
			LastUpdateTime: now,
			Size:           &size,
			Metadata: map[string]string{
				"registry": string(result.Registry),
			},
		})
	}
	return stored
}

// abortedOnDeclarations reports whether the abort cause can only be fixed by
// changing the manifest: an invalid coordinate or policy, or a missing artifact reference
func (r *Report) abortedOnDeclarations() bool {
	return project.IsConfigError(r.Cause) || errors.Is(r.Cause, artifact.ErrIncompleteBundle)
}

func (r *Report) failedRegistries() string {
	var names []string
	for _, result := range r.Results {
		if result.Outcome == registry.OutcomeFailed {
			names = append(names, string(result.Registry))
		}
	}
	return strings.Join(names, ", ")
}

func setCondition(pub *v1alpha1.Publication, conditionType string, status metav1.ConditionStatus, reason, message string) {
	apimeta.SetStatusCondition(&pub.Status.Conditions, metav1.Condition{
		Type:               conditionType,
		Status:             status,
		Reason:             reason,
		Message:            message,
		LastTransitionTime: metav1.Now(),
		ObservedGeneration: pub.Generation,
	})
}
