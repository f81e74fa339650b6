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

// Package registry contains one adapter per target registry. Each adapter
// shapes the shared coordinate, metadata and bundle into the requests its host
// expects and reports a single Result.
package registry

import (
	"context"
	"time"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/credentials"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
)

// RegistryID names a target registry
type RegistryID = credentials.RegistryID

const (
	// Maven is a general Maven-compatible repository host
	Maven RegistryID = "maven"
	// Bintray is a package-index host with package and version records
	Bintray RegistryID = "bintray"
	// GitHub is a source-hosting service's package registry
	GitHub RegistryID = "github"
)

// ReasonCredentialsAbsent is the only reason a target is ever skipped
const ReasonCredentialsAbsent = "credentials absent"

// Adapter publishes a bundle to one registry. Publish never panics and never
// returns an error out of band; every failure is reported as a Failed result.
type Adapter interface {
	// ID returns the registry identifier
	ID() RegistryID

	// Target describes the registry's static publication policy
	Target() Target

	// Credentials returns the environment variables the credential is read from
	Credentials() credentials.EnvPair

	// Supports reports whether the adapter can publish with cred
	Supports(cred *credentials.Credential) bool

	// Publish uploads the bundle and its descriptor
	Publish(ctx context.Context, coord project.Coordinate, bundle *artifact.Bundle,
		meta metadata.Descriptive, cred *credentials.Credential) Result
}

// Target is the static description of a registry
type Target struct {
	Registry                 RegistryID `json:"registry"`
	EndpointURL              string     `json:"endpointURL"`
	RequiresPOM              bool       `json:"requiresPOM"`
	RequiresVersionedPackage bool       `json:"requiresVersionedPackage"`
	Override                 bool       `json:"override"`
	PublishImmediately       bool       `json:"publishImmediately"`
}

// Outcome is the terminal state of one target's publication
type Outcome string

const (
	// OutcomePublished means every file was accepted by the registry
	OutcomePublished Outcome = "Published"
	// OutcomeSkipped means the registry was not attempted
	OutcomeSkipped Outcome = "Skipped"
	// OutcomeFailed means the registry rejected or could not be reached
	OutcomeFailed Outcome = "Failed"
)

// Result is the report of one target's publication
type Result struct {
	Registry RegistryID    `json:"registry"`
	Outcome  Outcome       `json:"outcome"`
	Reason   string        `json:"reason,omitempty"`
	Err      error         `json:"-"`
	URL      string        `json:"url,omitempty"`
	Files    int           `json:"files,omitempty"`
	Bytes    int64         `json:"bytes,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Published builds a successful result
func Published(id RegistryID, url string, files int, bytes int64) Result {
	return Result{
		Registry: id,
		Outcome:  OutcomePublished,
		URL:      url,
		Files:    files,
		Bytes:    bytes,
	}
}

// Skipped builds the result for a registry without credentials
func Skipped(id RegistryID) Result {
	return Result{
		Registry: id,
		Outcome:  OutcomeSkipped,
		Reason:   ReasonCredentialsAbsent,
	}
}

// Failed builds a failed result carrying err
func Failed(id RegistryID, err error) Result {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return Result{
		Registry: id,
		Outcome:  OutcomeFailed,
		Reason:   reason,
		Err:      err,
	}
}
