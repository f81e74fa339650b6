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

// Package publisher drives a publication from project declarations to one
// result per registry.
package publisher

import (
	"context"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
)

// Publisher runs a publication
type Publisher interface {
	// Run publishes the request to every known registry. The returned error is
	// non-nil only when the run aborted before any registry was attempted.
	Run(ctx context.Context, req Request) (*Report, error)
}

// State is a step of the publication state machine
type State string

const (
	// StateInit resolves the coordinate and checks the bundle
	StateInit State = "Init"
	// StateCredentialProbe looks up every registry's credential
	StateCredentialProbe State = "CredentialProbe"
	// StateMetadataCompose builds the shared descriptive metadata
	StateMetadataCompose State = "MetadataCompose"
	// StatePerTargetPublish runs one worker per registry
	StatePerTargetPublish State = "PerTargetPublish"
	// StateDone means every registry has a result
	StateDone State = "Done"
	// StateAborted means a configuration error stopped the run before any
	// registry was contacted
	StateAborted State = "Aborted"
)

// Request is everything a run needs. Either Bundle or References must be set;
// References are only assembled when Bundle is nil.
type Request struct {
	Project    project.Config
	License    metadata.LicensePolicy
	Developer  metadata.DeveloperPolicy
	SCM        metadata.SCMPolicy
	Bundle     *artifact.Bundle
	References map[project.Classifier]string

	// Env is the only place credentials are read from
	Env map[string]string
}
