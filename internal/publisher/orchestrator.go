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
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/credentials"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/metrics"
	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/registry"
)

// Orchestrator publishes to a fixed, ordered list of registries
type Orchestrator struct {
	adapters    []registry.Adapter
	recorder    metrics.MetricsRecorder
	assembler   artifact.BundleAssembler
	concurrency int
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithMetrics records run and target metrics on recorder
func WithMetrics(recorder metrics.MetricsRecorder) Option {
	return func(o *Orchestrator) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

// WithAssembler loads Request.References when no bundle is given
func WithAssembler(assembler artifact.BundleAssembler) Option {
	return func(o *Orchestrator) {
		o.assembler = assembler
	}
}

// WithConcurrency caps how many registries are published to at once.
// Zero or less means no cap.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		o.concurrency = n
	}
}

// New creates an orchestrator. Results are reported in the order of adapters.
func New(adapters []registry.Adapter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		adapters: append([]registry.Adapter(nil), adapters...),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run drives the request through Init, CredentialProbe, MetadataCompose and
// PerTargetPublish. A configuration error in any step before PerTargetPublish
// aborts the run; no registry is contacted and the error is returned with the
// report. Once publishing starts the run always reaches Done, and per-registry
// failures are only reported through the results.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	logger := log.FromContext(ctx)
	report := &Report{
		State:     StateInit,
		StartTime: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartTime)
		o.recorder.RecordPublication(string(report.State), report.Duration)
	}()

	// Init
	coord, err := project.Resolve(req.Project)
	if err != nil {
		return o.abort(ctx, report, fmt.Errorf("failed to resolve coordinate: %w", err))
	}
	report.Coordinate = coord
	logger = logger.WithValues("coordinate", coord.String())

	bundle := req.Bundle
	if bundle == nil && o.assembler != nil && len(req.References) > 0 {
		bundle, err = o.assembler.Assemble(ctx, req.References)
		if err != nil {
			return o.abort(ctx, report, fmt.Errorf("failed to assemble artifacts: %w", err))
		}
	}
	if err := bundle.Validate(); err != nil {
		return o.abort(ctx, report, err)
	}
	report.Bundle = bundle

	// CredentialProbe
	report.State = StateCredentialProbe
	pairs := make(map[credentials.RegistryID]credentials.EnvPair, len(o.adapters))
	for _, adapter := range o.adapters {
		pairs[adapter.ID()] = adapter.Credentials()
	}
	creds := credentials.Probe(req.Env, pairs)

	// MetadataCompose
	report.State = StateMetadataCompose
	meta, err := metadata.Compose(req.License, req.Developer, req.SCM)
	if err != nil {
		return o.abort(ctx, report, fmt.Errorf("failed to compose metadata: %w", err))
	}
	report.Metadata = meta

	// PerTargetPublish
	report.State = StatePerTargetPublish
	logger.Info("Publishing", "registries", len(o.adapters), "bytes", bundle.Size())
	report.Results = o.publish(log.IntoContext(ctx, logger), coord, bundle, meta, creds)

	report.State = StateDone
	published, skipped, failed := report.Counts()
	logger.Info("Publication completed",
		"published", published,
		"skipped", skipped,
		"failed", failed,
		"duration", time.Since(report.StartTime))

	return report, nil
}

// publish runs one worker per adapter and waits for all of them. Workers never
// return errors, so one failing registry cannot cancel another.
func (o *Orchestrator) publish(ctx context.Context, coord project.Coordinate, bundle *artifact.Bundle,
	meta metadata.Descriptive, creds map[credentials.RegistryID]*credentials.Credential) []registry.Result {
	results := make([]registry.Result, len(o.adapters))

	var g errgroup.Group
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, adapter := range o.adapters {
		g.Go(func() error {
			results[i] = o.publishTarget(ctx, adapter, coord, bundle, meta, creds[adapter.ID()])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (o *Orchestrator) publishTarget(ctx context.Context, adapter registry.Adapter, coord project.Coordinate,
	bundle *artifact.Bundle, meta metadata.Descriptive, cred *credentials.Credential) (result registry.Result) {
	id := adapter.ID()
	logger := log.FromContext(ctx).WithValues("registry", id)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = registry.Failed(id, fmt.Errorf("adapter panicked: %v", r))
		}
		result.Registry = id
		result.Duration = time.Since(start)
		o.recorder.RecordTargetResult(string(id), string(result.Outcome), result.Duration, result.Bytes)

		switch result.Outcome {
		case registry.OutcomePublished:
			logger.Info("Published", "url", result.URL, "files", result.Files, "duration", result.Duration)
		case registry.OutcomeSkipped:
			logger.V(1).Info("Skipped", "reason", result.Reason)
		default:
			logger.Error(result.Err, "Publication failed", "duration", result.Duration)
		}
	}()

	if cred == nil || !adapter.Supports(cred) {
		return registry.Skipped(id)
	}

	o.recorder.IncActivePublications(string(id))
	defer o.recorder.DecActivePublications(string(id))

	return adapter.Publish(ctx, coord, bundle, meta, cred)
}

func (o *Orchestrator) abort(ctx context.Context, report *Report, err error) (*Report, error) {
	log.FromContext(ctx).Error(err, "Publication aborted", "state", report.State)
	report.AbortedIn = report.State
	report.State = StateAborted
	report.Cause = err
	return report, err
}
