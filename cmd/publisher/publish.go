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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/yaml"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/config"
	"github.com/oddkinco/registry-publisher/internal/hooks"
	"github.com/oddkinco/registry-publisher/internal/metrics"
	"github.com/oddkinco/registry-publisher/internal/publisher"
	"github.com/oddkinco/registry-publisher/internal/source"
)

type publishOptions struct {
	*options
	workDir     string
	skipPrepare bool
	statusOut   string
}

func newPublishCommand(opts *options) *cobra.Command {
	p := &publishOptions{options: opts}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Run the prepare steps and publish to every eligible registry",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return p.run(ctrl.SetupSignalHandler())
		},
	}

	cmd.Flags().StringVar(&p.workDir, "workdir", "", "Working directory for prepare steps")
	cmd.Flags().BoolVar(&p.skipPrepare, "skip-prepare", false, "Do not run the prepare steps")
	cmd.Flags().StringVar(&p.statusOut, "status-out", "",
		"Write the Publication with its resulting status to this path")
	return cmd
}

func (p *publishOptions) run(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("publish")
	ctx = log.IntoContext(ctx, logger)

	s, err := p.load(ctx)
	if err != nil {
		return err
	}
	spec := s.publication.Spec

	if !p.skipPrepare && len(spec.Prepare) > 0 {
		if err := p.prepare(ctx, s); err != nil {
			return err
		}
	}

	var recorder metrics.MetricsRecorder = metrics.NoopRecorder{}
	var gatherer prometheus.Gatherer
	if s.config.Metrics.Enabled {
		prom := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		recorder = prom
		gatherer = prom.Gatherer()
	}

	loader := publisher.MeteredLoader(source.NewDefaultFactory(s.config.SourceHTTPConfig()), recorder)
	orchestrator := publisher.New(s.adapters,
		publisher.WithMetrics(recorder),
		publisher.WithAssembler(artifact.NewManager(loader)),
		publisher.WithConcurrency(s.config.Publish.Concurrency))

	license, developer, scm := config.Policies(spec)
	report, runErr := orchestrator.Run(ctx, publisher.Request{
		Project:    config.ProjectConfig(spec),
		License:    license,
		Developer:  developer,
		SCM:        scm,
		References: config.ArtifactReferences(spec),
		Env:        s.env,
	})

	if gatherer != nil && s.config.Metrics.PushGatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := metrics.Push(pushCtx, gatherer, metrics.PushConfig{
			URL: s.config.Metrics.PushGatewayURL,
			Job: s.config.Metrics.Job,
			Grouping: map[string]string{
				"publication": s.publication.Name,
			},
		})
		cancel()
		if err != nil {
			logger.Error(err, "Failed to push metrics", "url", s.config.Metrics.PushGatewayURL)
		}
	}

	if p.statusOut != "" {
		report.ApplyTo(s.publication)
		if err := writeYAML(p.statusOut, s.publication); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}
	if report.Failed() {
		return report.Err()
	}
	return nil
}

// prepare runs the manifest's prepare steps with every registry credential
// removed from their environment
func (p *publishOptions) prepare(ctx context.Context, s *session) error {
	allowList, err := hooks.NewFileAllowList(s.config.Hooks.AllowListPath)
	if err != nil {
		return err
	}

	executor := hooks.NewLocalExecutor(allowList, s.config.Hooks.DefaultTimeout).
		WithEnvironment(s.hookEnvironment())
	if p.workDir != "" {
		executor = executor.WithWorkDir(p.workDir)
	}

	return hooks.RunAll(ctx, executor, s.publication.Spec.Prepare)
}

func writeYAML(path string, obj any) error {
	data, err := yaml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
