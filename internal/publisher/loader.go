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
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/metrics"
	"github.com/oddkinco/registry-publisher/internal/source"
)

// meteredLoader records every artifact load on a metrics recorder
type meteredLoader struct {
	next     artifact.Loader
	recorder metrics.MetricsRecorder
}

// MeteredLoader wraps next so each load is timed and counted by scheme
func MeteredLoader(next artifact.Loader, recorder metrics.MetricsRecorder) artifact.Loader {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &meteredLoader{next: next, recorder: recorder}
}

func (m *meteredLoader) Load(ctx context.Context, ref string) (*source.Payload, error) {
	start := time.Now()
	payload, err := m.next.Load(ctx, ref)
	duration := time.Since(start)

	scheme := source.SchemeOf(ref)
	m.recorder.RecordArtifactLoad(scheme, err == nil, duration)
	if err == nil {
		log.FromContext(ctx).V(1).Info("Loaded artifact",
			"scheme", scheme, "name", payload.Name, "bytes", len(payload.Data), "duration", duration)
	}
	return payload, err
}
