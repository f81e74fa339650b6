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

// Package metrics records publication metrics.
package metrics

import (
	"time"
)

// MetricsRecorder defines the interface for recording metrics
type MetricsRecorder interface {
	// RecordPublication records a whole run with its terminal state
	RecordPublication(state string, duration time.Duration)

	// RecordTargetResult records the outcome of publishing to one registry
	RecordTargetResult(registry, outcome string, duration time.Duration, bytes int64)

	// RecordArtifactLoad records loading one artifact reference
	RecordArtifactLoad(scheme string, success bool, duration time.Duration)

	// IncActivePublications increments the count of in-flight target publications
	IncActivePublications(registry string)

	// DecActivePublications decrements the count of in-flight target publications
	DecActivePublications(registry string)
}

// NoopRecorder discards every metric
type NoopRecorder struct{}

func (NoopRecorder) RecordPublication(string, time.Duration) {}
func (NoopRecorder) RecordTargetResult(string, string, time.Duration, int64) {}
func (NoopRecorder) RecordArtifactLoad(string, bool, time.Duration) {}
func (NoopRecorder) IncActivePublications(string) {}
func (NoopRecorder) DecActivePublications(string) {}
