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

package metrics

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushConfig describes a Prometheus Pushgateway
type PushConfig struct {
	URL      string            `json:"url"`
	Job      string            `json:"job"`
	Grouping map[string]string `json:"grouping,omitempty"`
}

// Push sends everything in gatherer to the gateway, replacing the metrics of
// the same job and grouping. A publication run is a batch job, so metrics are
// pushed once at the end instead of being scraped.
func Push(ctx context.Context, gatherer prometheus.Gatherer, config PushConfig) error {
	if config.URL == "" {
		return fmt.Errorf("push gateway URL cannot be empty")
	}
	job := config.Job
	if job == "" {
		job = "registry_publisher"
	}

	pusher := push.New(config.URL, job).Gatherer(gatherer)

	keys := make([]string, 0, len(config.Grouping))
	for k := range config.Grouping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pusher = pusher.Grouping(k, config.Grouping[k])
	}

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", config.URL, err)
	}
	return nil
}
