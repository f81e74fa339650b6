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

package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/oddkinco/registry-publisher/api/v1alpha1"
)

// ErrNotAllowed is returned for steps the allow-list rejects
var ErrNotAllowed = errors.New("command not allowed")

const (
	// maxErrorOutput bounds how much stderr is quoted in an error
	maxErrorOutput = 4096

	waitDelay = 2 * time.Second
)

// LocalExecutor runs prepare steps as child processes of the publisher
type LocalExecutor struct {
	allowList      AllowList
	defaultTimeout time.Duration
	workDir        string
	env            map[string]string
}

// NewLocalExecutor creates an executor gated by the allow-list. Steps that set
// no timeout are bounded by defaultTimeout.
func NewLocalExecutor(allowList AllowList, defaultTimeout time.Duration) *LocalExecutor {
	return &LocalExecutor{
		allowList:      allowList,
		defaultTimeout: defaultTimeout,
	}
}

// WithWorkDir runs steps in dir instead of the current directory
func (l *LocalExecutor) WithWorkDir(dir string) *LocalExecutor {
	l.workDir = dir
	return l
}

// WithEnvironment sets the base environment of every step. Without it a step
// sees only its own variables.
func (l *LocalExecutor) WithEnvironment(env map[string]string) *LocalExecutor {
	l.env = env
	return l
}

// Execute runs the step and waits for it
func (l *LocalExecutor) Execute(ctx context.Context, step v1alpha1.PrepareStep) (*Output, error) {
	if step.Command == "" {
		return nil, fmt.Errorf("step %s has no command", step.Name)
	}
	if l.allowList == nil || !l.allowList.IsAllowed(step.Command, step.Args) {
		return nil, fmt.Errorf("step %s: %w: %s %v", step.Name, ErrNotAllowed, step.Command, step.Args)
	}

	timeout := l.defaultTimeout
	if step.Timeout != nil && step.Timeout.Duration > 0 {
		timeout = step.Timeout.Duration
	}

	execCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(execCtx, step.Command, step.Args...)
	cmd.Dir = l.workDir
	cmd.Env = environ(l.env, step.Env)
	// Grandchildren may keep the output pipes open after a kill
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	output := &Output{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			output.ExitCode = -1
			return output, fmt.Errorf("step %s timed out after %s", step.Name, timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, fmt.Errorf("step %s exited with code %d: %s",
				step.Name, output.ExitCode, tail(stderr.String(), maxErrorOutput))
		}
		output.ExitCode = -1
		return output, fmt.Errorf("step %s failed to run: %w", step.Name, err)
	}

	return output, nil
}

// RunAll executes the steps in order and stops at the first failure
func RunAll(ctx context.Context, executor StepExecutor, steps []v1alpha1.PrepareStep) error {
	logger := log.FromContext(ctx)

	for i, step := range steps {
		logger.Info("Running prepare step", "step", step.Name, "index", i, "command", step.Command)

		output, err := executor.Execute(ctx, step)
		if err != nil {
			logger.Error(err, "Prepare step failed", "step", step.Name)
			return fmt.Errorf("prepare step %d: %w", i, err)
		}

		logger.V(1).Info("Prepare step finished",
			"step", step.Name,
			"duration", output.Duration,
			"stdout_bytes", len(output.Stdout))
	}

	return nil
}

// environ renders the base environment overlaid with step variables in a
// stable order
func environ(base, overlay map[string]string) []string {
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+merged[k])
	}
	return env
}

func tail(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}
