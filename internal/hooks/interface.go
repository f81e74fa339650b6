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

// Package hooks runs the prepare steps that produce a publication's artifacts.
package hooks

import (
	"context"
	"time"

	"github.com/oddkinco/registry-publisher/api/v1alpha1"
)

// StepExecutor defines the interface for running prepare steps
type StepExecutor interface {
	// Execute runs one step to completion and returns its captured output
	Execute(ctx context.Context, step v1alpha1.PrepareStep) (*Output, error)
}

// AllowList defines the interface for deciding which commands may run
type AllowList interface {
	// IsAllowed checks if a command with given arguments is allowed
	IsAllowed(command string, args []string) bool

	// Reload reloads the allow-list from the configured source
	Reload() error
}

// Output is what a finished step produced
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}
