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

// Package source loads artifact payloads produced by upstream build steps.
package source

import (
	"context"
)

// Loader reads the payload an artifact reference points at
type Loader interface {
	// Load fetches the payload for ref
	Load(ctx context.Context, ref string) (*Payload, error)
}

// Payload is a loaded artifact together with what the loader learned about it
type Payload struct {
	Data     []byte            `json:"data"`
	Name     string            `json:"name"`
	Metadata map[string]string `json:"metadata"`
}

// LoaderFactory creates loaders based on the reference scheme
type LoaderFactory interface {
	// CreateLoader creates a loader for the specified scheme
	CreateLoader(scheme string) (Loader, error)

	// RegisterLoader registers a loader factory function for a scheme
	RegisterLoader(scheme string, factory func() Loader) error

	// SupportedSchemes returns a list of supported schemes
	SupportedSchemes() []string
}
