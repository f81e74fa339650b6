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

// Package artifact holds the immutable bundle of files a publication ships.
package artifact

import (
	"context"

	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/source"
)

// BundleAssembler builds a bundle from artifact references
type BundleAssembler interface {
	// Assemble loads one artifact per classifier and returns the complete bundle
	Assemble(ctx context.Context, refs map[project.Classifier]string) (*Bundle, error)
}

// Loader is the subset of source loading the manager needs
type Loader interface {
	Load(ctx context.Context, ref string) (*source.Payload, error)
}
