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

package artifact

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/oddkinco/registry-publisher/internal/project"
)

// Manager implements the BundleAssembler interface
type Manager struct {
	loader Loader
}

// NewManager creates a new artifact manager with the given loader
func NewManager(loader Loader) *Manager {
	return &Manager{
		loader: loader,
	}
}

// Assemble loads each referenced artifact and builds the bundle. All three
// references must be present before anything is loaded.
func (m *Manager) Assemble(ctx context.Context, refs map[project.Classifier]string) (*Bundle, error) {
	var missing []string
	for _, c := range project.Classifiers() {
		if strings.TrimSpace(refs[c]) == "" {
			missing = append(missing, c.Name())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no reference for %s", ErrIncompleteBundle, strings.Join(missing, ", "))
	}

	artifacts := make([]Artifact, 0, len(refs))
	for _, c := range project.Classifiers() {
		ref := refs[c]
		payload, err := m.loader.Load(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s artifact from %s: %w", c.Name(), ref, err)
		}

		name := payload.Name
		if name == "" {
			name = ref
		}
		artifacts = append(artifacts, NewArtifact(c, extensionOf(name), payload.Data))
	}

	return NewBundle(artifacts...)
}

// extensionOf returns the file extension without the dot. Compound archive
// extensions such as tar.gz are kept whole.
func extensionOf(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if strings.HasSuffix(base, ".tar.gz") {
		return "tar.gz"
	}
	return strings.TrimPrefix(path.Ext(base), ".")
}
