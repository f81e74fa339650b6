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

package source

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Factory implements LoaderFactory
type Factory struct {
	loaders map[string]func() Loader
	mutex   sync.RWMutex
}

// NewFactory creates a new loader factory
func NewFactory() *Factory {
	return &Factory{
		loaders: make(map[string]func() Loader),
	}
}

// NewDefaultFactory returns a factory with file, http and https loaders registered
func NewDefaultFactory(httpConfig HTTPConfig) *Factory {
	f := NewFactory()
	_ = f.RegisterLoader("file", func() Loader { return NewFileLoader() })
	_ = f.RegisterLoader("http", func() Loader { return NewHTTPLoader(httpConfig) })
	_ = f.RegisterLoader("https", func() Loader { return NewHTTPLoader(httpConfig) })
	return f
}

// CreateLoader creates a loader for the specified scheme
func (f *Factory) CreateLoader(scheme string) (Loader, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	factory, exists := f.loaders[strings.ToLower(scheme)]
	if !exists {
		return nil, fmt.Errorf("unsupported artifact reference scheme: %s", scheme)
	}

	return factory(), nil
}

// RegisterLoader registers a loader factory function for a scheme
func (f *Factory) RegisterLoader(scheme string, factory func() Loader) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if scheme == "" {
		return fmt.Errorf("loader scheme cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	f.loaders[strings.ToLower(scheme)] = factory
	return nil
}

// SupportedSchemes returns the registered schemes in lexical order
func (f *Factory) SupportedSchemes() []string {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	schemes := make([]string, 0, len(f.loaders))
	for scheme := range f.loaders {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)

	return schemes
}

// Load dispatches ref to the loader for its scheme. References without a
// scheme are treated as local file paths.
func (f *Factory) Load(ctx context.Context, ref string) (*Payload, error) {
	scheme := SchemeOf(ref)
	loader, err := f.CreateLoader(scheme)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, ref)
}

// SchemeOf returns the scheme of an artifact reference, "file" for bare paths
func SchemeOf(ref string) string {
	u, err := url.Parse(ref)
	// Single letter schemes are Windows drive letters
	if err != nil || len(u.Scheme) <= 1 {
		return "file"
	}
	return strings.ToLower(u.Scheme)
}
