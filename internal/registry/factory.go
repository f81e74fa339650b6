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

package registry

import (
	"fmt"
	"sync"
)

// DefaultOrder is the declaration order of the built-in registries. Results
// are always reported in this order.
var DefaultOrder = []RegistryID{Maven, Bintray, GitHub}

// Factory keeps adapter constructors in registration order
type Factory struct {
	constructors map[RegistryID]func() Adapter
	order        []RegistryID
	mutex        sync.RWMutex
}

// NewFactory creates an empty adapter factory
func NewFactory() *Factory {
	return &Factory{
		constructors: make(map[RegistryID]func() Adapter),
	}
}

// NewDefaultFactory registers the built-in adapters in DefaultOrder
func NewDefaultFactory(settings Settings) *Factory {
	f := NewFactory()
	_ = f.RegisterAdapter(Maven, func() Adapter { return NewMavenAdapter(settings.Maven, settings.HTTP) })
	_ = f.RegisterAdapter(Bintray, func() Adapter { return NewBintrayAdapter(settings.Bintray, settings.HTTP) })
	_ = f.RegisterAdapter(GitHub, func() Adapter { return NewGitHubAdapter(settings.GitHub, settings.HTTP) })
	return f
}

// RegisterAdapter registers a constructor. Registering an existing ID replaces
// the constructor and keeps its original position.
func (f *Factory) RegisterAdapter(id RegistryID, constructor func() Adapter) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if id == "" {
		return fmt.Errorf("registry id cannot be empty")
	}

	if constructor == nil {
		return fmt.Errorf("constructor function cannot be nil")
	}

	if _, exists := f.constructors[id]; !exists {
		f.order = append(f.order, id)
	}
	f.constructors[id] = constructor
	return nil
}

// CreateAdapter creates the adapter registered under id
func (f *Factory) CreateAdapter(id RegistryID) (Adapter, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	constructor, exists := f.constructors[id]
	if !exists {
		return nil, fmt.Errorf("unknown registry: %s", id)
	}

	return constructor(), nil
}

// Adapters creates every registered adapter in registration order
func (f *Factory) Adapters() []Adapter {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	adapters := make([]Adapter, 0, len(f.order))
	for _, id := range f.order {
		adapters = append(adapters, f.constructors[id]())
	}
	return adapters
}

// RegisteredIDs returns the registered registry IDs in registration order
func (f *Factory) RegisteredIDs() []RegistryID {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	ids := make([]RegistryID, len(f.order))
	copy(ids, f.order)
	return ids
}
