/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package registry provides a small generic (kind, name) -> builder registry.
//
// It is used by runtime/sink to let a host process register concrete sink
// constructors under a stable key and build instances from a specification
// without the caller importing the concrete implementation package.
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Key identifies a registered builder by kind (e.g. "sink") and name
// (e.g. "file").
type Key struct {
	Kind string
	Name string
}

// String renders the key as "kind/name" for diagnostics.
func (k Key) String() string {
	return k.Kind + "/" + k.Name
}

// Builder constructs a value of type S from a configuration C.
type Builder[S any, C any] func(ctx context.Context, name string, spec C) (S, error)

// Option configures a Registry at construction time.
type Option func(*options)

type options struct {
	foldCase bool
}

// WithCaseFoldLower makes Key.Name lookups case-insensitive by folding
// names to lowercase before indexing and looking up.
func WithCaseFoldLower() Option {
	return func(o *options) { o.foldCase = true }
}

// Registry holds builders of type Builder[S, C] keyed by Key.
//
// Registry is safe for concurrent use. Registration is expected to happen
// during package init(); Build is expected to happen at runtime.
type Registry[S any, C any] struct {
	mu       sync.RWMutex
	opts     options
	builders map[Key]Builder[S, C]
	sealed   bool
}

// New constructs an empty Registry.
func New[S any, C any](opts ...Option) *Registry[S, C] {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return &Registry[S, C]{
		opts:     o,
		builders: make(map[Key]Builder[S, C]),
	}
}

func (r *Registry[S, C]) normalize(k Key) Key {
	if !r.opts.foldCase {
		return k
	}
	return Key{Kind: strings.ToLower(k.Kind), Name: strings.ToLower(k.Name)}
}

// Register adds a builder under key. It returns an error if the registry
// is sealed or a builder is already registered under key.
func (r *Registry[S, C]) Register(key Key, b Builder[S, C]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("registry: sealed, cannot register %s", key)
	}
	key = r.normalize(key)
	if _, exists := r.builders[key]; exists {
		return fmt.Errorf("registry: %s already registered", key)
	}
	r.builders[key] = b
	return nil
}

// MustRegister registers b under key and panics if registration fails.
// Intended for use from package init().
func MustRegister[S any, C any](r *Registry[S, C], key Key, b Builder[S, C]) {
	if err := r.Register(key, b); err != nil {
		panic(err)
	}
}

// Build looks up the builder registered under key and invokes it with
// key.Name as the name, and with spec.
func (r *Registry[S, C]) Build(ctx context.Context, key Key, spec C) (S, error) {
	r.mu.RLock()
	b, ok := r.builders[r.normalize(key)]
	r.mu.RUnlock()

	var zero S
	if !ok {
		return zero, fmt.Errorf("registry: no builder registered for %s", key)
	}
	return b(ctx, key.Name, spec)
}

// Seal prevents further registration. Intended to be called once all
// package init() functions have run.
func (r *Registry[S, C]) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}
