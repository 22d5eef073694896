/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/config"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
)

// Repositories holds named connectors. It is safe for concurrent use.
type Repositories struct {
	mu         sync.RWMutex
	connectors map[string]*Connector
}

// NewRepositories creates an empty registry
func NewRepositories() *Repositories {
	return &Repositories{
		connectors: make(map[string]*Connector),
	}
}

// Open creates a connector from params and registers it under name. The
// connector is closed again if the name is taken.
func (r *Repositories) Open(ctx context.Context, name string, params config.Parameters, opts ...Option) (*Connector, error) {
	c, err := New(ctx, params, opts...)
	if err != nil {
		return nil, fmt.Errorf("repository %q: %w", name, err)
	}
	if err := r.Register(name, c); err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	return c, nil
}

// Register adds a connector under name
func (r *Repositories) Register(name string, c *Connector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connectors[name]; exists {
		return errors.NewAlreadyExistsError("repository", name)
	}
	r.connectors[name] = c
	return nil
}

// Get retrieves a connector by name
func (r *Repositories) Get(name string) (*Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.connectors[name]
	if !exists {
		return nil, errors.NewNotFoundError("repository", name)
	}
	return c, nil
}

// Remove unregisters a connector without closing it
func (r *Repositories) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connectors[name]; !exists {
		return errors.NewNotFoundError("repository", name)
	}
	delete(r.connectors, name)
	return nil
}

// List returns the registered names in sorted order
func (r *Repositories) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CloseAll closes and unregisters every connector.
func (r *Repositories) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	connectors := r.connectors
	r.connectors = make(map[string]*Connector)
	r.mu.Unlock()

	var errs []error
	for name, c := range connectors {
		if err := c.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("repository %q: %w", name, err))
		}
	}
	return stderrors.Join(errs...)
}
