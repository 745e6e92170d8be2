package checkout

import (
	"context"
	"sync"
)

// Registry hands out one Engine per account, restoring the persisted cart
// the first time an account shows up.
type Registry struct {
	mu      sync.Mutex
	engines map[string]*Engine
	factory func(email string) *Engine
}

// NewRegistry wraps an engine factory; the factory binds each engine to
// the account's storage namespace.
func NewRegistry(factory func(email string) *Engine) *Registry {
	return &Registry{
		engines: make(map[string]*Engine),
		factory: factory,
	}
}

// For returns the account's engine, creating and restoring it on first use.
func (r *Registry) For(ctx context.Context, email string) (*Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[email]; ok {
		return e, nil
	}
	e := r.factory(email)
	if err := e.Restore(ctx); err != nil {
		return nil, err
	}
	r.engines[email] = e
	return e, nil
}
