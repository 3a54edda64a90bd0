package session

import (
	"sync"

	"fooddelivery/internal/order"
)

// Registry keeps one Session per customer.
type Registry struct {
	mu       sync.Mutex
	backend  Backend
	composer *order.Composer
	sessions map[string]*Session
}

func NewRegistry(backend Backend, composer *order.Composer) *Registry {
	return &Registry{
		backend:  backend,
		composer: composer,
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) Get(customerID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[customerID]
	if !ok {
		s = New(customerID, r.backend, r.composer)
		r.sessions[customerID] = s
	}
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
