// Package session tracks one cart per storefront browsing session. Carts
// live only in memory; a restart drops them, same as a page reload does.
package session

import (
	"sync"

	"github.com/dillkhus/order-api/internal/order"
	"github.com/google/uuid"
)

// Store maps session IDs to carts.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*order.Cart
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*order.Cart)}
}

// Create starts a new session with an empty cart.
func (s *Store) Create() (uuid.UUID, *order.Cart) {
	id := uuid.New()
	cart := order.NewCart()

	s.mu.Lock()
	s.carts[id] = cart
	s.mu.Unlock()

	return id, cart
}

// Get returns the cart for a session.
func (s *Store) Get(id uuid.UUID) (*order.Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[id]
	return cart, ok
}

// Delete ends a session and discards its cart.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
