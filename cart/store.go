// Package cart holds a customer's shopping cart: one line per product,
// quantities clamped to a sane range, totals derived on every read, and
// the line list persisted as JSON behind a pluggable storage backend.
package cart

import (
	"encoding/json"
	"log"
	"sync"
)

const (
	minQuantity = 1
	maxQuantity = 99
)

// Product is the snapshot source for a new cart line. Only the fields
// the cart needs are copied; later price changes do not touch the cart.
type Product struct {
	ID    int
	Slug  string
	Name  string
	Price float64
	Image string
}

type Line struct {
	ProductID int     `json:"product_id"`
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Store is a cart bound to one storage key. Mutations persist
// synchronously; persistence failures are logged and swallowed so a
// flaky backend never breaks the request path.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	lines   []Line
}

// Open loads the cart stored under key. Missing, corrupt, or
// wrongly-shaped payloads yield an empty cart rather than an error.
func Open(storage Storage, key string) *Store {
	s := &Store{storage: storage, key: key, lines: []Line{}}

	data, err := storage.Load(key)
	if err != nil || len(data) == 0 {
		return s
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Printf("cart: discarding corrupt state for %s: %v", key, err)
		return s
	}
	s.lines = lines
	return s
}

func clampQuantity(q int) int {
	if q < minQuantity {
		return minQuantity
	}
	if q > maxQuantity {
		return maxQuantity
	}
	return q
}

// Add puts quantity units of the product in the cart. An existing line
// grows in place; otherwise a new line is prepended with a snapshot of
// the product's current name, price, and image.
func (s *Store) Add(p Product, quantity int) {
	quantity = clampQuantity(quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity = clampQuantity(s.lines[i].Quantity + quantity)
			s.persist()
			return
		}
	}

	line := Line{
		ProductID: p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Image:     p.Image,
	}
	s.lines = append([]Line{line}, s.lines...)
	s.persist()
}

// Remove drops the line for productID. Absent lines are a no-op.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist()
			return
		}
	}
}

// SetQuantity replaces the line's quantity, clamped. Absent lines are a
// no-op.
func (s *Store) SetQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = clampQuantity(quantity)
			s.persist()
			return
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []Line{}
	s.persist()
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := 0.0
	for _, line := range s.lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	return subtotal
}

// persist is called with the lock held.
func (s *Store) persist() {
	data, err := json.Marshal(s.lines)
	if err != nil {
		log.Printf("cart: failed to serialize %s: %v", s.key, err)
		return
	}
	if err := s.storage.Save(s.key, data); err != nil {
		log.Printf("cart: failed to persist %s: %v", s.key, err)
	}
}
