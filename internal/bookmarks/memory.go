package bookmarks

import (
	"context"
	"sync"

	"github.com/arkapradana/flightdeck/internal/models"
)

// MemoryStore keeps the bookmark set in process memory. Used when no
// redis is configured and throughout the tests.
type MemoryStore struct {
	mu       sync.Mutex
	offers   []models.FlightOffer
	watchers []chan struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Has(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.offers {
		if o.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Add(ctx context.Context, offer models.FlightOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.offers {
		if o.ID == offer.ID {
			return nil
		}
	}
	s.offers = append(s.offers, offer)
	s.notify()
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.offers[:0]
	for _, o := range s.offers {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(s.offers) {
		return nil
	}
	s.offers = kept
	s.notify()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.FlightOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FlightOffer, len(s.offers))
	copy(out, s.offers)
	return out, nil
}

func (s *MemoryStore) Watch() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.watchers = append(s.watchers, ch)
	return ch
}

func (s *MemoryStore) notify() {
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *MemoryStore) Close() error {
	return nil
}
