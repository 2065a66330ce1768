package bookmarks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/arkapradana/flightdeck/internal/models"
)

// Store is a persistent set of saved offers keyed by offer id. Add and
// Remove are idempotent. Watch delivers a signal after every mutation
// so other consumers can refresh their view.
type Store interface {
	Has(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, offer models.FlightOffer) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.FlightOffer, error)
	Watch() <-chan struct{}
	Close() error
}

// DefaultKey matches the record name used by existing clients of the
// bookmark format.
const DefaultKey = "bookmarkedFlights"

// RedisStore persists the bookmark set as a single named record holding
// a JSON array of offers. Read-modify-write cycles are serialized
// in-process by a mutex.
type RedisStore struct {
	client *redis.Client
	key    string

	mu       sync.Mutex
	watchers []chan struct{}
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Key      string
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client: client,
		key:    cfg.Key,
	}, nil
}

func (s *RedisStore) load(ctx context.Context) ([]models.FlightOffer, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var offers []models.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *RedisStore) save(ctx context.Context, offers []models.FlightOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Has(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for _, o := range offers {
		if o.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *RedisStore) Add(ctx context.Context, offer models.FlightOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, o := range offers {
		if o.ID == offer.ID {
			return nil
		}
	}
	if err := s.save(ctx, append(offers, offer)); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := offers[:0]
	for _, o := range offers {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(offers) {
		return nil
	}
	if err := s.save(ctx, kept); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.FlightOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *RedisStore) Watch() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.watchers = append(s.watchers, ch)
	return ch
}

// notify must be called with the mutex held. Slow watchers only ever
// miss coalesced signals, never block a mutation.
func (s *RedisStore) notify() {
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
