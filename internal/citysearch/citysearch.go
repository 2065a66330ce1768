package citysearch

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/arkapradana/flightdeck/internal/models"
)

// MinKeywordLength is the shortest keyword that triggers a lookup.
const MinKeywordLength = 2

// DefaultQuietPeriod is how long input must be stable before a
// debounced lookup dispatches.
const DefaultQuietPeriod = 500 * time.Millisecond

// Lookup is the slice of the gateway the searcher needs.
type Lookup interface {
	SearchLocations(ctx context.Context, keyword string) ([]models.City, error)
}

// Searcher performs city/airport lookups. A failed lookup degrades to
// an empty result set instead of propagating; this is the one place in
// the system where an error is swallowed.
type Searcher struct {
	api Lookup
}

func NewSearcher(api Lookup) *Searcher {
	return &Searcher{api: api}
}

func (s *Searcher) Search(ctx context.Context, keyword string) []models.City {
	keyword = strings.TrimSpace(keyword)
	if utf8.RuneCountInString(keyword) < MinKeywordLength {
		return nil
	}

	cities, err := s.api.SearchLocations(ctx, keyword)
	if err != nil {
		log.WithError(err).Warn("city search failed, returning empty results")
		return nil
	}
	return cities
}

// Debouncer suspends lookup dispatch until input has been stable for
// the quiet period, then dispatches only the most recent keyword.
// Results are delivered via the callback; a completion older than the
// newest delivered one is dropped (sequence-number guarding), so a
// stale response can never overwrite a fresher one.
type Debouncer struct {
	searcher *Searcher
	quiet    time.Duration
	deliver  func(keyword string, results []models.City)

	mu        sync.Mutex
	timer     *time.Timer
	seq       uint64
	delivered uint64
}

func NewDebouncer(searcher *Searcher, quiet time.Duration, deliver func(keyword string, results []models.City)) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{
		searcher: searcher,
		quiet:    quiet,
		deliver:  deliver,
	}
}

// Input registers a keystroke. Each call restarts the quiet period;
// only the latest keyword after a full quiet period is dispatched.
func (d *Debouncer) Input(ctx context.Context, keyword string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.dispatch(ctx, seq, keyword)
	})
}

func (d *Debouncer) dispatch(ctx context.Context, seq uint64, keyword string) {
	d.mu.Lock()
	superseded := seq != d.seq
	d.mu.Unlock()
	if superseded {
		return
	}

	results := d.searcher.Search(ctx, keyword)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq < d.delivered {
		return
	}
	d.delivered = seq

	if d.deliver != nil {
		d.deliver(keyword, results)
	}
}

// Flush cancels any pending dispatch, for teardown.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
