package citysearch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkapradana/flightdeck/internal/models"
)

type fakeLookup struct {
	mu       sync.Mutex
	keywords []string
	err      error
	delay    time.Duration
}

func (f *fakeLookup) SearchLocations(ctx context.Context, keyword string) ([]models.City, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.keywords = append(f.keywords, keyword)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []models.City{{IATACode: "PAR", Name: keyword}}, nil
}

func (f *fakeLookup) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.keywords))
	copy(out, f.keywords)
	return out
}

func TestSearcher_ShortKeywordNeverDispatches(t *testing.T) {
	lookup := &fakeLookup{}
	s := NewSearcher(lookup)

	assert.Nil(t, s.Search(context.Background(), ""))
	assert.Nil(t, s.Search(context.Background(), "p"))
	assert.Nil(t, s.Search(context.Background(), "  p  "))
	assert.Empty(t, lookup.calls())
}

func TestSearcher_FailureDegradesToEmptyResults(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("boom")}
	s := NewSearcher(lookup)

	assert.Nil(t, s.Search(context.Background(), "paris"))
}

func TestSearcher_ReturnsLookupResults(t *testing.T) {
	lookup := &fakeLookup{}
	s := NewSearcher(lookup)

	cities := s.Search(context.Background(), "paris")
	require.Len(t, cities, 1)
	assert.Equal(t, "PAR", cities[0].IATACode)
}

func TestDebouncer_OnlyLatestInputDispatches(t *testing.T) {
	lookup := &fakeLookup{}
	s := NewSearcher(lookup)

	var mu sync.Mutex
	var delivered []string
	d := NewDebouncer(s, 30*time.Millisecond, func(keyword string, results []models.City) {
		mu.Lock()
		delivered = append(delivered, keyword)
		mu.Unlock()
	})

	ctx := context.Background()
	d.Input(ctx, "p")
	d.Input(ctx, "pa")
	d.Input(ctx, "par")

	time.Sleep(120 * time.Millisecond)

	assert.Equal(t, []string{"par"}, lookup.calls())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"par"}, delivered)
}

func TestDebouncer_SeparateQuietPeriodsBothDispatch(t *testing.T) {
	lookup := &fakeLookup{}
	s := NewSearcher(lookup)

	var mu sync.Mutex
	var delivered []string
	d := NewDebouncer(s, 20*time.Millisecond, func(keyword string, results []models.City) {
		mu.Lock()
		delivered = append(delivered, keyword)
		mu.Unlock()
	})

	ctx := context.Background()
	d.Input(ctx, "paris")
	time.Sleep(80 * time.Millisecond)
	d.Input(ctx, "london")
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, []string{"paris", "london"}, lookup.calls())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"paris", "london"}, delivered)
}

func TestDebouncer_FlushCancelsPendingDispatch(t *testing.T) {
	lookup := &fakeLookup{}
	s := NewSearcher(lookup)

	d := NewDebouncer(s, 20*time.Millisecond, func(keyword string, results []models.City) {
		t.Error("no delivery expected after Flush")
	})

	d.Input(context.Background(), "paris")
	d.Flush()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, lookup.calls())
}
