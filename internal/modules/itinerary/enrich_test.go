// README: Image enrichment tests (dedupe, fallback, concurrency bound).
package itinerary

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu       sync.Mutex
	calls    map[string]int
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
	respond  func(term string) (string, error)
}

func (f *fakeSearcher) Search(ctx context.Context, term string) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[term]++
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.respond(term)
}

func sampleItinerary() *Itinerary {
	return &Itinerary{
		TripPlan: TripPlan{
			TotalDays: 2,
			Hotels: []Hotel{
				{Name: "Hotel A", SearchTerm: "Hotel A Lisbon"},
				{Name: "Hotel B", SearchTerm: "Hotel B Lisbon"},
			},
		},
		Days: []Day{
			{
				Day:                 1,
				MorningActivities:   []Activity{{PlaceName: "Belem Tower", SearchTerm: "Belem Tower"}},
				AfternoonActivities: []Activity{{PlaceName: "Tram 28", SearchTerm: "tram 28"}},
				EveningActivities:   []Activity{{PlaceName: "Fado show"}},
			},
			{
				Day:               2,
				MorningActivities: []Activity{{PlaceName: "Belem again", SearchTerm: "  belem   tower "}},
			},
		},
	}
}

func TestEnrichAttachesImages(t *testing.T) {
	fs := &fakeSearcher{respond: func(term string) (string, error) {
		return "https://img.example/" + term, nil
	}}
	it := sampleItinerary()

	got := NewEnricher(fs, 2).Enrich(context.Background(), it)

	require.Same(t, it, got)
	assert.Equal(t, "https://img.example/hotel a lisbon", got.TripPlan.Hotels[0].ImageURL)
	assert.Equal(t, "https://img.example/belem tower", got.Days[0].MorningActivities[0].ImageURL)
	assert.Equal(t, "https://img.example/belem tower", got.Days[1].MorningActivities[0].ImageURL)
	assert.Equal(t, DefaultImageURL, got.Days[0].EveningActivities[0].ImageURL)
}

func TestEnrichMemoizesByTerm(t *testing.T) {
	fs := &fakeSearcher{respond: func(term string) (string, error) { return "u:" + term, nil }}

	NewEnricher(fs, 4).Enrich(context.Background(), sampleItinerary())

	assert.Len(t, fs.calls, 4)
	for term, n := range fs.calls {
		assert.Equal(t, 1, n, "term %q", term)
	}
}

func TestEnrichFallsBackOnFailures(t *testing.T) {
	fs := &fakeSearcher{respond: func(term string) (string, error) {
		switch term {
		case "hotel a lisbon":
			return "", errors.New("status 403")
		case "tram 28":
			return "", nil
		case "belem tower":
			panic("provider blew up")
		}
		return "ok:" + term, nil
	}}

	got := NewEnricher(fs, 3).Enrich(context.Background(), sampleItinerary())

	assert.Equal(t, DefaultImageURL, got.TripPlan.Hotels[0].ImageURL)
	assert.Equal(t, "ok:hotel b lisbon", got.TripPlan.Hotels[1].ImageURL)
	assert.Equal(t, DefaultImageURL, got.Days[0].AfternoonActivities[0].ImageURL)
	assert.Equal(t, DefaultImageURL, got.Days[0].MorningActivities[0].ImageURL)
}

func TestEnrichWithoutSearcherUsesDefault(t *testing.T) {
	got := NewEnricher(nil, 0).Enrich(context.Background(), sampleItinerary())

	for _, h := range got.TripPlan.Hotels {
		assert.Equal(t, DefaultImageURL, h.ImageURL)
	}
	for _, d := range got.Days {
		for _, list := range d.activityLists() {
			for _, a := range *list {
				assert.Equal(t, DefaultImageURL, a.ImageURL)
			}
		}
	}
}

func TestEnrichBoundsConcurrency(t *testing.T) {
	fs := &fakeSearcher{
		delay:   10 * time.Millisecond,
		respond: func(term string) (string, error) { return "u", nil },
	}
	it := &Itinerary{TripPlan: TripPlan{TotalDays: 1}, Days: []Day{{Day: 1}}}
	for i := 0; i < 20; i++ {
		it.Days[0].MorningActivities = append(it.Days[0].MorningActivities,
			Activity{SearchTerm: string(rune('a' + i))})
	}

	NewEnricher(fs, 3).Enrich(context.Background(), it)

	assert.LessOrEqual(t, fs.peak.Load(), int32(3))
	assert.Len(t, fs.calls, 20)
}

func TestEnrichCancelledContextStillFillsImages(t *testing.T) {
	fs := &fakeSearcher{respond: func(term string) (string, error) { return "", context.Canceled }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := NewEnricher(fs, 2).Enrich(ctx, sampleItinerary())

	assert.Equal(t, DefaultImageURL, got.TripPlan.Hotels[1].ImageURL)
	assert.Equal(t, DefaultImageURL, got.Days[1].MorningActivities[0].ImageURL)
}
