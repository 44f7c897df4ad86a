// README: Best-effort image enrichment for hotels and activities.
package itinerary

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// DefaultEnrichConcurrency caps in-flight image lookups per Enrich call.
const DefaultEnrichConcurrency = 4

// ImageSearcher returns the URL of the first image matching a search term.
type ImageSearcher interface {
	Search(ctx context.Context, term string) (string, error)
}

type Enricher struct {
	searcher    ImageSearcher
	concurrency int
	defaultURL  string
}

// NewEnricher builds an Enricher. A nil searcher means no image provider is
// configured, in which case every entity gets the default image.
func NewEnricher(searcher ImageSearcher, concurrency int) *Enricher {
	if concurrency <= 0 {
		concurrency = DefaultEnrichConcurrency
	}
	return &Enricher{searcher: searcher, concurrency: concurrency, defaultURL: DefaultImageURL}
}

type imageTarget struct {
	term string
	dst  *string
}

// Enrich attaches one image URL to every hotel and activity. Lookups are
// issued once per distinct search term, at most e.concurrency at a time.
// Failures of any kind fall back to the default image; Enrich never fails and
// never leaves an image field empty.
func (e *Enricher) Enrich(ctx context.Context, it *Itinerary) *Itinerary {
	if it == nil {
		return nil
	}

	var targets []imageTarget
	add := func(term string, dst *string) {
		term = normalizeTerm(term)
		if term == "" {
			if *dst == "" {
				*dst = e.defaultURL
			}
			return
		}
		targets = append(targets, imageTarget{term: term, dst: dst})
	}

	for i := range it.TripPlan.Hotels {
		h := &it.TripPlan.Hotels[i]
		add(h.SearchTerm, &h.ImageURL)
	}
	for i := range it.Days {
		for _, list := range it.Days[i].activityLists() {
			for j := range *list {
				a := &(*list)[j]
				add(a.SearchTerm, &a.ImageURL)
			}
		}
	}
	if len(targets) == 0 {
		return it
	}

	terms := lo.Uniq(lo.Map(targets, func(t imageTarget, _ int) string { return t.term }))
	urls := e.lookup(ctx, terms)

	for _, t := range targets {
		*t.dst = urls[t.term]
	}
	return it
}

func (e *Enricher) lookup(ctx context.Context, terms []string) map[string]string {
	urls := make(map[string]string, len(terms))
	if e.searcher == nil {
		for _, term := range terms {
			urls[term] = e.defaultURL
		}
		return urls
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, term := range terms {
		g.Go(func() error {
			url := e.searchOne(gctx, term)
			mu.Lock()
			urls[term] = url
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return urls
}

func (e *Enricher) searchOne(ctx context.Context, term string) (url string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Image lookup panic for %q: %v", term, r)
			url = e.defaultURL
		}
	}()

	url, err := e.searcher.Search(ctx, term)
	if err != nil {
		log.Printf("Image lookup failed for %q: %v", term, err)
		return e.defaultURL
	}
	if strings.TrimSpace(url) == "" {
		return e.defaultURL
	}
	return url
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}
