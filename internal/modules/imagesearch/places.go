// README: Image search backed by Google Places text search and place photos.
package imagesearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"googlemaps.github.io/maps"
)

var (
	ErrNoResults   = errors.New("imagesearch: no results")
	ErrMissingTerm = errors.New("imagesearch: empty search term")
)

// DefaultPhotoMaxWidth is the width requested from the Places photo endpoint.
const DefaultPhotoMaxWidth = 800

// PlacesSearcher resolves a search term to a photo of the best matching place.
// Returned URLs point at photoBaseURL (our own photo proxy) so the Maps key is
// never handed to clients.
type PlacesSearcher struct {
	client       *maps.Client
	photoBaseURL string
	maxWidth     uint
}

// NewPlacesSearcher creates a PlacesSearcher with the given API key.
func NewPlacesSearcher(apiKey, photoBaseURL string, maxWidth int) (*PlacesSearcher, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("imagesearch: missing maps api key")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	if maxWidth <= 0 {
		maxWidth = DefaultPhotoMaxWidth
	}
	return &PlacesSearcher{
		client:       client,
		photoBaseURL: strings.TrimRight(photoBaseURL, "/"),
		maxWidth:     uint(maxWidth),
	}, nil
}

// Search runs a Places text search and returns a proxy URL for the first
// photo among the results.
func (s *PlacesSearcher) Search(ctx context.Context, term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", ErrMissingTerm
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: term})
	if err != nil {
		return "", fmt.Errorf("places api error: %w", err)
	}

	for _, result := range resp.Results {
		if len(result.Photos) == 0 || result.Photos[0].PhotoReference == "" {
			continue
		}
		return PhotoURL(s.photoBaseURL, result.Photos[0].PhotoReference), nil
	}
	return "", ErrNoResults
}

// Photo streams a place photo by reference. The caller closes the body.
func (s *PlacesSearcher) Photo(ctx context.Context, ref string) (contentType string, body io.ReadCloser, err error) {
	if ref == "" {
		return "", nil, ErrMissingTerm
	}
	resp, err := s.client.PlacePhoto(ctx, &maps.PlacePhotoRequest{
		PhotoReference: ref,
		MaxWidth:       s.maxWidth,
	})
	if err != nil {
		return "", nil, fmt.Errorf("places photo error: %w", err)
	}
	return resp.ContentType, resp.Data, nil
}

// PhotoURL builds the proxy URL for a photo reference.
func PhotoURL(base, ref string) string {
	return base + "/" + url.PathEscape(ref)
}
