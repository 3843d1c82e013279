package tasks

import (
	"context"
	"fmt"

	"github.com/Auzzy/relative-artistry/internal/services"
	"github.com/Auzzy/relative-artistry/internal/shared"
)

// resolveArtist turns a seed query into a single catalog artist.
//
// A spotify:artist: URI is looked up directly. Anything else is treated as an
// artist name: the search pages are scanned for case-sensitive exact name
// matches, stopping at the first page that yields any. A single match wins
// outright; multiple matches go to the engine's selection strategy.
func (e *RelativesEngine) resolveArtist(ctx context.Context, query string) (*services.Artist, error) {
	if services.IsArtistURI(query) {
		artist, err := e.service.Artist(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to look up %s: %w", query, err)
		}
		return artist, nil
	}

	exactMatches := func(artists []services.Artist) []services.Artist {
		var exact []services.Artist
		for _, artist := range artists {
			if artist.Name == query {
				exact = append(exact, artist)
			}
		}
		return exact
	}

	// All page items feed the accumulator so the offset stays honest; the
	// exact-name filter is applied to the accumulated results instead.
	candidates, err := services.Collect(ctx,
		func(ctx context.Context, offset, limit int) (*services.ArtistPage, error) {
			return e.service.SearchArtistsPage(ctx, query, offset, limit)
		},
		func(page *services.ArtistPage) []services.Artist { return page.Items },
		func(page *services.ArtistPage) bool { return page.HasMore },
		func(accumulated []services.Artist) bool { return len(exactMatches(accumulated)) > 0 },
	)
	if err != nil {
		return nil, fmt.Errorf("artist search for %q failed: %w", query, err)
	}

	matches := exactMatches(candidates)

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no artist named %q", shared.ErrArtistNotFound, query)
	case 1:
		return &matches[0], nil
	default:
		artist, err := e.selector.Select(matches)
		if err != nil {
			return nil, fmt.Errorf("could not settle on an artist named %q: %w", query, err)
		}
		return artist, nil
	}
}
