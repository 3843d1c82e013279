package tasks

import (
	"context"
	"fmt"

	"github.com/Auzzy/relative-artistry/internal/services"
)

// artistAlbums collects every full album credited to the artist.
//
// Unless includeCollaborations is set, albums with more than one credited
// artist (splits, collaborative releases) are dropped so the playlist stays
// with each artist's own catalog.
func (e *RelativesEngine) artistAlbums(ctx context.Context, artistID, market string, includeCollaborations bool) ([]services.Album, error) {
	// The filter runs after collection so the page offset counts raw items.
	albums, err := services.Collect(ctx,
		func(ctx context.Context, offset, limit int) (*services.AlbumPage, error) {
			return e.service.ArtistAlbumsPage(ctx, artistID, market, offset, limit)
		},
		func(page *services.AlbumPage) []services.Album { return page.Items },
		func(page *services.AlbumPage) bool { return page.HasMore },
		nil,
	)
	if err != nil || includeCollaborations {
		return albums, err
	}

	var kept []services.Album
	for _, album := range albums {
		if len(album.ArtistIDs) == 1 {
			kept = append(kept, album)
		}
	}
	return kept, nil
}

// albumTracks collects an album's tracks in album order.
func (e *RelativesEngine) albumTracks(ctx context.Context, albumID string) ([]services.Track, error) {
	return services.Collect(ctx,
		func(ctx context.Context, offset, limit int) (*services.TrackPage, error) {
			return e.service.AlbumTracksPage(ctx, albumID, offset, limit)
		},
		func(page *services.TrackPage) []services.Track { return page.Items },
		func(page *services.TrackPage) bool { return page.HasMore },
		nil,
	)
}

// collectTracks gathers track IDs for each artist in order: artists in walk
// order, albums in catalog order, tracks in album order. Tracks are not
// deduplicated; a track appearing on multiple albums appears multiple times.
func (e *RelativesEngine) collectTracks(ctx context.Context, artistIDs []string, market string, includeCollaborations bool, progress chan<- ProgressUpdate) ([]string, error) {
	var trackIDs []string

	for i, artistID := range artistIDs {
		artist, err := e.service.Artist(ctx, artistID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up artist %s: %w", artistID, err)
		}
		e.sendProgress(progress, collectTracksUpdate(i+1, len(artistIDs), artist.Name))

		albums, err := e.artistAlbums(ctx, artistID, market, includeCollaborations)
		if err != nil {
			return nil, fmt.Errorf("failed to collect albums by %s: %w", artist.Name, err)
		}

		for _, album := range albums {
			tracks, err := e.albumTracks(ctx, album.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to collect tracks on %q: %w", album.Name, err)
			}
			for _, track := range tracks {
				trackIDs = append(trackIDs, track.ID)
			}
		}
	}

	return trackIDs, nil
}
