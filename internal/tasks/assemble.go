package tasks

import (
	"context"
	"fmt"

	"github.com/Auzzy/relative-artistry/internal/services"
)

const (
	// MaxPlaylistSize is the service's cap on tracks per playlist.
	MaxPlaylistSize = 11000
	// MaxTracksPerAdd is the service's cap on tracks per add call.
	MaxTracksPerAdd = 100
)

// chunk splits ids into consecutive slices of at most size elements.
func chunk(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

// partName returns the playlist name for the part-th chunk (1-based).
// The suffix only appears when the tracks spill into more than one playlist.
func partName(base string, part, total int) string {
	if total <= 1 {
		return base
	}
	return fmt.Sprintf("%s (part %d)", base, part)
}

// assemblePlaylists creates as many playlists as the track count requires
// and fills each with its tracks in order.
func (e *RelativesEngine) assemblePlaylists(ctx context.Context, userID, name string, trackIDs []string, public bool, progress chan<- ProgressUpdate) ([]*services.Playlist, error) {
	chunks := chunk(trackIDs, e.maxPlaylistSize)
	if len(chunks) == 0 {
		// An empty playlist still gets created so the run has a visible result.
		chunks = [][]string{nil}
	}

	playlists := make([]*services.Playlist, 0, len(chunks))
	for i, tracks := range chunks {
		playlistName := partName(name, i+1, len(chunks))
		e.sendProgress(progress, creatingPlaylistUpdate(i+1, len(chunks), playlistName))

		playlist, err := e.service.CreatePlaylist(ctx, userID, playlistName, public)
		if err != nil {
			return nil, fmt.Errorf("failed to create playlist %q: %w", playlistName, err)
		}

		for _, batch := range chunk(tracks, e.maxTracksPerAdd) {
			if err := e.service.AddPlaylistTracks(ctx, playlist.ID, batch); err != nil {
				return nil, fmt.Errorf("failed to add tracks to %q: %w", playlistName, err)
			}
		}

		e.sendProgress(progress, createdPlaylistUpdate(i+1, len(chunks), playlist))
		playlists = append(playlists, playlist)
	}

	return playlists, nil
}
