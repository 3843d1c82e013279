package tasks

import (
	"fmt"

	"github.com/Auzzy/relative-artistry/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveArtist Phase = iota
	DiscoverExclusions
	GatherArtists
	CollectTracks
	CreatePlaylists
)

func (p Phase) String() string {
	switch p {
	case ResolveArtist:
		return "resolve_artist"
	case DiscoverExclusions:
		return "discover_exclusions"
	case GatherArtists:
		return "gather_artists"
	case CollectTracks:
		return "collect_tracks"
	case CreatePlaylists:
		return "create_playlists"
	default:
		return ""
	}
}

func resolvingArtistUpdate(query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Looking up artist %q...", query),
	}
}

func resolvedArtistUpdate(artist *services.Artist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found artist: %s (%s)", artist.Name, artist.URI),
		Data:    artist,
	}
}

func discoverExclusionsUpdate(parent string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DiscoverExclusions,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Walking related artists from %q to build the exclusion set...", parent),
	}
}

func excludedArtistsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DiscoverExclusions,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Excluding %d artists", count),
	}
}

func gatherDepthUpdate(depth, maxDepth, found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GatherArtists,
		Step:    depth,
		Total:   maxDepth,
		Message: fmt.Sprintf("Gathering related artists (depth %d/%d, %d found)", depth, maxDepth, found),
	}
}

func collectTracksUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Collecting tracks by %s...", step, total, name),
	}
}

func creatingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Creating playlist %q...", step, total, name),
	}
}

func createdPlaylistUpdate(step, total int, pl *services.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}
