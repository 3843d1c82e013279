// package tasks implements the related-artist playlist build pipeline.
//
// The core abstraction is RelativesEngine, which walks the related-artist graph
// from a seed artist, gathers every discovered artist's catalog, and assembles
// the tracks into one or more playlists. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/Auzzy/relative-artistry/internal/selector"
	"github.com/Auzzy/relative-artistry/internal/services"
	"github.com/Auzzy/relative-artistry/internal/shared"
)

// ArtistPlaceholder is the token in a playlist name template replaced by the
// seed artist's display name.
const ArtistPlaceholder = "<artist>"

// RunOpts configures a playlist build run.
type RunOpts struct {
	SeedArtist            string   // Artist name or spotify:artist: URI to walk from
	MaxDepth              int      // Levels of related artists to expand
	IncludeRoot           bool     // Keep the seed artist's own tracks
	Market                string   // ISO country code for album listings; empty means the user's own
	PlaylistName          string   // Name template; may contain [ArtistPlaceholder]
	ExcludeArtists        []string // Artists (names or URIs) to leave out of the walk
	ExcludeFromParent     string   // Artist whose walk down to the seed becomes the exclusion set
	IncludeCollaborations bool     // Keep albums credited to more than one artist
	Public                bool     // Create public playlists instead of private
}

// RunResult contains all data from a completed build run.
type RunResult struct {
	ArtistID   string               // Resolved seed artist ID
	ArtistName string               // Resolved seed artist display name
	Artists    []string             // Every artist ID in the playlist, walk order
	TrackCount int                  // Total tracks added across all playlists
	Playlists  []*services.Playlist // Created playlists, part order
}

// RelativesEngine builds playlists from the related-artist graph.
// All catalog I/O runs sequentially through a single CatalogService.
type RelativesEngine struct {
	service         services.CatalogService
	selector        selector.Selector
	maxPlaylistSize int
	maxTracksPerAdd int
}

// NewRelativesEngine creates an engine using the given catalog and
// name-ambiguity selection strategy. A nil strategy halts on ambiguity.
func NewRelativesEngine(service services.CatalogService, sel selector.Selector) *RelativesEngine {
	if sel == nil {
		sel = selector.Halt{}
	}
	return &RelativesEngine{
		service:         service,
		selector:        sel,
		maxPlaylistSize: MaxPlaylistSize,
		maxTracksPerAdd: MaxTracksPerAdd,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *RelativesEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// exclusionSet resolves each excluded artist and, when a parent artist is
// given, walks its related-artist graph until the seed turns up; everything
// visited on the way joins the exclusion set. The parent walk is unbounded
// apart from the seed check, so a parent with no path to the seed exhausts
// its reachable subgraph.
func (e *RelativesEngine) exclusionSet(ctx context.Context, opts RunOpts, seedID string, progress chan<- ProgressUpdate) (*linkedhashset.Set, error) {
	exclude := linkedhashset.New()

	for _, ref := range opts.ExcludeArtists {
		artist, err := e.resolveArtist(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve excluded artist %q: %w", ref, err)
		}
		exclude.Add(artist.ID)
	}

	if opts.ExcludeFromParent != "" {
		e.sendProgress(progress, discoverExclusionsUpdate(opts.ExcludeFromParent))

		parent, err := e.resolveArtist(ctx, opts.ExcludeFromParent)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent artist %q: %w", opts.ExcludeFromParent, err)
		}

		visited, err := e.relatedWalk(ctx, parent.ID, linkedhashset.New(), TargetReached(seedID), nil, 0)
		if err != nil {
			return nil, err
		}
		for _, id := range setValues(visited) {
			if id != seedID {
				exclude.Add(id)
			}
		}
	}

	if exclude.Size() > 0 {
		e.sendProgress(progress, excludedArtistsUpdate(exclude.Size()))
	}
	return exclude, nil
}

// CreateRelativesPlaylist runs the full pipeline: resolve the seed, build the
// exclusion set, walk the related-artist graph to MaxDepth, collect every
// discovered artist's tracks, and assemble them into playlists.
//
// progress may be nil. The engine never closes it; callers that hand over a
// channel close it after this returns.
func (e *RelativesEngine) CreateRelativesPlaylist(ctx context.Context, opts RunOpts, progress chan<- ProgressUpdate) (*RunResult, error) {
	if opts.SeedArtist == "" {
		return nil, fmt.Errorf("%w: seed artist required", shared.ErrMissingArgument)
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth must be non-negative", shared.ErrInvalidArgument)
	}

	e.sendProgress(progress, resolvingArtistUpdate(opts.SeedArtist))
	seed, err := e.resolveArtist(ctx, opts.SeedArtist)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, resolvedArtistUpdate(seed))

	user, err := e.service.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current user: %w", err)
	}

	market := opts.Market
	if market == "" {
		market = user.Country
	}

	exclude, err := e.exclusionSet(ctx, opts, seed.ID, progress)
	if err != nil {
		return nil, err
	}

	visited, err := e.relatedWalk(ctx, seed.ID, exclude, DepthLimit(opts.MaxDepth), progress, opts.MaxDepth)
	if err != nil {
		return nil, err
	}
	if !opts.IncludeRoot {
		visited.Remove(seed.ID)
	}
	artistIDs := setValues(visited)

	trackIDs, err := e.collectTracks(ctx, artistIDs, market, opts.IncludeCollaborations, progress)
	if err != nil {
		return nil, err
	}

	name := strings.ReplaceAll(opts.PlaylistName, ArtistPlaceholder, seed.Name)
	playlists, err := e.assemblePlaylists(ctx, user.ID, name, trackIDs, opts.Public, progress)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		ArtistID:   seed.ID,
		ArtistName: seed.Name,
		Artists:    artistIDs,
		TrackCount: len(trackIDs),
		Playlists:  playlists,
	}, nil
}
