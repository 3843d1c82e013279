package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Auzzy/relative-artistry/internal/selector"
	"github.com/Auzzy/relative-artistry/internal/services"
	"github.com/Auzzy/relative-artistry/internal/shared"
)

var _ services.CatalogService = (*fakeCatalog)(nil)

// fakeCatalog is an in-memory CatalogService seeded with a small artist graph.
type fakeCatalog struct {
	user    services.User
	artists map[string]services.Artist
	related map[string][]string
	albums  map[string][]services.Album
	tracks  map[string][]services.Track
	search  map[string][]services.Artist

	relatedCalls []string
	marketsSeen  []string
	created      []*services.Playlist
	addCalls     map[string][][]string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		user:     services.User{ID: "user1", Country: "US"},
		artists:  map[string]services.Artist{},
		related:  map[string][]string{},
		albums:   map[string][]services.Album{},
		tracks:   map[string][]services.Track{},
		search:   map[string][]services.Artist{},
		addCalls: map[string][][]string{},
	}
}

func (f *fakeCatalog) addArtist(id, name string, related ...string) {
	f.artists[id] = services.Artist{ID: id, Name: name, URI: "spotify:artist:" + id}
	f.related[id] = related
}

func page[T any](items []T, offset, limit int) ([]T, bool) {
	if offset >= len(items) {
		return nil, false
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], end < len(items)
}

func (f *fakeCatalog) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (f *fakeCatalog) CurrentUser(ctx context.Context) (*services.User, error) {
	return &f.user, nil
}

func (f *fakeCatalog) SearchArtistsPage(ctx context.Context, name string, offset, limit int) (*services.ArtistPage, error) {
	items, more := page(f.search[name], offset, limit)
	return &services.ArtistPage{Items: items, HasMore: more}, nil
}

func (f *fakeCatalog) Artist(ctx context.Context, idOrURI string) (*services.Artist, error) {
	id := strings.TrimPrefix(idOrURI, "spotify:artist:")
	artist, ok := f.artists[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}
	return &artist, nil
}

func (f *fakeCatalog) RelatedArtists(ctx context.Context, artistID string) ([]string, error) {
	f.relatedCalls = append(f.relatedCalls, artistID)
	return f.related[artistID], nil
}

func (f *fakeCatalog) ArtistAlbumsPage(ctx context.Context, artistID, market string, offset, limit int) (*services.AlbumPage, error) {
	f.marketsSeen = append(f.marketsSeen, market)
	items, more := page(f.albums[artistID], offset, limit)
	return &services.AlbumPage{Items: items, HasMore: more}, nil
}

func (f *fakeCatalog) AlbumTracksPage(ctx context.Context, albumID string, offset, limit int) (*services.TrackPage, error) {
	items, more := page(f.tracks[albumID], offset, limit)
	return &services.TrackPage{Items: items, HasMore: more}, nil
}

func (f *fakeCatalog) CreatePlaylist(ctx context.Context, userID, name string, public bool) (*services.Playlist, error) {
	playlist := &services.Playlist{
		ID:     fmt.Sprintf("pl%d", len(f.created)+1),
		Name:   name,
		URL:    fmt.Sprintf("https://playlists.example/%d", len(f.created)+1),
		Public: public,
	}
	f.created = append(f.created, playlist)
	return playlist, nil
}

func (f *fakeCatalog) AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	batch := make([]string, len(trackIDs))
	copy(batch, trackIDs)
	f.addCalls[playlistID] = append(f.addCalls[playlistID], batch)
	return nil
}

func (f *fakeCatalog) Name() string { return "fake" }

// pipelineCatalog builds a graph where seed A relates to B and C, and each
// artist has one single-artist album of two tracks plus B has a collaboration.
func pipelineCatalog() *fakeCatalog {
	fake := newFakeCatalog()
	fake.addArtist("A", "Alpha", "B", "C")
	fake.addArtist("B", "Beta")
	fake.addArtist("C", "Gamma")
	fake.search["Alpha"] = []services.Artist{fake.artists["A"]}

	for _, id := range []string{"A", "B", "C"} {
		albumID := "album-" + id
		fake.albums[id] = []services.Album{{ID: albumID, Name: "LP " + id, ArtistIDs: []string{id}}}
		fake.tracks[albumID] = []services.Track{
			{ID: id + "-t1", Name: "Track One"},
			{ID: id + "-t2", Name: "Track Two"},
		}
	}

	fake.albums["B"] = append(fake.albums["B"], services.Album{
		ID: "album-split", Name: "Split", ArtistIDs: []string{"B", "C"},
	})
	fake.tracks["album-split"] = []services.Track{{ID: "split-t1", Name: "Joint"}}

	return fake
}

func TestCreateRelativesPlaylist(t *testing.T) {
	ctx := context.Background()

	t.Run("full run collects relatives in walk order", func(t *testing.T) {
		fake := pipelineCatalog()
		engine := NewRelativesEngine(fake, nil)

		result, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:   "Alpha",
			MaxDepth:     1,
			PlaylistName: ArtistPlaceholder + "'s Relatives",
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.ArtistID != "A" || result.ArtistName != "Alpha" {
			t.Errorf("unexpected seed: %+v", result)
		}
		// IncludeRoot unset, so only B and C contribute.
		if len(result.Artists) != 2 || result.Artists[0] != "B" || result.Artists[1] != "C" {
			t.Errorf("unexpected artists: %v", result.Artists)
		}
		if result.TrackCount != 4 {
			t.Errorf("expected 4 tracks, got %d", result.TrackCount)
		}
		if len(result.Playlists) != 1 {
			t.Fatalf("expected 1 playlist, got %d", len(result.Playlists))
		}
		if result.Playlists[0].Name != "Alpha's Relatives" {
			t.Errorf("unexpected playlist name: %s", result.Playlists[0].Name)
		}

		added := fake.addCalls[result.Playlists[0].ID]
		if len(added) != 1 {
			t.Fatalf("expected 1 add call, got %d", len(added))
		}
		want := []string{"B-t1", "B-t2", "C-t1", "C-t2"}
		for i, id := range want {
			if added[0][i] != id {
				t.Errorf("track %d = %s, expected %s", i, added[0][i], id)
			}
		}
	})

	t.Run("include root keeps the seed's tracks first", func(t *testing.T) {
		fake := pipelineCatalog()
		engine := NewRelativesEngine(fake, nil)

		result, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:   "spotify:artist:A",
			MaxDepth:     1,
			IncludeRoot:  true,
			PlaylistName: "Family",
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Artists) != 3 || result.Artists[0] != "A" {
			t.Errorf("expected seed first, got %v", result.Artists)
		}
		if result.TrackCount != 6 {
			t.Errorf("expected 6 tracks, got %d", result.TrackCount)
		}
	})

	t.Run("collaboration albums are dropped unless asked for", func(t *testing.T) {
		fake := pipelineCatalog()
		engine := NewRelativesEngine(fake, nil)

		result, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:            "Alpha",
			MaxDepth:              1,
			IncludeCollaborations: true,
			PlaylistName:          "Family",
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TrackCount != 5 {
			t.Errorf("expected split album track included, got %d tracks", result.TrackCount)
		}
	})

	t.Run("market falls back to the user's country", func(t *testing.T) {
		fake := pipelineCatalog()
		engine := NewRelativesEngine(fake, nil)

		if _, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:   "Alpha",
			MaxDepth:     1,
			PlaylistName: "Family",
		}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, market := range fake.marketsSeen {
			if market != "US" {
				t.Errorf("expected market US, got %q", market)
			}
		}
	})

	t.Run("explicit market wins", func(t *testing.T) {
		fake := pipelineCatalog()
		engine := NewRelativesEngine(fake, nil)

		if _, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:   "Alpha",
			MaxDepth:     1,
			Market:       "SE",
			PlaylistName: "Family",
		}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fake.marketsSeen) == 0 || fake.marketsSeen[0] != "SE" {
			t.Errorf("expected market SE, got %v", fake.marketsSeen)
		}
	})

	t.Run("excluded artists never contribute", func(t *testing.T) {
		fake := pipelineCatalog()
		fake.search["Beta"] = []services.Artist{fake.artists["B"]}
		engine := NewRelativesEngine(fake, nil)

		result, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:     "Alpha",
			MaxDepth:       1,
			ExcludeArtists: []string{"Beta"},
			PlaylistName:   "Family",
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Artists) != 1 || result.Artists[0] != "C" {
			t.Errorf("expected only C, got %v", result.Artists)
		}
	})

	t.Run("exclude from parent removes the parent's subtree", func(t *testing.T) {
		// P relates to X and A; A's relatives overlap with X.
		fake := pipelineCatalog()
		fake.addArtist("P", "Parent", "X", "A")
		fake.addArtist("X", "Cousin")
		fake.related["A"] = []string{"B", "C", "X"}
		fake.search["Parent"] = []services.Artist{fake.artists["P"]}

		engine := NewRelativesEngine(fake, nil)
		result, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:        "spotify:artist:A",
			MaxDepth:          1,
			ExcludeFromParent: "Parent",
			PlaylistName:      "Family",
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, id := range result.Artists {
			if id == "P" || id == "X" {
				t.Errorf("excluded artist %s leaked into %v", id, result.Artists)
			}
		}
		if len(result.Artists) != 2 {
			t.Errorf("expected B and C, got %v", result.Artists)
		}
	})

	t.Run("explicit excludes combine with the parent walk", func(t *testing.T) {
		fake := pipelineCatalog()
		fake.addArtist("P", "Parent", "X", "A")
		fake.addArtist("X", "Cousin")
		fake.search["Parent"] = []services.Artist{fake.artists["P"]}
		fake.search["Beta"] = []services.Artist{fake.artists["B"]}

		engine := NewRelativesEngine(fake, nil)
		result, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:        "spotify:artist:A",
			MaxDepth:          1,
			ExcludeArtists:    []string{"Beta"},
			ExcludeFromParent: "Parent",
			PlaylistName:      "Family",
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Artists) != 1 || result.Artists[0] != "C" {
			t.Errorf("expected only C to survive both exclusions, got %v", result.Artists)
		}
	})

	t.Run("progress updates flow through the channel", func(t *testing.T) {
		fake := pipelineCatalog()
		engine := NewRelativesEngine(fake, nil)
		progress := make(chan ProgressUpdate, 100)

		if _, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:   "Alpha",
			MaxDepth:     1,
			PlaylistName: "Family",
		}, progress); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(progress)

		seen := map[Phase]bool{}
		for update := range progress {
			seen[update.Phase] = true
		}
		for _, phase := range []Phase{ResolveArtist, GatherArtists, CollectTracks, CreatePlaylists} {
			if !seen[phase] {
				t.Errorf("no update for phase %s", phase)
			}
		}
	})

	t.Run("full progress channel never blocks", func(t *testing.T) {
		fake := pipelineCatalog()
		engine := NewRelativesEngine(fake, nil)
		progress := make(chan ProgressUpdate, 1)

		done := make(chan struct{})
		go func() {
			defer close(done)
			engine.CreateRelativesPlaylist(ctx, RunOpts{
				SeedArtist:   "Alpha",
				MaxDepth:     1,
				PlaylistName: "Family",
			}, progress)
		}()
		<-done
	})

	t.Run("missing seed", func(t *testing.T) {
		engine := NewRelativesEngine(newFakeCatalog(), nil)
		if _, err := engine.CreateRelativesPlaylist(ctx, RunOpts{}, nil); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("negative depth", func(t *testing.T) {
		engine := NewRelativesEngine(newFakeCatalog(), nil)
		opts := RunOpts{SeedArtist: "x", MaxDepth: -1}
		if _, err := engine.CreateRelativesPlaylist(ctx, opts, nil); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("ambiguous seed halts by default", func(t *testing.T) {
		fake := pipelineCatalog()
		fake.search["Alpha"] = []services.Artist{
			fake.artists["A"],
			{ID: "A2", Name: "Alpha", URI: "spotify:artist:A2"},
		}
		engine := NewRelativesEngine(fake, nil)

		_, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:   "Alpha",
			MaxDepth:     1,
			PlaylistName: "Family",
		}, nil)
		if !errors.Is(err, shared.ErrAmbiguousSelection) {
			t.Errorf("expected ErrAmbiguousSelection, got %v", err)
		}
	})

	t.Run("selector strategy resolves ambiguity", func(t *testing.T) {
		fake := pipelineCatalog()
		popular := fake.artists["A"]
		popular.Popularity = 95
		fake.artists["A"] = popular
		fake.search["Alpha"] = []services.Artist{
			{ID: "A2", Name: "Alpha", URI: "spotify:artist:A2", Popularity: 80},
			popular,
		}
		engine := NewRelativesEngine(fake, selector.MostPopular{})

		result, err := engine.CreateRelativesPlaylist(ctx, RunOpts{
			SeedArtist:   "Alpha",
			MaxDepth:     1,
			PlaylistName: "Family",
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ArtistID != "A" {
			t.Errorf("expected popularity winner A, got %s", result.ArtistID)
		}
	})
}
