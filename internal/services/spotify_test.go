package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Auzzy/relative-artistry/internal/shared"
	"golang.org/x/oauth2"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*SpotifyService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewSpotifyService(map[string]string{
		"client_id":     "test-client",
		"client_secret": "test-secret",
		"redirect_uri":  "http://localhost:8080/callback",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	service.baseURL = server.URL
	service.token = &oauth2.Token{AccessToken: "test-token"}
	service.httpClient = server.Client()

	return service, server
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("requires client id", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("requires client secret", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_id": "c"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("defaults redirect uri", func(t *testing.T) {
		service, err := NewSpotifyService(map[string]string{
			"client_id":     "c",
			"client_secret": "s",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if service.config.RedirectURL != "http://localhost:8080/callback" {
			t.Errorf("unexpected redirect URL: %s", service.config.RedirectURL)
		}
	})
}

func TestSpotifyServiceAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("requires token before requests", func(t *testing.T) {
		service, err := NewSpotifyService(map[string]string{
			"client_id":     "c",
			"client_secret": "s",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := service.CurrentUser(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("accepts access token credentials", func(t *testing.T) {
		service, err := NewSpotifyService(map[string]string{
			"client_id":     "c",
			"client_secret": "s",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := service.Authenticate(ctx, map[string]string{"access_token": "tok"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if service.token.AccessToken != "tok" {
			t.Errorf("token not installed")
		}
	})

	t.Run("rejects empty credentials", func(t *testing.T) {
		service, err := NewSpotifyService(map[string]string{
			"client_id":     "c",
			"client_secret": "s",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := service.Authenticate(ctx, map[string]string{}); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestSpotifyServiceRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("current user", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("unexpected auth header: %s", got)
			}
			json.NewEncoder(w).Encode(SpotifyUser{ID: "user1", Country: "US"})
		})

		user, err := service.CurrentUser(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "user1" || user.Country != "US" {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("unauthorized maps to token expired", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		if _, err := service.CurrentUser(ctx); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("server error maps to api request error", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		if _, err := service.CurrentUser(ctx); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("search artists page", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("q") != "Daft Punk" || q.Get("type") != "artist" {
				t.Errorf("unexpected query: %s", r.URL.RawQuery)
			}
			if q.Get("offset") != "50" || q.Get("limit") != "50" {
				t.Errorf("unexpected paging: %s", r.URL.RawQuery)
			}
			next := "https://example.com/next"
			json.NewEncoder(w).Encode(searchResponse{Artists: SpotifyPaginatedArtists{
				Items: []SpotifyArtist{{ID: "a1", Name: "Daft Punk", URI: "spotify:artist:a1", Popularity: 88, Followers: followers{Total: 1000}}},
				Next:  &next,
			}})
		})

		page, err := service.SearchArtistsPage(ctx, "Daft Punk", 50, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !page.HasMore {
			t.Error("expected HasMore")
		}
		if len(page.Items) != 1 || page.Items[0].Followers != 1000 {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("artist accepts uri", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/artists/a1" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(SpotifyArtist{ID: "a1", Name: "Daft Punk", URI: "spotify:artist:a1"})
		})

		artist, err := service.Artist(ctx, "spotify:artist:a1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if artist.ID != "a1" {
			t.Errorf("unexpected artist: %+v", artist)
		}
	})

	t.Run("related artists", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/artists/a1/related-artists" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(relatedArtistsResponse{Artists: []SpotifyArtist{
				{ID: "b1"}, {ID: "b2"},
			}})
		})

		ids, err := service.RelatedArtists(ctx, "a1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ids) != 2 || ids[0] != "b1" || ids[1] != "b2" {
			t.Errorf("unexpected ids: %v", ids)
		}
	})

	t.Run("artist albums page", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/artists/a1/albums" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("include_groups") != "album" {
				t.Errorf("expected album group filter, got %s", r.URL.RawQuery)
			}
			if q.Get("market") != "US" {
				t.Errorf("expected market, got %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode(SpotifyPaginatedAlbums{Items: []SpotifyAlbum{
				{ID: "al1", Name: "Discovery", Artists: []SpotifyArtist{{ID: "a1"}}},
			}})
		})

		page, err := service.ArtistAlbumsPage(ctx, "a1", "US", 0, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.HasMore {
			t.Error("expected final page")
		}
		if len(page.Items) != 1 || page.Items[0].ArtistIDs[0] != "a1" {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("artist albums omits empty market", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.URL.Query()["market"]; ok {
				t.Errorf("market should be omitted: %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode(SpotifyPaginatedAlbums{})
		})

		if _, err := service.ArtistAlbumsPage(ctx, "a1", "", 0, 50); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("album tracks page", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/albums/al1/tracks" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(SpotifyPaginatedTracks{Items: []SpotifyTrack{
				{ID: "t1", Name: "One More Time"},
			}})
		})

		page, err := service.AlbumTracksPage(ctx, "al1", 0, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].ID != "t1" {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("create playlist", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" || r.URL.Path != "/users/user1/playlists" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["name"] != "My Playlist" {
				t.Errorf("unexpected name: %v", body["name"])
			}
			if body["public"] != false {
				t.Errorf("expected private playlist, got %v", body["public"])
			}
			json.NewEncoder(w).Encode(SpotifyPlaylist{
				ID:           "p1",
				Name:         "My Playlist",
				ExternalURLs: externalURLs{Spotify: "https://open.spotify.com/playlist/p1"},
			})
		})

		playlist, err := service.CreatePlaylist(ctx, "user1", "My Playlist", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if playlist.ID != "p1" || playlist.URL == "" {
			t.Errorf("unexpected playlist: %+v", playlist)
		}
	})

	t.Run("add playlist tracks sends uris", func(t *testing.T) {
		service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" || r.URL.Path != "/playlists/p1/tracks" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			var body struct {
				URIs []string `json:"uris"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if len(body.URIs) != 2 || !strings.HasPrefix(body.URIs[0], "spotify:track:") {
				t.Errorf("unexpected uris: %v", body.URIs)
			}
			w.WriteHeader(http.StatusCreated)
		})

		if err := service.AddPlaylistTracks(ctx, "p1", []string{"t1", "t2"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestIsArtistURI(t *testing.T) {
	if !IsArtistURI("spotify:artist:a1") {
		t.Error("expected artist URI to match")
	}
	if IsArtistURI("a1") {
		t.Error("bare ID should not match")
	}
	if IsArtistURI("spotify:track:t1") {
		t.Error("track URI should not match")
	}
}
