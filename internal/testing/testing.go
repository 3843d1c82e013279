// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"

	"github.com/Auzzy/relative-artistry/internal/services"
)

// MockService is a test double for [services.CatalogService]. Each method
// delegates to its function field when set and returns a zero value otherwise.
type MockService struct {
	AuthenticateFunc      func(ctx context.Context, credentials map[string]string) error
	CurrentUserFunc       func(ctx context.Context) (*services.User, error)
	SearchArtistsPageFunc func(ctx context.Context, name string, offset, limit int) (*services.ArtistPage, error)
	ArtistFunc            func(ctx context.Context, idOrURI string) (*services.Artist, error)
	RelatedArtistsFunc    func(ctx context.Context, artistID string) ([]string, error)
	ArtistAlbumsPageFunc  func(ctx context.Context, artistID, market string, offset, limit int) (*services.AlbumPage, error)
	AlbumTracksPageFunc   func(ctx context.Context, albumID string, offset, limit int) (*services.TrackPage, error)
	CreatePlaylistFunc    func(ctx context.Context, userID, name string, public bool) (*services.Playlist, error)
	AddPlaylistTracksFunc func(ctx context.Context, playlistID string, trackIDs []string) error
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, credentials)
	}
	return nil
}

func (m *MockService) CurrentUser(ctx context.Context) (*services.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return &services.User{ID: "mock-user"}, nil
}

func (m *MockService) SearchArtistsPage(ctx context.Context, name string, offset, limit int) (*services.ArtistPage, error) {
	if m.SearchArtistsPageFunc != nil {
		return m.SearchArtistsPageFunc(ctx, name, offset, limit)
	}
	return &services.ArtistPage{}, nil
}

func (m *MockService) Artist(ctx context.Context, idOrURI string) (*services.Artist, error) {
	if m.ArtistFunc != nil {
		return m.ArtistFunc(ctx, idOrURI)
	}
	return &services.Artist{ID: idOrURI}, nil
}

func (m *MockService) RelatedArtists(ctx context.Context, artistID string) ([]string, error) {
	if m.RelatedArtistsFunc != nil {
		return m.RelatedArtistsFunc(ctx, artistID)
	}
	return nil, nil
}

func (m *MockService) ArtistAlbumsPage(ctx context.Context, artistID, market string, offset, limit int) (*services.AlbumPage, error) {
	if m.ArtistAlbumsPageFunc != nil {
		return m.ArtistAlbumsPageFunc(ctx, artistID, market, offset, limit)
	}
	return &services.AlbumPage{}, nil
}

func (m *MockService) AlbumTracksPage(ctx context.Context, albumID string, offset, limit int) (*services.TrackPage, error) {
	if m.AlbumTracksPageFunc != nil {
		return m.AlbumTracksPageFunc(ctx, albumID, offset, limit)
	}
	return &services.TrackPage{}, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, userID, name string, public bool) (*services.Playlist, error) {
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, userID, name, public)
	}
	return &services.Playlist{ID: "mock-playlist", Name: name, Public: public}, nil
}

func (m *MockService) AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if m.AddPlaylistTracksFunc != nil {
		return m.AddPlaylistTracksFunc(ctx, playlistID, trackIDs)
	}
	return nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
