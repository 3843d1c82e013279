// package services defines interface CatalogService for interacting with the music catalog HTTP API
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// CatalogService defines the music catalog operations the playlist builder consumes.
//
// Implementations own transport concerns (auth, pacing); callers own traversal and
// aggregation logic. All methods block until the underlying request completes.
type CatalogService interface {
	// Authenticate performs OAuth or token authentication with the service.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context) (*User, error)

	// SearchArtistsPage retrieves one page of an artist name search.
	SearchArtistsPage(ctx context.Context, name string, offset, limit int) (*ArtistPage, error)

	// Artist retrieves a single artist by ID or URI.
	Artist(ctx context.Context, idOrURI string) (*Artist, error)

	// RelatedArtists retrieves the ordered artist IDs the catalog lists as related
	// to the given artist. The service returns a bounded list, never paginated.
	RelatedArtists(ctx context.Context, artistID string) ([]string, error)

	// ArtistAlbumsPage retrieves one page of an artist's albums, optionally
	// restricted to a market (ISO 3166-1 country code).
	ArtistAlbumsPage(ctx context.Context, artistID, market string, offset, limit int) (*AlbumPage, error)

	// AlbumTracksPage retrieves one page of an album's tracks.
	AlbumTracksPage(ctx context.Context, albumID string, offset, limit int) (*TrackPage, error)

	// CreatePlaylist creates a playlist owned by the given user.
	CreatePlaylist(ctx context.Context, userID, name string, public bool) (*Playlist, error)

	// AddPlaylistTracks appends tracks to a playlist in order. The caller must
	// keep len(trackIDs) within the service's per-call write cap.
	AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// Name returns the name of the service (e.g. "Spotify")
	Name() string
}

// OAuthService is a catalog service that authenticates through the OAuth2
// authorization code flow with a browser-driven callback.
type OAuthService interface {
	CatalogService

	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig returns the underlying OAuth2 configuration for callback handling.
	GetOAuthConfig() *oauth2.Config

	// AuthenticateToken installs a previously obtained token.
	AuthenticateToken(ctx context.Context, token *oauth2.Token) error
}

// User represents the authenticated catalog user.
type User struct {
	ID      string
	Country string
}

// Artist represents a catalog artist summary.
type Artist struct {
	ID         string
	Name       string
	URI        string
	Popularity int
	Followers  int
}

// Album represents a catalog album with its credited artist IDs.
type Album struct {
	ID        string
	Name      string
	ArtistIDs []string
}

// Track represents a catalog track.
type Track struct {
	ID   string
	Name string
}

// Playlist represents a created playlist.
type Playlist struct {
	ID     string
	Name   string
	URL    string
	Public bool
}

// ArtistPage is one page of an artist search result.
type ArtistPage struct {
	Items   []Artist
	HasMore bool
}

// AlbumPage is one page of an artist's album listing.
type AlbumPage struct {
	Items   []Album
	HasMore bool
}

// TrackPage is one page of an album's track listing.
type TrackPage struct {
	Items   []Track
	HasMore bool
}
