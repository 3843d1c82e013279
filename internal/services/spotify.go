// Spotify API implementation of [CatalogService]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Auzzy/relative-artistry/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	artistURIPrefix = "spotify:artist:"
	trackURIPrefix  = "spotify:track:"

	// Spotify caps authenticated clients around 10 req/s; stay under it.
	requestsPerSecond = 8
)

type followers struct {
	Total int `json:"total"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID      string `json:"id"`
	Country string `json:"country"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URI        string    `json:"uri"`
	Popularity int       `json:"popularity"`
	Followers  followers `json:"followers"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	URI     string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Public       bool         `json:"public"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// SpotifyPaginatedAlbums represents a paginated response of artist albums.
type SpotifyPaginatedAlbums struct {
	Items  []SpotifyAlbum `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Next   *string        `json:"next"`
}

// SpotifyPaginatedTracks represents a paginated response of album tracks.
type SpotifyPaginatedTracks struct {
	Items  []SpotifyTrack `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Next   *string        `json:"next"`
}

// SpotifyPaginatedArtists represents the paginated artist portion of a search response.
type SpotifyPaginatedArtists struct {
	Items  []SpotifyArtist `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Next   *string         `json:"next"`
}

type searchResponse struct {
	Artists SpotifyPaginatedArtists `json:"artists"`
}

type relatedArtistsResponse struct {
	Artists []SpotifyArtist `json:"artists"`
}

var _ OAuthService = (*SpotifyService)(nil)

// SpotifyService implements the CatalogService interface for Spotify API interactions.
// Uses [oauth2] for authentication and paces requests with a [rate.Limiter].
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    spotifyBaseURL,
	}, nil
}

// Authenticate performs OAuth2 authentication with Spotify. Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		return s.AuthenticateToken(ctx, &oauth2.Token{
			AccessToken:  accessToken,
			RefreshToken: credentials["refresh_token"],
		})
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		return s.AuthenticateToken(ctx, token)
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// AuthenticateToken installs a previously obtained [oauth2.Token].
// The underlying client refreshes the token automatically when possible.
func (s *SpotifyService) AuthenticateToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", shared.ErrMissingCredentials)
	}
	s.token = token
	s.httpClient = s.config.Client(ctx, token)
	return nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig returns the service's OAuth2 configuration for callback handling.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// IsArtistURI reports whether the given string is a Spotify artist URI.
func IsArtistURI(s string) bool {
	return strings.HasPrefix(s, artistURIPrefix)
}

// artistID normalizes a bare ID or spotify:artist: URI to a bare ID.
func artistID(idOrURI string) string {
	return strings.TrimPrefix(idOrURI, artistURIPrefix)
}

// doRequest performs an authenticated, rate-limited HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	apiURL := s.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// CurrentUser retrieves the current authenticated user's profile.
func (s *SpotifyService) CurrentUser(ctx context.Context) (*User, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, "GET", "/me", nil, &user); err != nil {
		return nil, err
	}
	return &User{ID: user.ID, Country: user.Country}, nil
}

// SearchArtistsPage retrieves one page of an artist name search.
func (s *SpotifyService) SearchArtistsPage(ctx context.Context, name string, offset, limit int) (*ArtistPage, error) {
	endpoint := fmt.Sprintf("/search?q=%s&type=artist&limit=%d&offset=%d", url.QueryEscape(name), limit, offset)

	var response searchResponse
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	page := &ArtistPage{HasMore: response.Artists.Next != nil}
	for _, item := range response.Artists.Items {
		page.Items = append(page.Items, convertArtist(item))
	}
	return page, nil
}

// Artist retrieves a single artist by ID or spotify:artist: URI.
func (s *SpotifyService) Artist(ctx context.Context, idOrURI string) (*Artist, error) {
	endpoint := fmt.Sprintf("/artists/%s", artistID(idOrURI))

	var response SpotifyArtist
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	artist := convertArtist(response)
	return &artist, nil
}

// RelatedArtists retrieves the ordered IDs of the artists Spotify lists as related.
// Spotify caps the list at 20, so the response is never paginated.
func (s *SpotifyService) RelatedArtists(ctx context.Context, id string) ([]string, error) {
	endpoint := fmt.Sprintf("/artists/%s/related-artists", artistID(id))

	var response relatedArtistsResponse
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(response.Artists))
	for _, artist := range response.Artists {
		ids = append(ids, artist.ID)
	}
	return ids, nil
}

// ArtistAlbumsPage retrieves one page of an artist's full albums.
func (s *SpotifyService) ArtistAlbumsPage(ctx context.Context, id, market string, offset, limit int) (*AlbumPage, error) {
	endpoint := fmt.Sprintf("/artists/%s/albums?include_groups=album&limit=%d&offset=%d", artistID(id), limit, offset)
	if market != "" {
		endpoint += "&market=" + url.QueryEscape(market)
	}

	var response SpotifyPaginatedAlbums
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	page := &AlbumPage{HasMore: response.Next != nil}
	for _, item := range response.Items {
		album := Album{ID: item.ID, Name: item.Name}
		for _, artist := range item.Artists {
			album.ArtistIDs = append(album.ArtistIDs, artist.ID)
		}
		page.Items = append(page.Items, album)
	}
	return page, nil
}

// AlbumTracksPage retrieves one page of an album's tracks.
func (s *SpotifyService) AlbumTracksPage(ctx context.Context, albumID string, offset, limit int) (*TrackPage, error) {
	endpoint := fmt.Sprintf("/albums/%s/tracks?limit=%d&offset=%d", albumID, limit, offset)

	var response SpotifyPaginatedTracks
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	page := &TrackPage{HasMore: response.Next != nil}
	for _, item := range response.Items {
		page.Items = append(page.Items, Track{ID: item.ID, Name: item.Name})
	}
	return page, nil
}

// CreatePlaylist creates a playlist owned by the given user.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, userID, name string, public bool) (*Playlist, error) {
	endpoint := fmt.Sprintf("/users/%s/playlists", userID)
	body := map[string]any{
		"name":   name,
		"public": public,
	}

	var response SpotifyPlaylist
	if err := s.doRequest(ctx, "POST", endpoint, body, &response); err != nil {
		return nil, err
	}

	return &Playlist{
		ID:     response.ID,
		Name:   response.Name,
		URL:    response.ExternalURLs.Spotify,
		Public: response.Public,
	}, nil
}

// AddPlaylistTracks appends tracks to a playlist, preserving order.
// The caller must respect the service's 100-track-per-call write cap.
func (s *SpotifyService) AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)

	uris := make([]string, 0, len(trackIDs))
	for _, id := range trackIDs {
		uris = append(uris, trackURIPrefix+id)
	}

	return s.doRequest(ctx, "POST", endpoint, map[string]any{"uris": uris}, nil)
}

func convertArtist(a SpotifyArtist) Artist {
	return Artist{
		ID:         a.ID,
		Name:       a.Name,
		URI:        a.URI,
		Popularity: a.Popularity,
		Followers:  a.Followers.Total,
	}
}
