package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/Auzzy/relative-artistry/internal/selector"
	"github.com/Auzzy/relative-artistry/internal/shared"
	"github.com/Auzzy/relative-artistry/internal/tasks"
	"github.com/Auzzy/relative-artistry/internal/ui"
)

// Create builds one or more playlists from the seed artist's related-artist graph.
func (r *Runner) Create(ctx context.Context, cmd *cli.Command) error {
	seed := cmd.StringArg("artist")
	if seed == "" {
		return fmt.Errorf("%w: artist name or URI", shared.ErrMissingArgument)
	}

	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	silent := cmd.Bool("silent")

	configPath := cmd.String("config")
	config := r.loadConfig(configPath)

	if r.service == nil {
		return fmt.Errorf("%w: Spotify credentials not configured; run: relative-artistry config init", shared.ErrServiceUnavailable)
	}

	token := config.Credentials.Spotify.Token()
	if token == nil {
		return fmt.Errorf("%w: no saved tokens; run: relative-artistry auth", shared.ErrNotAuthenticated)
	}
	credentials := map[string]string{
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
	}
	if err := r.service.Authenticate(ctx, credentials); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	sel, err := selector.New(cmd.String("search-selector"), ui.PickArtist)
	if err != nil {
		return err
	}

	maxDepth := int(cmd.Int("max-depth"))
	includeRoot := cmd.Bool("include-root")
	if maxDepth == 0 {
		// A depth-0 walk without the root would build an empty playlist.
		includeRoot = true
	}

	opts := tasks.RunOpts{
		SeedArtist:            seed,
		MaxDepth:              maxDepth,
		IncludeRoot:           includeRoot,
		Market:                cmd.String("country"),
		PlaylistName:          cmd.String("playlist-name"),
		ExcludeArtists:        cmd.StringSlice("exclude-artist"),
		ExcludeFromParent:     cmd.String("exclude-from-parent"),
		IncludeCollaborations: cmd.Bool("include-collaborations"),
		Public:                cmd.Bool("public"),
	}

	r.logger.Info("building playlist", "artist", seed, "depth", maxDepth)

	engine := tasks.NewRelativesEngine(r.service, sel)

	result, err := r.runEngine(ctx, engine, opts, silent)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, configPath, config); reauthed {
			if authErr != nil {
				return authErr
			}
			if result, err = r.runEngine(ctx, engine, opts, silent); err != nil {
				return err
			}
		} else {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("\n═══════════════════════════════════════\n")
	r.writePlain("Playlist Complete!\n")
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("Artist: %s (%s)\n", result.ArtistName, result.ArtistID)
	r.writePlain("Related artists: %d\n", len(result.Artists))
	r.writePlain("Tracks: %d\n", result.TrackCount)

	if len(result.Playlists) == 1 {
		r.writePlain("Playlist: %s\n", result.Playlists[0].URL)
	} else {
		r.writePlain("The tracks exceed the maximum playlist length, so they were split across %d playlists:\n", len(result.Playlists))
		for _, playlist := range result.Playlists {
			r.writePlain("  - %s: %s\n", playlist.Name, playlist.URL)
		}
	}

	return nil
}

// runEngine runs the pipeline with a progress consumer attached unless silenced.
func (r *Runner) runEngine(ctx context.Context, engine *tasks.RelativesEngine, opts tasks.RunOpts, silent bool) (*tasks.RunResult, error) {
	var progressCh chan tasks.ProgressUpdate
	done := make(chan struct{})

	if silent {
		close(done)
	} else {
		progressCh = make(chan tasks.ProgressUpdate, 50)
		go func() {
			defer close(done)
			for update := range progressCh {
				switch update.Phase {
				case tasks.ResolveArtist:
					r.writePlain("🔍 %s\n", update.Message)
				case tasks.DiscoverExclusions:
					r.writePlain("🚫 %s\n", update.Message)
				case tasks.GatherArtists:
					r.writePlain("🕸  %s\n", update.Message)
				case tasks.CollectTracks:
					r.writePlain("📥 %s\n", update.Message)
				case tasks.CreatePlaylists:
					r.writePlain("📝 %s\n", update.Message)
				}
			}
		}()
	}

	result, err := engine.CreateRelativesPlaylist(ctx, opts, progressCh)
	if progressCh != nil {
		close(progressCh)
	}
	<-done

	return result, err
}
