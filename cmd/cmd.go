// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Auzzy/relative-artistry/internal/selector"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// authCommand handles the OAuth2 login flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Spotify using OAuth2",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Auth,
	}
}

// createCommand builds the related-artist playlist
func createCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"relatives"},
		Usage:     "Build a playlist from an artist's related-artist graph",
		ArgsUsage: "<artist name or spotify:artist: URI>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "artist"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "max-depth",
				Aliases: []string{"d"},
				Usage:   "Levels of related artists to include (0 = seed artist only)",
				Value:   r.config.Defaults.MaxDepth,
			},
			&cli.BoolFlag{
				Name:  "include-root",
				Usage: "Include the seed artist's own tracks (implied at depth 0)",
			},
			&cli.StringFlag{
				Name:    "playlist-name",
				Aliases: []string{"n"},
				Usage:   "Playlist name; <artist> expands to the seed artist's name",
				Value:   r.config.Defaults.PlaylistName,
			},
			&cli.StringFlag{
				Name:  "search-selector",
				Usage: "How to settle an ambiguous artist name (" + strings.Join(selector.Names(), ", ") + ")",
				Value: r.config.Defaults.SearchSelector,
			},
			&cli.StringSliceFlag{
				Name:    "exclude-artist",
				Aliases: []string{"e"},
				Usage:   "Artist (name or URI) to leave out of the walk; repeatable",
			},
			&cli.StringFlag{
				Name:  "exclude-from-parent",
				Usage: "Exclude every artist found walking from this artist down to the seed",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Market (ISO country code) for album listings; defaults to your profile country",
				Value: r.config.Defaults.Country,
			},
			&cli.BoolFlag{
				Name:  "include-collaborations",
				Usage: "Keep albums credited to more than one artist",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Create public playlists instead of private",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run result as JSON",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "silent",
				Aliases: []string{"s"},
				Usage:   "Suppress progress output",
			},
		},
		Action: r.Create,
	}
}

// configCommand handles configuration file management
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a starter config.toml",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
		},
	}
}
