// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}

// authCommand handles the Spotify authorization lifecycle
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify catalog authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show current authorization state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Delete stored Spotify credentials",
				Action: r.AuthLogout,
			},
		},
	}
}

// extractCommand runs the full extraction pipeline against a reference
func extractCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Extract a set record from a video URL or pasted text",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "reference",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "from-text",
				Aliases: []string{"t"},
				Usage:   "Read a pasted tracklist from a file instead of a URL",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, csv, markdown, text",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to stdout)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "no-enrich",
				Usage: "Skip Spotify catalog enrichment",
			},
		},
		Action: r.Extract,
	}
}

// enrichCommand re-runs catalog enrichment over an existing record
func enrichCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "enrich",
		Usage: "Enrich an existing set record JSON with catalog audio features",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to stdout)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Enrich,
	}
}

// viewCommand launches the interactive tracklist viewer
func viewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Extract a set and browse the tracklist interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "reference",
			},
		},
		Action: r.View,
	}
}
