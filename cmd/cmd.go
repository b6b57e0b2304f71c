// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles account authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the saved session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "join",
				Usage: "Create a new account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthJoin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the saved session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthStatus,
			},
		},
	}
}

// exploreCommand handles catalog browsing operations
func exploreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "explore",
		Aliases: []string{"ex"},
		Usage:   "Browse the artwork catalog",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search artworks with filters and sorting",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort field (updatedAt, yearFrom, yearTo)",
						Value: "updatedAt",
					},
					&cli.StringSliceFlag{
						Name:  "type",
						Usage: "Filter by artwork type (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "origin",
						Usage: "Filter by artwork origin (repeatable)",
					},
					&cli.IntFlag{
						Name:  "pages",
						Usage: "Number of result pages to fetch",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ExploreSearch,
			},
			{
				Name:  "facets",
				Usage: "Show available type and origin filters with counts",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.ExploreFacets,
			},
			{
				Name:  "show",
				Usage: "Show a cached artwork by id",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ExploreShow,
			},
			{
				Name:  "open",
				Usage: "Open a cached artwork's source page in the browser",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.ExploreOpen,
			},
		},
	}
}

// collectionsCommand handles collection management operations
func collectionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "collections",
		Aliases: []string{"col"},
		Usage:   "Manage artwork collections",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your collections",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Only show collections whose title contains this text",
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CollectionsList,
			},
			{
				Name:  "create",
				Usage: "Create a new collection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Action: r.CollectionsCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a collection you own",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uuid"},
				},
				Action: r.CollectionsDelete,
			},
			{
				Name:  "show",
				Usage: "Show a collection and its artworks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uuid"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CollectionsShow,
			},
			{
				Name:  "add",
				Usage: "Add an artwork to a collection",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "uuid",
						Usage:    "Target collection UUID",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "artwork",
						Aliases:  []string{"a"},
						Usage:    "Artwork id to add",
						Required: true,
					},
				},
				Action: r.CollectionsAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove an artwork from a collection",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "uuid",
						Usage:    "Target collection UUID",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "artwork",
						Aliases:  []string{"a"},
						Usage:    "Artwork id to remove",
						Required: true,
					},
				},
				Action: r.CollectionsRemove,
			},
			{
				Name:  "share",
				Usage: "Print a collection's share link",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uuid"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the share link in the browser",
					},
				},
				Action: r.CollectionsShare,
			},
			{
				Name:  "export",
				Usage: "Export a collection to a file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uuid"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv, markdown, txt, json)",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (base path for csv, directory for markdown)",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every collection concurrently into the output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers when using --all",
						Value: 4,
					},
				},
				Action: r.CollectionsExport,
			},
		},
	}
}

// cacheCommand handles the offline artwork cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the offline artwork cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached artworks",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CacheList,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached artworks",
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive gallery browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "gallery"},
		Usage:   "Launch the interactive gallery",
		Action:  r.TUI,
	}
}
