package main

import (
	"context"
	"fmt"

	"github.com/Flammans/artanova/internal/catalog"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/urfave/cli/v3"
)

// ExploreSearch runs a catalog search and prints the accumulated results.
//
// With --pages > 1 the engine keeps paginating until the requested number
// of pages has been applied or the catalog reports no further results.
func (r *Runner) ExploreSearch(ctx context.Context, cmd *cli.Command) error {
	query := catalog.Query{
		Search:    cmd.StringArg("query"),
		SortField: cmd.String("sort"),
		Types:     cmd.StringSlice("type"),
		Origins:   cmd.StringSlice("origin"),
	}

	r.logger.Info("searching catalog", "query", query.Search, "sort", query.SortField)

	if err := r.engine.ResetAndFetch(ctx, query); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	pages := int(cmd.Int("pages"))
	for page := 1; page < pages; page++ {
		if !r.engine.Snapshot().HasMore {
			break
		}
		if err := r.engine.FetchNextPage(ctx); err != nil {
			return fmt.Errorf("failed to fetch page %d: %w", page+1, err)
		}
	}

	snapshot := r.engine.Snapshot()
	r.cacheResults(snapshot)

	if cmd.Bool("json") {
		return r.writeJSON(snapshot.Artworks, cmd.Bool("pretty"))
	}

	if len(snapshot.Artworks) == 0 {
		return r.writePlain("No artworks found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Artworks (%d)", len(snapshot.Artworks)))
	for _, artwork := range snapshot.Artworks {
		detail := artwork.Type
		if artwork.Origin != "" {
			detail = fmt.Sprintf("%s, %s", detail, artwork.Origin)
		}
		r.writePlain("%6d  %s (%s)\n", artwork.ID, artwork.Title, detail)
	}
	if snapshot.HasMore {
		r.writePlain("\nMore results available; re-run with a higher --pages value.\n")
	}
	return nil
}

// ExploreFacets prints the available type and origin filters.
func (r *Runner) ExploreFacets(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("fetching filter facets")

	r.engine.FetchFilterFacets(ctx)
	snapshot := r.engine.Snapshot()

	if len(snapshot.Types) == 0 && len(snapshot.Origins) == 0 {
		return fmt.Errorf("%w: no facets available", shared.ErrServiceUnavailable)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"types":   snapshot.Types,
			"origins": snapshot.Origins,
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Types")
	for name, count := range snapshot.Types {
		r.writePlain("%6d  %s\n", count, name)
	}
	r.writePlainHeader("Origins")
	for name, count := range snapshot.Origins {
		r.writePlain("%6d  %s\n", count, name)
	}
	return nil
}

// ExploreShow prints a cached artwork's full metadata.
func (r *Runner) ExploreShow(ctx context.Context, cmd *cli.Command) error {
	id := int(cmd.IntArg("id"))
	if id <= 0 {
		return fmt.Errorf("%w: artwork id", shared.ErrMissingArgument)
	}

	artwork, err := r.artworks.Get(id)
	if err != nil {
		return fmt.Errorf("artwork not in cache, run 'artanova explore search' first: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(artwork, true)
	}

	r.writePlainHeader(artwork.Title)
	appendLine := func(label, value string) {
		if value != "" {
			r.writePlain("%-8s %s\n", label+":", value)
		}
	}
	appendLine("Type", artwork.Type)
	appendLine("Origin", artwork.Origin)
	appendLine("Artist", artwork.Artist)
	appendLine("Date", artwork.Date)
	appendLine("Medium", artwork.Medium)
	appendLine("Source", artwork.URL)
	if len(artwork.Images) > 0 {
		r.writePlain("%-8s %d\n", "Images:", len(artwork.Images))
	}
	return nil
}

// ExploreOpen opens a cached artwork's source page in the default browser.
func (r *Runner) ExploreOpen(ctx context.Context, cmd *cli.Command) error {
	id := int(cmd.IntArg("id"))
	if id <= 0 {
		return fmt.Errorf("%w: artwork id", shared.ErrMissingArgument)
	}

	artwork, err := r.artworks.Get(id)
	if err != nil {
		return fmt.Errorf("artwork not in cache, run 'artanova explore search' first: %w", err)
	}
	if artwork.URL == "" {
		return fmt.Errorf("%w: artwork %d has no source URL", shared.ErrNotFound, id)
	}

	r.logger.Info("opening artwork", "id", id, "url", artwork.URL)
	return shared.OpenBrowser(artwork.URL)
}

// cacheResults writes fetched artworks to the offline cache when enabled.
func (r *Runner) cacheResults(snapshot catalog.Snapshot) {
	if !r.config.Cache.Artworks || r.artworks == nil || len(snapshot.Artworks) == 0 {
		return
	}
	if err := r.artworks.UpsertAll(snapshot.Artworks); err != nil {
		r.logger.Warn("failed to cache artworks", "error", err)
	}
}
