package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// CacheList lists artworks in the offline cache.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	if r.artworks == nil {
		return fmt.Errorf("artwork cache not initialized")
	}

	artworks, err := r.artworks.List()
	if err != nil {
		return fmt.Errorf("failed to list cached artworks: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(artworks, cmd.Bool("pretty"))
	}

	if len(artworks) == 0 {
		return r.writePlain("Cache is empty. Search the catalog to populate it.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Cached artworks (%d)", len(artworks)))
	for _, artwork := range artworks {
		r.writePlain("%6d  %s\n", artwork.ID, artwork.Title)
	}
	return nil
}

// CacheClear removes every cached artwork.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if r.artworks == nil {
		return fmt.Errorf("artwork cache not initialized")
	}

	count, err := r.artworks.Count()
	if err != nil {
		return fmt.Errorf("failed to count cached artworks: %w", err)
	}

	if err := r.artworks.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("cleared artwork cache", "removed", count)
	return r.writePlain("✓ Removed %d cached artworks\n", count)
}
