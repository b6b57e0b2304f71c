package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Flammans/artanova/internal/formatter"
	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/Flammans/artanova/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CollectionsList lists the current user's collections, optionally
// filtered by a title substring.
func (r *Runner) CollectionsList(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("listing collections")

	collections, err := r.collections.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if filter := cmd.String("filter"); filter != "" {
		filtered := collections[:0]
		for _, c := range collections {
			if strings.Contains(strings.ToLower(c.Title), strings.ToLower(filter)) {
				filtered = append(filtered, c)
			}
		}
		collections = filtered
	}

	if cmd.Bool("json") {
		return r.writeJSON(collections, cmd.Bool("pretty"))
	}

	if len(collections) == 0 {
		return r.writePlain("No collections found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Collections (%d)", len(collections)))
	for _, c := range collections {
		r.writePlain("%s  %s (%d artworks)\n", c.UUID, c.Title, len(c.Elements))
	}
	return nil
}

// CollectionsCreate creates a new collection.
func (r *Runner) CollectionsCreate(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")

	r.logger.Info("creating collection", "title", title)

	created, err := r.collections.Create(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return r.writePlain("✓ Created collection '%s' (%s)\n", created.Title, created.UUID)
}

// CollectionsDelete deletes a collection.
func (r *Runner) CollectionsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("uuid")
	if id == "" {
		return fmt.Errorf("%w: collection uuid", shared.ErrMissingArgument)
	}

	r.logger.Info("deleting collection", "uuid", id)

	if err := r.collections.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return r.writePlain("✓ Deleted collection %s\n", id)
}

// CollectionsShow fetches one collection and prints its artworks.
func (r *Runner) CollectionsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("uuid")
	if id == "" {
		return fmt.Errorf("%w: collection uuid", shared.ErrMissingArgument)
	}

	collection, err := r.collections.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch collection: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(collection, cmd.Bool("pretty"))
	}

	artworks := collection.Artworks()
	r.writePlainHeader(fmt.Sprintf("%s (%d artworks)", collection.Title, len(artworks)))
	for _, artwork := range artworks {
		r.writePlain("%6d  %s\n", artwork.ID, artwork.Title)
	}
	return nil
}

// CollectionsAdd adds an artwork to a collection.
func (r *Runner) CollectionsAdd(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("uuid")
	artworkID := int(cmd.Int("artwork"))

	r.logger.Info("adding artwork to collection", "uuid", id, "artwork", artworkID)

	if err := r.collections.AddArtwork(ctx, id, artworkID); err != nil {
		return fmt.Errorf("failed to add artwork: %w", err)
	}

	return r.writePlain("✓ Added artwork %d to collection %s\n", artworkID, id)
}

// CollectionsRemove removes an artwork from a collection.
func (r *Runner) CollectionsRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("uuid")
	artworkID := int(cmd.Int("artwork"))

	r.logger.Info("removing artwork from collection", "uuid", id, "artwork", artworkID)

	if err := r.collections.RemoveArtwork(ctx, id, artworkID); err != nil {
		return fmt.Errorf("failed to remove artwork: %w", err)
	}

	return r.writePlain("✓ Removed artwork %d from collection %s\n", artworkID, id)
}

// CollectionsShare prints the collection's public share link.
func (r *Runner) CollectionsShare(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("uuid")
	if id == "" {
		return fmt.Errorf("%w: collection uuid", shared.ErrMissingArgument)
	}

	url := fmt.Sprintf("%s/collections/%s", strings.TrimSuffix(r.config.API.WebURL, "/"), id)
	r.writePlain("%s\n", url)

	if cmd.Bool("open") {
		r.logger.Info("opening share link", "url", url)
		return shared.OpenBrowser(url)
	}
	return nil
}

// CollectionsExport writes a collection to disk in the requested format.
// With --all, every collection is exported concurrently instead.
func (r *Runner) CollectionsExport(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		return r.exportAllCollections(ctx, cmd)
	}

	id := cmd.StringArg("uuid")
	if id == "" {
		return fmt.Errorf("%w: collection uuid", shared.ErrMissingArgument)
	}

	collection, err := r.collections.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch collection: %w", err)
	}

	format := cmd.String("format")
	output := cmd.String("output")

	r.logger.Info("exporting collection", "uuid", id, "format", format)

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(&collection, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s and %s\n", result.ArtworksFile, result.MetadataFile)
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(&collection, output, coverURL(collection))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", result.Directory)
	case "txt", "text":
		path, err := formatter.WriteTextExport(&collection, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", path)
	case "json":
		return r.writeJSON(collection, true)
	default:
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// exportAllCollections runs a bulk export of the user's collections,
// streaming worker progress to the logger as it lands.
func (r *Runner) exportAllCollections(ctx context.Context, cmd *cli.Command) error {
	collections, err := r.collections.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	if len(collections) == 0 {
		return r.writePlain("No collections to export.\n")
	}

	uuids := make([]string, 0, len(collections))
	for _, collection := range collections {
		uuids = append(uuids, collection.UUID)
	}

	prog := make(chan tasks.ProgressUpdate, len(uuids)*2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.logger.Info(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
	}()

	engine := tasks.NewExportEngine(r.client)
	result, err := engine.BulkExport(ctx, prog, uuids, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		CoverURL:   coverURL,
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("Exported %d/%d collections", result.SuccessfulExports, result.TotalCollections))
	for _, res := range result.Results {
		if res.Success {
			r.writePlain("✓ %s (%d files)\n", res.Title, len(res.Files))
		} else {
			r.writePlain("✗ %s: %v\n", res.Title, res.Error)
		}
	}
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}

// coverURL picks the first artwork preview as the export cover image.
func coverURL(collection models.Collection) string {
	for _, artwork := range collection.Artworks() {
		if artwork.Preview != "" {
			return artwork.Preview
		}
	}
	return ""
}
