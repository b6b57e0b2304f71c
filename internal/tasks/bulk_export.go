package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Flammans/artanova/internal/formatter"
	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk collection exports.
type BulkExportOpts struct {
	Format     string                                     // Export format: json, csv, markdown, txt
	OutputDir  string                                     // Base output directory (default: artanova_export_{epoch})
	NumWorkers int                                        // Concurrent workers (default: 4)
	RateLimit  float64                                    // Requests per second against the API (default: 5)
	CoverURL   func(collection models.Collection) string // Optional cover image picker for markdown exports
}

// CollectionExportJob carries one fetched collection to a worker.
type CollectionExportJob struct {
	UUID       string
	Collection *models.Collection
}

// CollectionExportResult records the outcome of exporting a single collection.
type CollectionExportResult struct {
	UUID    string
	Title   string
	Success bool
	Files   []string
	Error   error
}

// BulkExportResult summarizes a full bulk export run.
type BulkExportResult struct {
	TotalCollections  int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []CollectionExportResult
}

// BulkExport exports multiple collections concurrently with rate limiting and
// progress tracking.
//
// Collections are fetched serially behind a rate limiter, then handed to a
// worker pool for file generation. Partial failures are recorded per
// collection rather than aborting the run, and a manifest file summarizing
// the results is written into the output directory.
func (e *ExportEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	uuids []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: collection API not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("artanova_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalCollections: len(uuids),
		OutputDirectory:  opts.OutputDir,
		Results:          make([]CollectionExportResult, 0, len(uuids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan CollectionExportJob, len(uuids))
	results := make(chan CollectionExportResult, len(uuids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		e.sendProgress(prog, fetchCollectionUpdate(1, len(uuids)))
		for i, uuid := range uuids {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			collection, err := e.api.Collection(ctx, uuid)
			if err != nil {
				results <- CollectionExportResult{
					UUID:    uuid,
					Title:   fmt.Sprintf("Unknown (%s)", uuid),
					Success: false,
					Error:   fmt.Errorf("failed to fetch collection: %w", err),
				}
				continue
			}

			jobs <- CollectionExportJob{UUID: uuid, Collection: collection}
			e.sendProgress(prog, exportCollectionUpdate(i+1, len(uuids), collection.Title))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(uuids), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(uuids), res.Title, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := e.writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker drains the jobs channel, writing each collection to disk.
func (e *ExportEngine) exportWorker(
	wg *sync.WaitGroup,
	jobs <-chan CollectionExportJob,
	results chan<- CollectionExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		results <- e.exportSingleCollection(job, opts)
	}
}

// exportSingleCollection exports one collection in the configured format.
func (e *ExportEngine) exportSingleCollection(j CollectionExportJob, opts BulkExportOpts) CollectionExportResult {
	result := CollectionExportResult{
		UUID:    j.UUID,
		Title:   j.Collection.Title,
		Success: false,
		Files:   []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.UUID)
		csvRes, err := formatter.WriteCSVExport(j.Collection, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.ArtworksFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown", "md":
		outputDir := filepath.Join(opts.OutputDir, j.UUID)

		var imageURL string
		if opts.CoverURL != nil {
			imageURL = opts.CoverURL(*j.Collection)
		}

		mdRes, err := formatter.WriteMarkdownExport(j.Collection, outputDir, imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt", "text":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_artworks.txt", j.UUID))
		written, err := formatter.WriteTextExport(j.Collection, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.UUID))
		data, err := shared.MarshalJSON(j.Collection, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

// manifestEntry is the per-collection record in the export manifest.
type manifestEntry struct {
	UUID    string   `json:"uuid"`
	Title   string   `json:"title"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type manifest struct {
	ExportedAt        string          `json:"exportedAt"`
	Format            string          `json:"format"`
	TotalCollections  int             `json:"totalCollections"`
	SuccessfulExports int             `json:"successfulExports"`
	FailedExports     int             `json:"failedExports"`
	Collections       []manifestEntry `json:"collections"`
}

func (e *ExportEngine) writeManifest(result *BulkExportResult, format, path string) error {
	m := manifest{
		ExportedAt:        time.Now().UTC().Format(time.RFC3339),
		Format:            format,
		TotalCollections:  result.TotalCollections,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		Collections:       make([]manifestEntry, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		entry := manifestEntry{
			UUID:    res.UUID,
			Title:   res.Title,
			Success: res.Success,
			Files:   res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Collections = append(m.Collections, entry)
	}

	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
