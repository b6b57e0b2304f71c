package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Flammans/artanova/internal/models"
)

type mockCollectionAPI struct {
	collections map[string]*models.Collection
	fetchErr    error
	fetchCalls  int
}

func (m *mockCollectionAPI) Collections(ctx context.Context) ([]models.Collection, error) {
	return nil, nil
}

func (m *mockCollectionAPI) Collection(ctx context.Context, uuid string) (*models.Collection, error) {
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if c, ok := m.collections[uuid]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("collection not found")
}

func (m *mockCollectionAPI) CreateCollection(ctx context.Context, title string) (models.Collection, error) {
	return models.Collection{}, nil
}

func (m *mockCollectionAPI) DeleteCollection(ctx context.Context, uuid string) error {
	return nil
}

func (m *mockCollectionAPI) AddArtwork(ctx context.Context, uuid string, artworkID int) error {
	return nil
}

func (m *mockCollectionAPI) RemoveArtwork(ctx context.Context, uuid string, artworkID int) error {
	return nil
}

const (
	uuidA = "0b7cb3e2-4f95-44a5-94b2-8c4f0d7a42b1"
	uuidB = "6e2d9c11-7a30-4a0f-a7a4-30a2f5d0e9cc"
)

func testCollections() map[string]*models.Collection {
	return map[string]*models.Collection{
		uuidA: {
			UUID:   uuidA,
			Title:  "Dutch Masters",
			UserID: 1,
			Elements: []models.Element{
				{ID: 1, Artwork: models.Artwork{ID: 42, Title: "Vase", Type: "painting", Origin: "Netherlands"}},
			},
		},
		uuidB: {
			UUID:   uuidB,
			Title:  "Bronzes",
			UserID: 1,
			Elements: []models.Element{
				{ID: 2, Artwork: models.Artwork{ID: 77, Title: "Horse", Type: "sculpture", Origin: "Greece"}},
			},
		},
	}
}

func TestBulkExport(t *testing.T) {
	t.Run("exports all collections as JSON with manifest", func(t *testing.T) {
		api := &mockCollectionAPI{collections: testCollections()}
		engine := NewExportEngine(api)
		dir := t.TempDir()

		result, err := engine.BulkExport(context.Background(), nil, []string{uuidA, uuidB}, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if result.TotalCollections != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("unexpected counts: %+v", result)
		}
		for _, uuid := range []string{uuidA, uuidB} {
			if _, err := os.Stat(filepath.Join(dir, uuid+".json")); err != nil {
				t.Errorf("expected export file for %s: %v", uuid, err)
			}
		}

		raw, err := os.ReadFile(result.ManifestPath)
		if err != nil {
			t.Fatalf("failed to read manifest: %v", err)
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("manifest is not valid JSON: %v", err)
		}
		if m["successfulExports"] != float64(2) {
			t.Errorf("manifest reports %v successful exports", m["successfulExports"])
		}
	})

	t.Run("exports CSV with metadata files", func(t *testing.T) {
		api := &mockCollectionAPI{collections: testCollections()}
		engine := NewExportEngine(api)
		dir := t.TempDir()

		result, err := engine.BulkExport(context.Background(), nil, []string{uuidA}, BulkExportOpts{
			Format:    "csv",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if len(result.Results) != 1 || len(result.Results[0].Files) != 2 {
			t.Fatalf("expected one result with two files, got %+v", result.Results)
		}
		for _, f := range result.Results[0].Files {
			if _, err := os.Stat(f); err != nil {
				t.Errorf("expected file %s: %v", f, err)
			}
		}
	})

	t.Run("records fetch failures without aborting", func(t *testing.T) {
		api := &mockCollectionAPI{collections: testCollections()}
		engine := NewExportEngine(api)
		dir := t.TempDir()

		missing := "f0000000-0000-4000-8000-000000000000"
		result, err := engine.BulkExport(context.Background(), nil, []string{uuidA, missing}, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("unexpected counts: successful=%d failed=%d", result.SuccessfulExports, result.FailedExports)
		}
		for _, res := range result.Results {
			if res.UUID == missing && res.Error == nil {
				t.Error("expected error recorded for missing collection")
			}
		}
	})

	t.Run("emits progress updates", func(t *testing.T) {
		api := &mockCollectionAPI{collections: testCollections()}
		engine := NewExportEngine(api)

		prog := make(chan ProgressUpdate, 32)
		_, err := engine.BulkExport(context.Background(), prog, []string{uuidA, uuidB}, BulkExportOpts{
			Format:    "json",
			OutputDir: t.TempDir(),
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}
		close(prog)

		phases := map[Phase]bool{}
		for update := range prog {
			phases[update.Phase] = true
		}
		if !phases[FetchCollection] || !phases[ExportCompleted] {
			t.Errorf("expected fetch and completion phases, saw %v", phases)
		}
	})

	t.Run("canceled context stops fetching", func(t *testing.T) {
		api := &mockCollectionAPI{collections: testCollections()}
		engine := NewExportEngine(api)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := engine.BulkExport(ctx, nil, []string{uuidA, uuidB}, BulkExportOpts{
			Format:    "json",
			OutputDir: t.TempDir(),
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("bulk export failed: %v", err)
		}
		if result.SuccessfulExports != 0 {
			t.Errorf("expected no exports after cancellation, got %d", result.SuccessfulExports)
		}
		if api.fetchCalls != 0 {
			t.Errorf("expected no fetches after cancellation, got %d", api.fetchCalls)
		}
	})

	t.Run("nil API rejected", func(t *testing.T) {
		engine := NewExportEngine(nil)
		if _, err := engine.BulkExport(context.Background(), nil, []string{uuidA}, BulkExportOpts{}); err == nil {
			t.Error("expected error for nil API")
		}
	})
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		FetchCollection:  "fetch_collection",
		ExportCollection: "export_collection",
		ExportCompleted:  "export_completed",
		ExportFailed:     "export_failed",
		Phase(99):        "unknown",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}

func TestSendProgress(t *testing.T) {
	engine := NewExportEngine(&mockCollectionAPI{})

	t.Run("nil channel is a no-op", func(t *testing.T) {
		engine.sendProgress(nil, ProgressUpdate{Phase: ExportCompleted})
	})

	t.Run("full channel does not block", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		ch <- ProgressUpdate{Phase: FetchCollection}
		engine.sendProgress(ch, ProgressUpdate{Phase: ExportCompleted})

		if got := <-ch; got.Phase != FetchCollection {
			t.Errorf("expected original update preserved, got %v", got.Phase)
		}
	})
}
