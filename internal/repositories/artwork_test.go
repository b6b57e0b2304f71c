package repositories

import (
	"errors"
	"testing"

	"github.com/Flammans/artanova/internal/localstore"
	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/shared"
	tu "github.com/Flammans/artanova/internal/testing"
)

func newTestRepo(t *testing.T) *ArtworkRepository {
	t.Helper()

	db, err := localstore.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := localstore.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewArtworkRepository(db)
}

func TestArtworkRepository(t *testing.T) {
	sample := models.Artwork{
		ID:      42,
		Title:   "The Blue Vase",
		Type:    "painting",
		Origin:  "France",
		Artist:  "Paul Cézanne",
		Medium:  "oil on canvas",
		Preview: "https://img.example.com/42-small.jpg",
		Images:  []string{"https://img.example.com/42-1.jpg", "https://img.example.com/42-2.jpg"},
	}

	t.Run("Upsert And Get", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.Upsert(sample); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}

		got, err := repo.Get(42)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Title != sample.Title || got.Origin != sample.Origin {
			t.Errorf("unexpected artwork: %+v", got)
		}
		if len(got.Images) != 2 || got.Images[0] != sample.Images[0] {
			t.Errorf("images not round-tripped: %v", got.Images)
		}
	})

	t.Run("Upsert Replaces By ID", func(t *testing.T) {
		repo := newTestRepo(t)

		repo.Upsert(sample)
		updated := sample
		updated.Title = "The Blue Vase (restored)"
		if err := repo.Upsert(updated); err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected one row after re-upsert, got %d", count)
		}

		got, _ := repo.Get(42)
		if got.Title != "The Blue Vase (restored)" {
			t.Errorf("expected updated title, got %q", got.Title)
		}
	})

	t.Run("Upsert Rejects Invalid Artwork", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.Upsert(models.Artwork{ID: 0, Title: ""}); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("Get Missing Artwork", func(t *testing.T) {
		repo := newTestRepo(t)

		_, err := repo.Get(999)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpsertAll Deduplicates Overlapping Pages", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.UpsertAll(tu.ArtworkPage(1, 100)); err != nil {
			t.Fatalf("first batch failed: %v", err)
		}
		if err := repo.UpsertAll(tu.ArtworkPage(90, 150)); err != nil {
			t.Fatalf("overlapping batch failed: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 150 {
			t.Errorf("expected 150 unique cached artworks, got %d", count)
		}
	})

	t.Run("List Ordered By ID", func(t *testing.T) {
		repo := newTestRepo(t)

		repo.UpsertAll(tu.ArtworkPage(3, 5))
		repo.Upsert(models.Artwork{ID: 1, Title: "First"})

		artworks, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		tu.AssertArtworkIDs(t, artworks, []int{1, 3, 4, 5})
	})

	t.Run("Clear", func(t *testing.T) {
		repo := newTestRepo(t)

		repo.UpsertAll(tu.ArtworkPage(1, 10))
		if err := repo.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}

		count, _ := repo.Count()
		if count != 0 {
			t.Errorf("expected empty cache, got %d rows", count)
		}
	})
}
