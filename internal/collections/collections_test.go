package collections

import (
	"context"
	"errors"
	"testing"

	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/services"
	"github.com/Flammans/artanova/internal/shared"
)

var _ services.CollectionAPI = (*fakeAPI)(nil)

const testUUID = "7f4df2a3-93c2-4b84-a0cd-6a69f691fc21"

// fakeAPI records calls and returns canned collections.
type fakeAPI struct {
	collections []models.Collection
	listErr     error
	calls       []string
}

func (f *fakeAPI) Collections(ctx context.Context) ([]models.Collection, error) {
	f.calls = append(f.calls, "list")
	return f.collections, f.listErr
}

func (f *fakeAPI) Collection(ctx context.Context, id string) (*models.Collection, error) {
	f.calls = append(f.calls, "get "+id)
	for _, c := range f.collections {
		if c.UUID == id {
			collection := c
			return &collection, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAPI) CreateCollection(ctx context.Context, title string) (models.Collection, error) {
	f.calls = append(f.calls, "create "+title)
	created := models.Collection{UUID: testUUID, Title: title, UserID: 7}
	f.collections = append(f.collections, created)
	return created, nil
}

func (f *fakeAPI) DeleteCollection(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete "+id)
	return nil
}

func (f *fakeAPI) AddArtwork(ctx context.Context, id string, artworkID int) error {
	f.calls = append(f.calls, "add")
	return nil
}

func (f *fakeAPI) RemoveArtwork(ctx context.Context, id string, artworkID int) error {
	f.calls = append(f.calls, "remove")
	return nil
}

// fakeAuth is a fixed session state.
type fakeAuth struct {
	session models.Session
}

func (a *fakeAuth) IsAuthenticated() bool   { return a.session.Authenticated() }
func (a *fakeAuth) Current() models.Session { return a.session }

var loggedIn = &fakeAuth{session: models.Session{ID: 7, Name: "Ada", Email: "ada@example.com", Token: "tok"}}

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("Unauthenticated Calls Never Dispatch", func(t *testing.T) {
		api := &fakeAPI{}
		m := NewManager(api, &fakeAuth{}, nil)

		if _, err := m.List(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("list: expected ErrNotAuthenticated, got %v", err)
		}
		if _, err := m.Create(ctx, "Renaissance"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("create: expected ErrNotAuthenticated, got %v", err)
		}
		if err := m.Delete(ctx, testUUID); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("delete: expected ErrNotAuthenticated, got %v", err)
		}
		if err := m.AddArtwork(ctx, testUUID, 1); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("add: expected ErrNotAuthenticated, got %v", err)
		}
		if err := m.RemoveArtwork(ctx, testUUID, 1); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("remove: expected ErrNotAuthenticated, got %v", err)
		}

		if len(api.calls) != 0 {
			t.Errorf("expected no HTTP calls, got %v", api.calls)
		}
	})

	t.Run("List Replaces Cache", func(t *testing.T) {
		api := &fakeAPI{collections: []models.Collection{{UUID: testUUID, Title: "Old Masters", UserID: 7}}}
		m := NewManager(api, loggedIn, nil)

		var notified [][]models.Collection
		m.Subscribe(func(cs []models.Collection) { notified = append(notified, cs) })

		got, err := m.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Old Masters" {
			t.Errorf("unexpected collections: %v", got)
		}
		if len(m.Cached()) != 1 {
			t.Errorf("expected cache replaced, got %v", m.Cached())
		}
		if len(notified) != 1 {
			t.Errorf("expected one notification, got %d", len(notified))
		}
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("Blank Title Rejected Locally", func(t *testing.T) {
			api := &fakeAPI{}
			m := NewManager(api, loggedIn, nil)

			if _, err := m.Create(ctx, "   "); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if len(api.calls) != 0 {
				t.Errorf("expected no HTTP calls, got %v", api.calls)
			}
		})

		t.Run("Trims Title And Refreshes", func(t *testing.T) {
			api := &fakeAPI{}
			m := NewManager(api, loggedIn, nil)

			created, err := m.Create(ctx, "  Renaissance  ")
			if err != nil {
				t.Fatalf("create failed: %v", err)
			}
			if created.Title != "Renaissance" {
				t.Errorf("expected trimmed title, got %q", created.Title)
			}

			want := []string{"create Renaissance", "list"}
			if len(api.calls) != 2 || api.calls[0] != want[0] || api.calls[1] != want[1] {
				t.Errorf("expected create followed by list, got %v", api.calls)
			}
			if len(m.Cached()) != 1 {
				t.Error("expected cache refreshed after create")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("Rejects Malformed UUID", func(t *testing.T) {
			api := &fakeAPI{}
			m := NewManager(api, loggedIn, nil)

			if err := m.Delete(ctx, "not-a-uuid"); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if len(api.calls) != 0 {
				t.Errorf("expected no HTTP calls, got %v", api.calls)
			}
		})

		t.Run("Deletes And Refreshes", func(t *testing.T) {
			api := &fakeAPI{}
			m := NewManager(api, loggedIn, nil)

			if err := m.Delete(ctx, testUUID); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			want := []string{"delete " + testUUID, "list"}
			if len(api.calls) != 2 || api.calls[0] != want[0] || api.calls[1] != want[1] {
				t.Errorf("expected delete followed by list, got %v", api.calls)
			}
		})
	})

	t.Run("Membership", func(t *testing.T) {
		t.Run("Rejects Non-Positive Artwork ID", func(t *testing.T) {
			api := &fakeAPI{}
			m := NewManager(api, loggedIn, nil)

			if err := m.AddArtwork(ctx, testUUID, 0); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if err := m.RemoveArtwork(ctx, testUUID, -1); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if len(api.calls) != 0 {
				t.Errorf("expected no HTTP calls, got %v", api.calls)
			}
		})

		t.Run("Dispatches Valid Calls", func(t *testing.T) {
			api := &fakeAPI{}
			m := NewManager(api, loggedIn, nil)

			if err := m.AddArtwork(ctx, testUUID, 42); err != nil {
				t.Fatalf("add failed: %v", err)
			}
			if err := m.RemoveArtwork(ctx, testUUID, 42); err != nil {
				t.Fatalf("remove failed: %v", err)
			}
			if len(api.calls) != 2 || api.calls[0] != "add" || api.calls[1] != "remove" {
				t.Errorf("unexpected calls: %v", api.calls)
			}
		})
	})

	t.Run("Get Requires No Authentication", func(t *testing.T) {
		api := &fakeAPI{collections: []models.Collection{{UUID: testUUID, Title: "Shared", UserID: 9}}}
		m := NewManager(api, &fakeAuth{}, nil)

		got, err := m.Get(ctx, testUUID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Title != "Shared" {
			t.Errorf("unexpected collection: %+v", got)
		}
	})
}
