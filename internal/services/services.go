// Interfaces and error types shared by consumers of the catalog client.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Flammans/artanova/internal/models"
)

// TokenSource supplies the bearer credential for authorized requests.
// Implementations must return the current token at call time; an empty
// string means unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to the [TokenSource] interface.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Catalog defines the read side of the artwork API consumed by the query engine.
type Catalog interface {
	// SearchArtworks fetches one page of artworks matching the given parameters.
	SearchArtworks(ctx context.Context, params SearchParams) ([]models.Artwork, error)

	// ArtworkTypes fetches the {type: count} facet map.
	ArtworkTypes(ctx context.Context) (models.FacetMap, error)

	// ArtworkOrigins fetches the {origin: count} facet map.
	ArtworkOrigins(ctx context.Context) (models.FacetMap, error)
}

// Authenticator defines the credential exchange operations used by the session store.
type Authenticator interface {
	// Login exchanges email and password for an authenticated session.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Join registers a new account and returns its authenticated session.
	Join(ctx context.Context, name, email, password string) (models.Session, error)
}

// CollectionAPI defines the collection read and mutation operations.
type CollectionAPI interface {
	Collections(ctx context.Context) ([]models.Collection, error)
	Collection(ctx context.Context, uuid string) (*models.Collection, error)
	CreateCollection(ctx context.Context, title string) (models.Collection, error)
	DeleteCollection(ctx context.Context, uuid string) error
	AddArtwork(ctx context.Context, uuid string, artworkID int) error
	RemoveArtwork(ctx context.Context, uuid string, artworkID int) error
}

// SearchParams are the wire-level inputs of a single artwork page request.
// Cursor is the id of the last already-fetched artwork; zero means first page.
type SearchParams struct {
	Search  string
	Sort    string
	Order   string
	Types   []string
	Origins []string
	Limit   int
	Cursor  int
}

// StatusError is a non-2xx response from the catalog API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("status %d", e.Code)
}

// StatusCode extracts a displayable HTTP-like status code from an error,
// defaulting to 500 for transport and decode failures.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 500
}

// IsCanceled reports whether err is the result of an aborted request.
// Cancellation is not an error: callers discard the response silently.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsNotFound reports whether err is a 404 from the catalog.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}
