package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Artwork represents a single catalog item as returned by the Artanova API.
//
// Artworks are read-only projections of server state; the numeric ID is the
// stable identifier used both as pagination cursor and as dedup key.
type Artwork struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	URL     string   `json:"url"`
	Date    string   `json:"date,omitempty"`
	Artist  string   `json:"artist,omitempty"`
	Origin  string   `json:"origin,omitempty"`
	Medium  string   `json:"medium,omitempty"`
	Preview string   `json:"preview"`
	Images  []string `json:"images"`
}

// Validate checks the invariants the catalog guarantees for every artwork.
func (a Artwork) Validate() error {
	if a.ID <= 0 {
		return fmt.Errorf("artwork id must be positive, got %d", a.ID)
	}
	if a.Title == "" {
		return fmt.Errorf("artwork %d has no title", a.ID)
	}
	return nil
}

// Element is a membership row inside a collection: the row id plus the artwork it references.
type Element struct {
	ID      int     `json:"id"`
	Artwork Artwork `json:"artwork"`
}

// Collection is a server-owned, user-curated grouping of artworks.
type Collection struct {
	UUID     string    `json:"uuid"`
	Title    string    `json:"title"`
	UserID   int       `json:"userId"`
	Elements []Element `json:"elements,omitempty"`
}

// Validate checks that the collection carries a well-formed UUID and a title.
func (c Collection) Validate() error {
	if _, err := uuid.Parse(c.UUID); err != nil {
		return fmt.Errorf("collection has malformed uuid %q: %w", c.UUID, err)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("collection %s has empty title", c.UUID)
	}
	return nil
}

// Artworks flattens the collection's elements into the artworks they reference.
func (c Collection) Artworks() []Artwork {
	artworks := make([]Artwork, 0, len(c.Elements))
	for _, el := range c.Elements {
		artworks = append(artworks, el.Artwork)
	}
	return artworks
}

// FacetMap holds counts of artworks per distinct value of a filterable
// attribute (type or origin), used to populate filter choices.
type FacetMap map[string]int

// Session is the client-side authenticated identity. The token is non-empty
// if and only if the user is authenticated; identity fields are set and
// cleared together, never partially.
type Session struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Authenticated reports whether the session carries a bearer credential.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Validate rejects sessions that violate the all-or-nothing invariant:
// a token without identity fields, or identity fields without a token.
func (s Session) Validate() error {
	if s.Token == "" {
		if s.Name != "" || s.Email != "" {
			return fmt.Errorf("session has identity fields without a token")
		}
		return nil
	}
	if s.Name == "" || s.Email == "" {
		return fmt.Errorf("authenticated session is missing identity fields")
	}
	return nil
}
