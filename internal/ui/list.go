package ui

import (
	"fmt"

	"github.com/Flammans/artanova/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = artworkItem{}
	_ list.Item = collectionItem{}
)

// artworkItem wraps [models.Artwork] to implement [list.Item].
type artworkItem struct {
	artwork models.Artwork
}

func (i artworkItem) FilterValue() string { return i.artwork.Title }
func (i artworkItem) Title() string       { return i.artwork.Title }
func (i artworkItem) Description() string {
	desc := i.artwork.Type
	if i.artwork.Origin != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.artwork.Origin)
	}
	if i.artwork.Artist != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.artwork.Artist)
	}
	return desc
}

// collectionItem wraps [models.Collection] to implement [list.Item].
type collectionItem struct {
	collection models.Collection
}

func (i collectionItem) FilterValue() string { return i.collection.Title }
func (i collectionItem) Title() string       { return i.collection.Title }
func (i collectionItem) Description() string {
	return fmt.Sprintf("%d artworks", len(i.collection.Elements))
}
