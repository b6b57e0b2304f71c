// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the catalog:
//  1. [GalleryView] : Search and scroll the artwork gallery; scrolling near the bottom loads further pages
//  2. [DetailView] : Inspect a single artwork's metadata
//  3. [CollectionPickView] : Choose a collection when saving an artwork
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Page fetches run as commands against the catalog engine; the engine's own generation
// checks guarantee that a stale page never lands in the gallery.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, a, o, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
