package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Flammans/artanova/internal/catalog"
	"github.com/Flammans/artanova/internal/collections"
	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/session"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GalleryView ViewState = iota
	DetailView
	CollectionPickView
)

// Model represents the TUI application state.
type Model struct {
	ctx            context.Context
	view           ViewState
	engine         *catalog.Engine
	manager        *collections.Manager
	session        *session.Store
	width          int
	height         int
	artworkList    list.Model
	collectionList list.Model
	searchInput    textinput.Model
	searching      bool
	selected       *models.Artwork
	status         string
	err            error
	help           help.Model
	keys           keyMap
}

type pageLoadedMsg struct {
	snapshot catalog.Snapshot
	err      error
}

type collectionsLoadedMsg struct {
	collections []models.Collection
	err         error
}

type artworkAddedMsg struct {
	title string
	err   error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *catalog.Engine, manager *collections.Manager, store *session.Store) *Model {
	input := textinput.New()
	input.Placeholder = "search artworks"
	input.CharLimit = 120

	artworkList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	artworkList.Title = "Artanova Gallery"
	artworkList.SetShowHelp(false)
	artworkList.SetFilteringEnabled(false)

	return &Model{
		ctx:         ctx,
		view:        GalleryView,
		engine:      engine,
		manager:     manager,
		session:     store,
		artworkList: artworkList,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init kicks off the first gallery page and the filter facets.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchFirstPage(catalog.Query{}), m.fetchFacets())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.artworkList.SetSize(msg.Width-4, msg.Height-8)
		m.collectionList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GalleryView:
			return m.handleGalleryKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case CollectionPickView:
			return m.handleCollectionPickKeys(msg)
		}

	case pageLoadedMsg:
		if msg.err != nil && !errors.Is(msg.err, shared.ErrStaleResponse) {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.applySnapshot(msg.snapshot)
		return m, nil

	case collectionsLoadedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Failed to load collections: %v", msg.err))
			m.view = GalleryView
			return m, nil
		}
		items := make([]list.Item, len(msg.collections))
		for i, c := range msg.collections {
			items[i] = collectionItem{collection: c}
		}
		m.collectionList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.collectionList.Title = "Add to collection"
		m.collectionList.SetShowHelp(false)
		m.view = CollectionPickView
		return m, nil

	case artworkAddedMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Failed to add artwork: %v", msg.err))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("Added to '%s'", msg.title))
		}
		m.view = GalleryView
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nSearch again with / or press q to quit", m.err)) + "\n\n" + m.searchView()
	}

	switch m.view {
	case GalleryView:
		return m.renderGallery()
	case DetailView:
		return m.renderDetail()
	case CollectionPickView:
		return m.renderCollectionPick()
	default:
		return ""
	}
}

func (m *Model) handleGalleryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			m.status = ""
			return m, m.fetchFirstPage(catalog.Query{Search: m.searchInput.Value(), SortField: "updatedAt"})
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.err = nil
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.artworkList.SelectedItem().(artworkItem); ok {
			artwork := item.artwork
			m.selected = &artwork
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		if item, ok := m.artworkList.SelectedItem().(artworkItem); ok {
			artwork := item.artwork
			m.selected = &artwork
			return m, m.loadCollections()
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		if item, ok := m.artworkList.SelectedItem().(artworkItem); ok {
			if err := shared.OpenBrowser(item.artwork.URL); err != nil {
				m.status = styles.err.Render(fmt.Sprintf("Failed to open browser: %v", err))
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.artworkList, cmd = m.artworkList.Update(msg)
	return m, tea.Batch(cmd, m.maybeFetchMore())
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = GalleryView
		return m, nil
	case key.Matches(msg, m.keys.add):
		return m, m.loadCollections()
	case key.Matches(msg, m.keys.open):
		if m.selected != nil {
			if err := shared.OpenBrowser(m.selected.URL); err != nil {
				m.status = styles.err.Render(fmt.Sprintf("Failed to open browser: %v", err))
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleCollectionPickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = GalleryView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.collectionList.SelectedItem().(collectionItem); ok && m.selected != nil {
			return m, m.addToCollection(item.collection, m.selected.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.collectionList, cmd = m.collectionList.Update(msg)
	return m, cmd
}

// applySnapshot rebuilds the gallery items from the engine's accumulator,
// keeping the cursor where it was.
func (m *Model) applySnapshot(snapshot catalog.Snapshot) {
	index := m.artworkList.Index()
	items := make([]list.Item, len(snapshot.Artworks))
	for i, artwork := range snapshot.Artworks {
		items[i] = artworkItem{artwork: artwork}
	}
	m.artworkList.SetItems(items)
	if index < len(items) {
		m.artworkList.Select(index)
	}

	title := "Artanova Gallery"
	if snapshot.Query.Search != "" {
		title = fmt.Sprintf("Artanova Gallery — %q", snapshot.Query.Search)
	}
	if snapshot.Phase == catalog.PhaseLoading {
		title += " (loading…)"
	}
	m.artworkList.Title = title
}

// maybeFetchMore reports the cursor position to the engine as a scroll
// measure. The engine applies its own threshold, throttle, and in-flight
// checks, so this is safe to call on every cursor move.
func (m *Model) maybeFetchMore() tea.Cmd {
	total := len(m.artworkList.Items())
	if total == 0 {
		return nil
	}

	perScreen := m.artworkList.Paginator.PerPage
	if perScreen <= 0 {
		perScreen = 1
	}
	screensFromBottom := float64(total-1-m.artworkList.Index()) / float64(perScreen)

	return func() tea.Msg {
		if !m.engine.ReportScroll(m.ctx, screensFromBottom) {
			return nil
		}
		return pageLoadedMsg{snapshot: m.engine.Snapshot()}
	}
}

func (m *Model) fetchFirstPage(query catalog.Query) tea.Cmd {
	return func() tea.Msg {
		err := m.engine.ResetAndFetch(m.ctx, query)
		return pageLoadedMsg{snapshot: m.engine.Snapshot(), err: err}
	}
}

func (m *Model) fetchFacets() tea.Cmd {
	return func() tea.Msg {
		m.engine.FetchFilterFacets(m.ctx)
		return pageLoadedMsg{snapshot: m.engine.Snapshot()}
	}
}

func (m *Model) loadCollections() tea.Cmd {
	if !m.session.IsAuthenticated() {
		m.status = styles.warn.Render("Log in to add artworks to collections")
		return nil
	}
	return func() tea.Msg {
		collections, err := m.manager.List(m.ctx)
		return collectionsLoadedMsg{collections: collections, err: err}
	}
}

func (m *Model) addToCollection(collection models.Collection, artworkID int) tea.Cmd {
	return func() tea.Msg {
		err := m.manager.AddArtwork(m.ctx, collection.UUID, artworkID)
		return artworkAddedMsg{title: collection.Title, err: err}
	}
}

func (m *Model) searchView() string {
	if !m.searching {
		return ""
	}
	return fmt.Sprintf("Search: %s", m.searchInput.View())
}

func (m *Model) renderGallery() string {
	var footer string
	if m.searching {
		footer = m.searchView()
	} else {
		helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.add, m.keys.open, m.keys.quit}
		footer = m.help.ShortHelpView(helpKeys)
	}

	status := m.status
	if status != "" {
		status += "\n"
	}

	return fmt.Sprintf("%s\n%s%s", m.artworkList.View(), status, footer)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		m.view = GalleryView
		return ""
	}

	artwork := m.selected
	title := styles.title.Render(artwork.Title)

	var info string
	appendLine := func(label, value string) {
		if value != "" {
			info += fmt.Sprintf("%s: %s\n", label, value)
		}
	}
	appendLine("Type", artwork.Type)
	appendLine("Origin", artwork.Origin)
	appendLine("Artist", artwork.Artist)
	appendLine("Date", artwork.Date)
	appendLine("Medium", artwork.Medium)
	appendLine("Source", artwork.URL)
	if len(artwork.Images) > 0 {
		info += fmt.Sprintf("Images: %d\n", len(artwork.Images))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.add, m.keys.open, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderCollectionPick() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.collectionList.View(), helpView)
}
