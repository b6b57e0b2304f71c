// package catalog implements the query engine over the artwork catalog.
//
// The engine turns a declarative [Query] into cursor-paginated fetches,
// accumulating a deduplicated result list. Every qualifying request
// carries a generation number: issuing a new request cancels the prior
// one, and a response whose generation no longer matches is discarded
// without touching state. Consumers read state via [Engine.Snapshot] or
// a subscription and drive pagination through [Engine.ReportScroll].
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/services"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// PageSize is the fixed number of records requested per page.
const PageSize = 100

// scrollThresholdScreens is the remaining-scroll distance, measured in
// viewport heights, below which the next page is requested.
const scrollThresholdScreens = 2.0

// scrollThrottleInterval bounds how often scroll reports are processed.
const scrollThrottleInterval = 100 * time.Millisecond

// Phase describes where the engine is in the fetch lifecycle for the
// active query configuration.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseErrored:
		return "errored"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Query is the declarative configuration a fetch sequence runs under.
//
// Sort order is not part of the configuration: it is a fixed policy
// derived from the sort field, see [Query.Order].
type Query struct {
	Search    string
	SortField string
	Types     []string
	Origins   []string
}

// Order returns the sort order paired with the query's sort field.
// updatedAt and yearTo sort descending, yearFrom ascending.
func (q Query) Order() string {
	switch q.SortField {
	case "updatedAt", "yearTo":
		return "desc"
	case "yearFrom":
		return "asc"
	default:
		return ""
	}
}

// Snapshot is a point-in-time copy of the engine's observable state.
type Snapshot struct {
	Query    Query
	Artworks []models.Artwork
	Phase    Phase
	HasMore  bool
	Err      error
	ErrCode  int
	Types    models.FacetMap
	Origins  models.FacetMap
}

// Engine accumulates paginated catalog results for the active query.
type Engine struct {
	catalog  services.Catalog
	logger   *log.Logger
	throttle *rate.Limiter

	mu         sync.Mutex
	query      Query
	artworks   []models.Artwork
	seen       map[int]bool
	phase      Phase
	hasMore    bool
	err        error
	errCode    int
	types      models.FacetMap
	origins    models.FacetMap
	generation uint64
	cancel     context.CancelFunc
	inFlight   bool
	watchers   []func(Snapshot)
}

// NewEngine creates an Engine over the given catalog service.
// A nil logger falls back to the default logger.
func NewEngine(catalog services.Catalog, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		catalog:  catalog,
		logger:   logger,
		throttle: rate.NewLimiter(rate.Every(scrollThrottleInterval), 1),
		seen:     make(map[int]bool),
	}
}

// ResetAndFetch replaces the active query, clears the accumulator, and
// fetches the first page. Any in-flight request is canceled and its
// eventual response discarded.
func (e *Engine) ResetAndFetch(ctx context.Context, query Query) error {
	e.mu.Lock()
	gen, fetchCtx := e.beginLocked(ctx)
	e.query = query
	e.artworks = nil
	e.seen = make(map[int]bool)
	e.hasMore = false
	e.err = nil
	e.errCode = 0
	e.phase = PhaseLoading
	params := e.paramsLocked(0)
	e.mu.Unlock()
	e.notify()

	page, err := e.catalog.SearchArtworks(fetchCtx, params)
	return e.commit(gen, page, err)
}

// FetchNextPage fetches the page after the last accumulated artwork.
//
// It is a no-op when there is nothing more to fetch, a request is
// already in flight, or the engine is errored; an errored configuration
// is only left by a new ResetAndFetch.
func (e *Engine) FetchNextPage(ctx context.Context) error {
	e.mu.Lock()
	if !e.hasMore || e.inFlight || e.phase == PhaseErrored {
		e.mu.Unlock()
		return nil
	}
	gen, fetchCtx := e.beginLocked(ctx)
	cursor := e.artworks[len(e.artworks)-1].ID
	e.phase = PhaseLoading
	params := e.paramsLocked(cursor)
	e.mu.Unlock()
	e.notify()

	page, err := e.catalog.SearchArtworks(fetchCtx, params)
	return e.commit(gen, page, err)
}

// ReportScroll feeds the engine a scroll position, measured as screens
// remaining until the bottom of the rendered results.
//
// The condition is level-triggered: every report re-evaluates it, and
// the next page is fetched whenever the position is within the
// threshold, more results exist, and no request is in flight. Reports
// are throttled; a discarded report returns false without side effects.
func (e *Engine) ReportScroll(ctx context.Context, screensFromBottom float64) bool {
	if !e.throttle.Allow() {
		return false
	}
	if screensFromBottom > scrollThresholdScreens {
		return false
	}

	e.mu.Lock()
	ready := e.hasMore && !e.inFlight && e.phase != PhaseErrored
	e.mu.Unlock()
	if !ready {
		return false
	}

	if err := e.FetchNextPage(ctx); err != nil {
		e.logger.Warn("scroll-triggered fetch failed", "error", err)
	}
	return true
}

// FetchFilterFacets refreshes the type and origin facet maps.
//
// The two lookups are independent and non-fatal: a failed lookup is
// logged and leaves the prior map unchanged.
func (e *Engine) FetchFilterFacets(ctx context.Context) {
	types, err := e.catalog.ArtworkTypes(ctx)
	if err != nil {
		e.logger.Warn("failed to fetch type facets", "error", err)
		types = nil
	}

	origins, err := e.catalog.ArtworkOrigins(ctx)
	if err != nil {
		e.logger.Warn("failed to fetch origin facets", "error", err)
		origins = nil
	}

	e.mu.Lock()
	if types != nil {
		e.types = types
	}
	if origins != nil {
		e.origins = origins
	}
	e.mu.Unlock()
	e.notify()
}

// Snapshot returns a copy of the engine's observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn to be called with a fresh snapshot after every
// state change.
func (e *Engine) Subscribe(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.watchers = append(e.watchers, fn)
}

// beginLocked starts a new request generation: the previous in-flight
// request is canceled and a derived context for the new one is returned.
func (e *Engine) beginLocked(ctx context.Context) (uint64, context.Context) {
	if e.cancel != nil {
		e.cancel()
	}
	e.generation++
	fetchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.inFlight = true
	return e.generation, fetchCtx
}

// paramsLocked builds the request parameters for the active query.
// A zero cursor means the first page; the client omits it from the URL.
func (e *Engine) paramsLocked(cursor int) services.SearchParams {
	return services.SearchParams{
		Search:  e.query.Search,
		Sort:    e.query.SortField,
		Order:   e.query.Order(),
		Types:   e.query.Types,
		Origins: e.query.Origins,
		Limit:   PageSize,
		Cursor:  cursor,
	}
}

// commit applies a completed request's outcome to state, unless the
// request's generation has been superseded.
func (e *Engine) commit(gen uint64, page []models.Artwork, err error) error {
	e.mu.Lock()
	if gen != e.generation {
		e.mu.Unlock()
		return shared.ErrStaleResponse
	}
	e.inFlight = false

	if err != nil {
		if services.IsCanceled(err) {
			// Superseded requests are caught above; reaching here means
			// the caller's own context was canceled. Not an error state.
			e.phase = PhaseIdle
			e.mu.Unlock()
			return err
		}
		e.phase = PhaseErrored
		e.err = err
		e.errCode = services.StatusCode(err)
		e.hasMore = false
		e.mu.Unlock()
		e.notify()
		return err
	}

	for _, artwork := range page {
		if e.seen[artwork.ID] {
			continue
		}
		e.seen[artwork.ID] = true
		e.artworks = append(e.artworks, artwork)
	}
	e.hasMore = len(page) == PageSize
	e.phase = PhaseLoaded
	e.err = nil
	e.errCode = 0
	e.mu.Unlock()
	e.notify()
	return nil
}

func (e *Engine) snapshotLocked() Snapshot {
	artworks := make([]models.Artwork, len(e.artworks))
	copy(artworks, e.artworks)
	return Snapshot{
		Query:    e.query,
		Artworks: artworks,
		Phase:    e.phase,
		HasMore:  e.hasMore,
		Err:      e.err,
		ErrCode:  e.errCode,
		Types:    e.types,
		Origins:  e.origins,
	}
}

func (e *Engine) notify() {
	e.mu.Lock()
	snapshot := e.snapshotLocked()
	watchers := make([]func(Snapshot), len(e.watchers))
	copy(watchers, e.watchers)
	e.mu.Unlock()

	for _, fn := range watchers {
		fn(snapshot)
	}
}
