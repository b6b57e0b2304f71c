// package tasks implements long-running catalog operations, currently bulk
// collection exports.
//
// The core abstraction is ExportEngine, which fans collection exports out over
// a worker pool. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"fmt"

	"github.com/Flammans/artanova/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchCollection Phase = iota
	ExportCollection
	ExportCompleted
	ExportFailed
)

func (p Phase) String() string {
	switch p {
	case FetchCollection:
		return "fetch_collection"
	case ExportCollection:
		return "export_collection"
	case ExportCompleted:
		return "export_completed"
	case ExportFailed:
		return "export_failed"
	default:
		return "unknown"
	}
}

// ExportEngine orchestrates collection exports against the catalog API.
type ExportEngine struct {
	api services.CollectionAPI
}

// NewExportEngine creates an engine backed by the given collection API.
func NewExportEngine(api services.CollectionAPI) *ExportEngine {
	return &ExportEngine{api: api}
}

// sendProgress sends a progress update through the channel without blocking.
// A slow or absent consumer never stalls the export itself.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchCollectionUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCollection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %d collections", total),
	}
}

func exportCollectionUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCollection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exporting %q", title),
	}
}

func exportCompletedUpdate(step, total int, title string, files int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCompleted,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exported %q (%d files)", title, files),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to export %q: %v", title, err),
	}
}
