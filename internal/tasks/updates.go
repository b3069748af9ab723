package tasks

import (
	"fmt"

	"setlift/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveSource Phase = iota
	GenerateExtraction
	ParseOutput
	EnrichTracks
)

func (p Phase) String() string {
	switch p {
	case ResolveSource:
		return "resolve_source"
	case GenerateExtraction:
		return "generate_extraction"
	case ParseOutput:
		return "parse_output"
	case EnrichTracks:
		return "enrich_tracks"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

func resolvingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSource,
		Step:    1,
		Total:   1,
		Message: "Resolving source reference...",
	}
}

func resolvedUpdate(meta *services.VideoMetadata) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found video: %s (%s)", meta.Title, meta.Author),
		Data:    meta,
	}
}

func generatingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateExtraction,
		Step:    1,
		Total:   1,
		Message: "Extracting set data with AI...",
	}
}

func parsingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseOutput,
		Step:    1,
		Total:   1,
		Message: "Parsing extraction output...",
	}
}

func enrichingUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Enriching tracks from catalog...", step, total),
	}
}

func enrichSkippedUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichTracks,
		Step:    1,
		Total:   1,
		Message: "Catalog not connected, keeping AI-extracted values",
	}
}
