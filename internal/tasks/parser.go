package tasks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"setlift/internal/models"
	"setlift/internal/shared"
)

// ExtractJSONSpan isolates a JSON object from noisy generative output.
//
// Strips fenced code-block markers, then slices from the first '{' to the
// last '}' to tolerate leading/trailing prose the model may emit despite
// instructions. Returns false when no object span exists.
func ExtractJSONSpan(text string) (string, bool) {
	clean := strings.TrimSpace(text)

	if strings.Contains(clean, "```") {
		clean = strings.ReplaceAll(clean, "```json", "")
		clean = strings.ReplaceAll(clean, "```", "")
	}

	first := strings.Index(clean, "{")
	last := strings.LastIndex(clean, "}")
	if first == -1 || last == -1 || last < first {
		return "", false
	}

	return clean[first : last+1], true
}

// ParseResponse normalizes raw model output into a canonical set record.
//
// A missing or unparseable JSON object is a hard failure of this stage,
// reported as [shared.ErrMalformedResponse]. Output with no artist, no
// event, and an empty tracklist fails with [shared.ErrNoInformation] so
// the caller can offer a manual-entry path. Once some signal exists,
// missing scalar fields are backfilled with explicit defaults instead of
// failing outright. Track counts are always recomputed from the tracklist,
// never trusted from the model.
func ParseResponse(raw string) (*models.SetRecord, error) {
	span, ok := ExtractJSONSpan(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model output", shared.ErrMalformedResponse)
	}

	var record models.SetRecord
	if err := json.Unmarshal([]byte(span), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	if record.Artist == "" && record.Event == "" && len(record.Tracklist) == 0 {
		return nil, fmt.Errorf("%w: model found no usable set data", shared.ErrNoInformation)
	}

	if record.Artist == "" {
		record.Artist = "Unknown Artist"
	}
	if record.Event == "" {
		record.Event = "Unknown Event"
	}
	if record.Date == "" {
		record.Date = time.Now().Format("2006-01-02")
	}
	if record.Duration == "" {
		record.Duration = "0h 0m"
	}
	if record.MainGenre == "" {
		record.MainGenre = "Unknown"
	}
	if record.BPMRange == "" {
		record.BPMRange = models.EmptyBPMRange
	}

	record.Source = models.Source{Name: "AI Extraction", URL: record.YoutubeURL}

	record.Recount()

	// Model-reported range may be the empty sentinel even when individual
	// tracks carry tempos.
	if record.BPMRange == models.EmptyBPMRange {
		record.RecomputeBPMRange()
	}

	return &record, nil
}
