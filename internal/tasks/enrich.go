package tasks

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"setlift/internal/models"
)

// Catalog rate limits: at most batchSize concurrent lookups, one batch
// per pacing interval.
const (
	batchSize     = 5
	batchInterval = 500 * time.Millisecond
)

// Enricher looks up catalog audio features for a single track.
// A (nil, nil) return means the catalog had no match.
type Enricher interface {
	EnrichTrack(ctx context.Context, artist, title string) (*models.TrackEnrichment, error)
}

// AuthState reports whether the catalog credential is usable.
type AuthState interface {
	IsAuthenticated() bool
}

// EnrichEngine batches a tracklist through the catalog under a concurrency
// cap and inter-batch pacing.
type EnrichEngine struct {
	enricher Enricher
	auth     AuthState
	limiter  *rate.Limiter
}

// NewEnrichEngine creates an enrichment engine over the given catalog boundary.
func NewEnrichEngine(enricher Enricher, auth AuthState) *EnrichEngine {
	return &EnrichEngine{
		enricher: enricher,
		auth:     auth,
		limiter:  rate.NewLimiter(rate.Every(batchInterval), 1),
	}
}

// Authenticated reports whether catalog enrichment is available.
func (e *EnrichEngine) Authenticated() bool {
	return e.enricher != nil && e.auth != nil && e.auth.IsAuthenticated()
}

// Enrich looks up audio features for every track, preserving input order.
//
// Tracks are processed in batches of five; within a batch all lookups run
// concurrently, and one failing track never blocks its batch-mates. The
// returned slice is position-aligned with the input: a slot is nil when the
// catalog had no match or the lookup failed. When the catalog is not
// connected the whole pass is skipped and all slots are nil, which is
// expected steady state rather than an error.
func (e *EnrichEngine) Enrich(ctx context.Context, progress chan<- ProgressUpdate, tracks []models.Track) []*models.TrackEnrichment {
	results := make([]*models.TrackEnrichment, len(tracks))

	if !e.Authenticated() {
		sendProgress(progress, enrichSkippedUpdate())
		return results
	}

	for start := 0; start < len(tracks); start += batchSize {
		if err := e.limiter.Wait(ctx); err != nil {
			return results
		}

		end := min(start+batchSize, len(tracks))
		sendProgress(progress, enrichingUpdate(end, len(tracks)))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int, track models.Track) {
				defer wg.Done()

				enrichment, err := e.enricher.EnrichTrack(ctx, track.Artist, track.Title)
				if err != nil {
					// Per-track failure degrades to AI-only data.
					return
				}
				results[i] = enrichment
			}(i, tracks[i])
		}
		wg.Wait()
	}

	return results
}

// MergeEnrichment folds position-aligned catalog results into the record.
//
// For each enriched track, the catalog tempo and key overwrite the
// AI-extracted values; the energy classification always keeps the
// extraction-assigned value since the catalog's numeric energy is not
// compatible. Unenriched tracks are left untouched. The aggregate tempo
// range is recomputed afterwards.
func MergeEnrichment(record *models.SetRecord, enrichments []*models.TrackEnrichment) {
	for i := range record.Tracklist {
		if i >= len(enrichments) || enrichments[i] == nil {
			continue
		}
		record.Tracklist[i].BPM = enrichments[i].BPM
		record.Tracklist[i].Tone = enrichments[i].Key
	}
	record.RecomputeBPMRange()
}
