package tasks

import (
	"context"
	"fmt"
	"testing"

	"setlift/internal/models"
	settest "setlift/internal/testing"
)

type staticAuth struct {
	authenticated bool
}

func (a staticAuth) IsAuthenticated() bool { return a.authenticated }

func trackList(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		tracks[i] = models.Track{
			Artist: fmt.Sprintf("Artist %d", i),
			Title:  fmt.Sprintf("Track %d", i),
		}
	}
	return tracks
}

func TestEnrich(t *testing.T) {
	t.Run("Bounded Batches Preserve Order", func(t *testing.T) {
		mock := &settest.MockEnricher{Results: map[string]*models.TrackEnrichment{}}
		tracks := trackList(12)
		for i, track := range tracks {
			if i == 3 || i == 7 {
				continue // simulate catalog misses
			}
			mock.Results[track.Artist+" - "+track.Title] = &models.TrackEnrichment{
				BPM: float64(120 + i),
				Key: "8A",
			}
		}

		engine := NewEnrichEngine(mock, staticAuth{authenticated: true})
		results := engine.Enrich(context.Background(), nil, tracks)

		if len(results) != 12 {
			t.Fatalf("expected 12 slots, got %d", len(results))
		}
		if peak := mock.PeakConcurrency(); peak > 5 {
			t.Errorf("expected at most 5 concurrent lookups, observed %d", peak)
		}
		if len(mock.Calls) != 12 {
			t.Errorf("expected 12 lookups, got %d", len(mock.Calls))
		}

		for i, result := range results {
			if i == 3 || i == 7 {
				if result != nil {
					t.Errorf("slot %d: expected nil for catalog miss, got %+v", i, result)
				}
				continue
			}
			if result == nil {
				t.Errorf("slot %d: expected enrichment", i)
				continue
			}
			if result.BPM != float64(120+i) {
				t.Errorf("slot %d: result out of order, bpm %v", i, result.BPM)
			}
		}
	})

	t.Run("Failing Track Never Blocks Batch Mates", func(t *testing.T) {
		mock := &settest.MockEnricher{Err: fmt.Errorf("catalog down")}

		engine := NewEnrichEngine(mock, staticAuth{authenticated: true})
		results := engine.Enrich(context.Background(), nil, trackList(4))

		if len(results) != 4 {
			t.Fatalf("expected 4 slots, got %d", len(results))
		}
		for i, result := range results {
			if result != nil {
				t.Errorf("slot %d: expected nil on failure, got %+v", i, result)
			}
		}
	})

	t.Run("Unauthenticated Is Pass Through", func(t *testing.T) {
		mock := &settest.MockEnricher{}

		engine := NewEnrichEngine(mock, staticAuth{authenticated: false})
		results := engine.Enrich(context.Background(), nil, trackList(3))

		if len(results) != 3 {
			t.Fatalf("expected 3 slots, got %d", len(results))
		}
		if len(mock.Calls) != 0 {
			t.Errorf("expected no catalog calls, got %d", len(mock.Calls))
		}
	})

	t.Run("Empty Tracklist", func(t *testing.T) {
		engine := NewEnrichEngine(&settest.MockEnricher{}, staticAuth{authenticated: true})
		if results := engine.Enrich(context.Background(), nil, nil); len(results) != 0 {
			t.Errorf("expected empty results, got %d", len(results))
		}
	})
}

func TestMergeEnrichment(t *testing.T) {
	record := &models.SetRecord{
		Tracklist: []models.Track{
			{Title: "A", BPM: 120, Tone: "4B", Energy: models.EnergyIntro},
			{Title: "B", BPM: 125, Tone: "5A", Energy: models.EnergyPeak},
			{Title: "C"},
		},
	}

	MergeEnrichment(record, []*models.TrackEnrichment{
		{BPM: 126, Key: "8A", Energy: 0.9},
		nil,
		{BPM: 138, Key: "11A"},
	})

	t.Run("Overwrites Tempo And Key", func(t *testing.T) {
		if record.Tracklist[0].BPM != 126 || record.Tracklist[0].Tone != "8A" {
			t.Errorf("expected catalog values, got %+v", record.Tracklist[0])
		}
	})

	t.Run("Preserves Extraction Energy", func(t *testing.T) {
		if record.Tracklist[0].Energy != models.EnergyIntro {
			t.Errorf("expected energy preserved, got %q", record.Tracklist[0].Energy)
		}
	})

	t.Run("Nil Slot Leaves Track Untouched", func(t *testing.T) {
		if record.Tracklist[1].BPM != 125 || record.Tracklist[1].Tone != "5A" {
			t.Errorf("expected track untouched, got %+v", record.Tracklist[1])
		}
	})

	t.Run("Recomputes Range", func(t *testing.T) {
		if record.BPMRange != "125-138" {
			t.Errorf("expected 125-138, got %s", record.BPMRange)
		}
	})
}
