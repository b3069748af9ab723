package tasks

import (
	"errors"
	"testing"
	"time"

	"setlift/internal/models"
	"setlift/internal/shared"
)

func TestExtractJSONSpan(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"Bare Object", `{"artist":"A"}`, `{"artist":"A"}`, true},
		{"Fenced Block", "```json\n{\"artist\":\"A\"}\n```", `{"artist":"A"}`, true},
		{"Leading Prose", "Here is the result:\n{\"artist\":\"A\"}", `{"artist":"A"}`, true},
		{"Trailing Prose", "{\"artist\":\"A\"}\nLet me know if you need more.", `{"artist":"A"}`, true},
		{"No Object", "I could not find any tracklist.", "", false},
		{"Empty", "", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ExtractJSONSpan(c.in)
			if ok != c.ok || got != c.want {
				t.Errorf("ExtractJSONSpan(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	t.Run("Fenced Minimal Record", func(t *testing.T) {
		raw := "Here is the result:\n```json\n{\"artist\":\"A\",\"event\":\"E\",\"tracklist\":[]}\n```"

		record, err := ParseResponse(raw)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record.Artist != "A" || record.Event != "E" {
			t.Errorf("unexpected record %+v", record)
		}
		if record.TotalTracks != 0 || record.UnidentifiedTracks != 0 {
			t.Errorf("expected zero counts, got %d/%d", record.TotalTracks, record.UnidentifiedTracks)
		}
		if record.BPMRange != models.EmptyBPMRange {
			t.Errorf("expected empty range sentinel, got %s", record.BPMRange)
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := ParseResponse(`{"artist": "A",`)
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("No Object At All", func(t *testing.T) {
		_, err := ParseResponse("Sorry, nothing found.")
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("No Information Found", func(t *testing.T) {
		record, err := ParseResponse(`{"artist":null,"event":null,"tracklist":[]}`)
		if record != nil {
			t.Errorf("expected no record with placeholder values, got %+v", record)
		}
		if !errors.Is(err, shared.ErrNoInformation) {
			t.Errorf("expected ErrNoInformation, got %v", err)
		}
	})

	t.Run("Backfills Missing Scalars", func(t *testing.T) {
		record, err := ParseResponse(`{"tracklist":[{"title":"Opus","artist":"Eric Prydz"}]}`)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record.Artist != "Unknown Artist" {
			t.Errorf("expected artist backfill, got %q", record.Artist)
		}
		if record.Event != "Unknown Event" {
			t.Errorf("expected event backfill, got %q", record.Event)
		}
		if record.Date != time.Now().Format("2006-01-02") {
			t.Errorf("expected current date, got %q", record.Date)
		}
		if record.Duration != "0h 0m" {
			t.Errorf("expected duration backfill, got %q", record.Duration)
		}
		if record.MainGenre != "Unknown" {
			t.Errorf("expected genre backfill, got %q", record.MainGenre)
		}
		if record.Source.Name != "AI Extraction" {
			t.Errorf("expected AI Extraction source, got %+v", record.Source)
		}
	})

	t.Run("Counts Never Trusted From Model", func(t *testing.T) {
		raw := `{"artist":"A","event":"E","totalTracks":99,"unidentifiedTracks":42,"tracklist":[{"title":"ID"},{"title":"Opus"}]}`

		record, err := ParseResponse(raw)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record.TotalTracks != 2 {
			t.Errorf("expected recomputed total 2, got %d", record.TotalTracks)
		}
		if record.UnidentifiedTracks != 1 {
			t.Errorf("expected recomputed unidentified 1, got %d", record.UnidentifiedTracks)
		}
	})

	t.Run("Recomputes Empty Range From Track Tempos", func(t *testing.T) {
		raw := `{"artist":"A","event":"E","bpmRange":"0-0","tracklist":[{"title":"X","bpm":128},{"title":"Y","bpm":140},{"title":"Z"}]}`

		record, err := ParseResponse(raw)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record.BPMRange != "128-140" {
			t.Errorf("expected 128-140, got %s", record.BPMRange)
		}
	})

	t.Run("Keeps Model Reported Range", func(t *testing.T) {
		raw := `{"artist":"A","event":"E","bpmRange":"120-135","tracklist":[{"title":"X","bpm":128}]}`

		record, err := ParseResponse(raw)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if record.BPMRange != "120-135" {
			t.Errorf("expected model-reported range kept, got %s", record.BPMRange)
		}
	})
}
