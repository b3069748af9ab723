package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"setlift/internal/models"
)

func sampleRecord() *models.SetRecord {
	record := &models.SetRecord{
		ID:         "set123",
		Artist:     "Amelie Lens",
		Event:      "Tomorrowland",
		Date:       "2023-07-21",
		Duration:   "1h 0m",
		MainGenre:  "Techno",
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		Tracklist: []models.Track{
			{StartTime: "00:00", Title: "In My Mind", Artist: "Amelie Lens", BPM: 132, Tone: "8A", Energy: models.EnergyIntro},
			{StartTime: "04:30", Title: "ID", Artist: "ID"},
		},
	}
	record.Recount()
	record.RecomputeBPMRange()
	return record
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleRecord())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Position,StartTime,Title,Artist,BPM,Genre,Key,Energy,Notes") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "In My Mind") {
			t.Errorf("CSV missing track title")
		}
		if !strings.Contains(output, "132") {
			t.Errorf("CSV missing BPM")
		}
		if !strings.Contains(output, "8A") {
			t.Errorf("CSV missing key")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleRecord())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Amelie Lens - Tomorrowland") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**BPM Range**: 132-132") {
			t.Errorf("Markdown missing bpm range")
		}
		if !strings.Contains(output, "**Tracks**: 2 (1 unidentified)") {
			t.Errorf("Markdown missing track counts")
		}
		if !strings.Contains(output, "1. [00:00] Amelie Lens - In My Mind (132 BPM, 8A, Intro)") {
			t.Errorf("Markdown missing tracklist line, got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleRecord())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Set: Amelie Lens - Tomorrowland") {
			t.Errorf("Text missing header")
		}
		if !strings.Contains(output, "2. ID - ID") {
			t.Errorf("Text missing second track")
		}
	})

	t.Run("ToRecordJSON", func(t *testing.T) {
		data, err := ToRecordJSON(sampleRecord())
		if err != nil {
			t.Fatalf("ToRecordJSON failed: %v", err)
		}
		if !strings.Contains(string(data), `"bpmRange": "132-132"`) {
			t.Errorf("JSON missing bpmRange, got: %s", data)
		}
	})
}

func TestWriteCSVExport(t *testing.T) {
	base := filepath.Join(t.TempDir(), "set123")

	result, err := WriteCSVExport(sampleRecord(), base)
	if err != nil {
		t.Fatalf("WriteCSVExport failed: %v", err)
	}

	if result.TracksFile != base+"_tracks.csv" {
		t.Errorf("unexpected tracks file %s", result.TracksFile)
	}
	if result.MetadataFile != base+"_metadata.json" {
		t.Errorf("unexpected metadata file %s", result.MetadataFile)
	}
}
