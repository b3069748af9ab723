// package formatter provides functions to export set records to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"setlift/internal/models"
	"setlift/internal/shared"
)

// ExportToCSV converts a SetRecord's tracklist to CSV format with columns: Position, StartTime, Title, Artist, BPM, Genre, Key, Energy, Notes
func ExportToCSV(record *models.SetRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "StartTime", "Title", "Artist", "BPM", "Genre", "Key", "Energy", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range record.Tracklist {
		bpm := ""
		if track.BPM > 0 {
			bpm = strconv.FormatFloat(track.BPM, 'f', -1, 64)
		}
		row := []string{
			strconv.Itoa(i + 1),
			track.StartTime,
			track.Title,
			track.Artist,
			bpm,
			track.Genre,
			track.Tone,
			track.Energy,
			track.Notes,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SetRecord to Markdown format
func ExportToMarkdown(record *models.SetRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s - %s\n\n", record.Artist, record.Event))

	if record.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", record.Description))
	}
	if record.Stage != "" {
		buf.WriteString(fmt.Sprintf("**Stage**: %s\n", record.Stage))
	}
	if record.Location != "" {
		buf.WriteString(fmt.Sprintf("**Location**: %s\n", record.Location))
	}
	buf.WriteString(fmt.Sprintf("**Date**: %s\n", record.Date))
	buf.WriteString(fmt.Sprintf("**Duration**: %s\n", record.Duration))
	buf.WriteString(fmt.Sprintf("**Genre**: %s\n", record.MainGenre))
	buf.WriteString(fmt.Sprintf("**BPM Range**: %s\n", record.BPMRange))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d (%d unidentified)\n\n", record.TotalTracks, record.UnidentifiedTracks))

	if record.YoutubeURL != "" {
		buf.WriteString(fmt.Sprintf("[Watch the set](%s)\n\n", record.YoutubeURL))
	}

	buf.WriteString("## Tracklist\n\n")
	for i, track := range record.Tracklist {
		timePart := ""
		if track.StartTime != "" {
			timePart = fmt.Sprintf("[%s] ", track.StartTime)
		}
		detail := trackDetail(track)
		buf.WriteString(fmt.Sprintf("%d. %s%s - %s%s\n", i+1, timePart, track.Artist, track.Title, detail))
	}

	return buf.Bytes(), nil
}

// trackDetail renders the bpm/key/energy suffix for a tracklist line.
func trackDetail(track models.Track) string {
	var parts []string
	if track.BPM > 0 {
		parts = append(parts, strconv.FormatFloat(track.BPM, 'f', -1, 64)+" BPM")
	}
	if track.Tone != "" {
		parts = append(parts, track.Tone)
	}
	if track.Energy != "" {
		parts = append(parts, track.Energy)
	}
	if len(parts) == 0 {
		return ""
	}

	detail := " ("
	for i, p := range parts {
		if i > 0 {
			detail += ", "
		}
		detail += p
	}
	return detail + ")"
}

// ExportToText converts a SetRecord to plain text format
func ExportToText(record *models.SetRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Set: %s - %s\n", record.Artist, record.Event))
	buf.WriteString(fmt.Sprintf("Date: %s\n", record.Date))
	buf.WriteString(fmt.Sprintf("Genre: %s\n", record.MainGenre))
	buf.WriteString(fmt.Sprintf("BPM Range: %s\n", record.BPMRange))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", record.TotalTracks))

	for i, track := range record.Tracklist {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// ToRecordJSON generates an indented JSON representation of a set record
func ToRecordJSON(record *models.SetRecord) ([]byte, error) {
	return shared.MarshalJSON(record, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a set record to CSV with an accompanying metadata JSON file.
//
// Defaults to the record ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(record *models.SetRecord, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = record.ID
	}

	csvData, err := ExportToCSV(record)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadata := *record
	metadata.Tracklist = nil
	metadataJSON, err := shared.MarshalJSON(metadata, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}
