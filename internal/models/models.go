package models

import (
	"strconv"
	"strings"
	"time"
)

// Energy levels assigned to tracks by position in the set.
const (
	EnergyIntro   = "Intro"
	EnergyGroove  = "Groove"
	EnergyPeak    = "Peak"
	EnergyBuildup = "Buildup"
	EnergyAnthem  = "Anthem"
	EnergyClose   = "Cierre"
)

// EmptyBPMRange is the sentinel for a record with no usable tempo data.
const EmptyBPMRange = "0-0"

// Track represents one entry in a set's timeline.
//
// BPM and Tone are overwritten by catalog enrichment when a match is found;
// Energy always keeps the extraction-assigned value.
type Track struct {
	StartTime string  `json:"startTime,omitempty"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	BPM       float64 `json:"bpm,omitempty"`
	Genre     string  `json:"genre,omitempty"`
	Tone      string  `json:"tone,omitempty"`
	Energy    string  `json:"energy,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// Unidentified reports whether the track title marks an unidentified record.
//
// A title is unidentified when it is empty, the "Unknown" sentinel, or
// contains a standalone "ID" token (the convention tracklist sites use for
// unreleased records).
func (t Track) Unidentified() bool {
	title := strings.TrimSpace(t.Title)
	if title == "" || strings.EqualFold(title, "Unknown") {
		return true
	}

	for _, token := range strings.FieldsFunc(title, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	}) {
		if strings.EqualFold(token, "ID") {
			return true
		}
	}

	return false
}

// Source attributes where a record's data came from.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SetRecord is the normalized record for one DJ performance.
type SetRecord struct {
	ID                 string  `json:"id,omitempty"`
	Artist             string  `json:"artist"`
	Event              string  `json:"event"`
	Stage              string  `json:"stage"`
	Date               string  `json:"date"`
	Location           string  `json:"location"`
	Description        string  `json:"description"`
	Duration           string  `json:"duration"`
	BPMRange           string  `json:"bpmRange"`
	MainGenre          string  `json:"mainGenre"`
	YoutubeURL         string  `json:"youtubeUrl"`
	Source             Source  `json:"source"`
	Tracklist          []Track `json:"tracklist"`
	TotalTracks        int     `json:"totalTracks"`
	UnidentifiedTracks int     `json:"unidentifiedTracks"`
}

// Recount recomputes TotalTracks and UnidentifiedTracks from the tracklist.
func (r *SetRecord) Recount() {
	r.TotalTracks = len(r.Tracklist)
	r.UnidentifiedTracks = 0
	for _, t := range r.Tracklist {
		if t.Unidentified() {
			r.UnidentifiedTracks++
		}
	}
}

// RecomputeBPMRange recalculates BPMRange from per-track tempos.
func (r *SetRecord) RecomputeBPMRange() {
	bpms := make([]float64, 0, len(r.Tracklist))
	for _, t := range r.Tracklist {
		bpms = append(bpms, t.BPM)
	}
	r.BPMRange = BPMRange(bpms)
}

// BPMRange formats the min/max over positive tempos as "<min>-<max>".
// Returns the "0-0" sentinel when no positive tempo exists.
func BPMRange(bpms []float64) string {
	var min, max float64
	found := false

	for _, bpm := range bpms {
		if bpm <= 0 {
			continue
		}
		if !found || bpm < min {
			min = bpm
		}
		if !found || bpm > max {
			max = bpm
		}
		found = true
	}

	if !found {
		return EmptyBPMRange
	}

	return formatBPM(min) + "-" + formatBPM(max)
}

func formatBPM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TrackEnrichment holds catalog audio features for a single track.
type TrackEnrichment struct {
	BPM    float64 `json:"bpm"`
	Key    string  `json:"key"`
	Energy float64 `json:"energy"`
}

// CredentialState is the persisted catalog credential set.
//
// Created by the authorization-code exchange, replaced wholesale on every
// refresh, and deleted when a refresh fails irrecoverably.
type CredentialState struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token is past the given safety margin.
func (c CredentialState) Expired(margin time.Duration) bool {
	return !time.Now().Before(c.ExpiresAt.Add(-margin))
}
