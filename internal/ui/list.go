package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"setlift/internal/models"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }

func (i trackItem) Title() string {
	if i.track.StartTime != "" {
		return fmt.Sprintf("[%s] %s", i.track.StartTime, i.track.Title)
	}
	return i.track.Title
}

func (i trackItem) Description() string {
	parts := []string{i.track.Artist}
	if i.track.BPM > 0 {
		parts = append(parts, strconv.FormatFloat(i.track.BPM, 'f', -1, 64)+" BPM")
	}
	if i.track.Tone != "" {
		parts = append(parts, i.track.Tone)
	}
	if i.track.Energy != "" {
		parts = append(parts, i.track.Energy)
	}
	return strings.Join(parts, " • ")
}
