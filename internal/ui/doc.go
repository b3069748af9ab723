// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-stage workflow for set extraction:
//  1. [ExtractView] : Monitor real-time pipeline progress updates
//  2. [TrackListView] : Browse the extracted, enriched tracklist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the pipeline Engine, providing non-blocking status reporting during extraction.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
