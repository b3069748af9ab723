// Package models defines the data model for DJ set extraction.
//
// # Core Types
//
// [SetRecord] is the normalized record describing one performance: event
// metadata plus an ordered [Track] timeline. Track identity is positional
// within the tracklist; there is no independent track ID.
//
// # Invariants
//
// TotalTracks always equals len(Tracklist) and UnidentifiedTracks counts
// tracks whose title is empty, "Unknown", or carries an "ID" marker.
// Both are recomputed by [SetRecord.Recount]; model-reported counts are
// never trusted.
//
// BPMRange is "0-0" when no track carries a positive tempo, otherwise
// "<min>-<max>" over the positive per-track values (see [BPMRange]).
package models
