package app

import "github.com/minhng/asreview/internal/batch"

// BatchesListedMsg carries the batch catalog for the active pass directory.
type BatchesListedMsg struct {
	Files []string
	Err   error
}

// BatchLoadedMsg carries a loaded (and filtered) record set, or the load
// failure for this attempt.
type BatchLoadedMsg struct {
	Name string
	Set  *batch.RecordSet
	Err  error
}

// ExportDoneMsg reports the outcome of writing the export file.
type ExportDoneMsg struct {
	Path string
	Rows int
	Err  error
}

// AudioStatMsg reports whether the audio file referenced by a record exists
// on disk. Missing audio degrades to a warning; review proceeds.
type AudioStatMsg struct {
	Index int
	OK    bool
}

// PlayerDoneMsg is sent when the external audio player exits.
type PlayerDoneMsg struct {
	Err error
}

// ClearNoticeMsg clears a transient status notice after a timeout.
type ClearNoticeMsg struct{}
