package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMalformedBatch marks a batch file that cannot be parsed or is
	// missing a required column. Fatal for the load attempt.
	ErrMalformedBatch = errors.New("malformed batch file")

	// ErrMissingTagColumn marks an accepted-only load against a file that
	// has no tag column from a previous pass.
	ErrMissingTagColumn = errors.New("batch file has no tag column")
)

// Column names of the persisted schema.
const (
	colFilename    = "filename"
	colAudioPath   = "audio_path"
	colTranscripts = "transcripts"
	colTag         = "tag"
)

const utf8BOM = "\ufeff"

// Load reads the batch file at path and returns its records with the
// variant's filter already applied. segmentDir is the directory prepended
// to filename-keyed audio references; it is unused by pre-resolved variants.
//
// Loading is deterministic: the same file yields the same RecordSet, record
// order preserved exactly as stored.
func Load(path string, v Variant, segmentDir string) (*RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBatch, err)
	}

	// Batch files are written UTF-8-sig; tolerate the BOM on the way in.
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM)))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBatch, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file %s", ErrMalformedBatch, path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}

	transcriptCol, ok := cols[colTranscripts]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q column in %s", ErrMalformedBatch, colTranscripts, path)
	}

	var audioCol int
	switch v.Audio {
	case AudioFromFilename:
		audioCol, ok = cols[colFilename]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q column in %s", ErrMalformedBatch, colFilename, path)
		}
	case AudioFromColumn:
		audioCol, ok = cols[colAudioPath]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q column in %s", ErrMalformedBatch, colAudioPath, path)
		}
	}

	tagCol, hasTags := cols[colTag]
	if v.Filter == FilterAccepted && !hasTags {
		return nil, fmt.Errorf("%w: %s", ErrMissingTagColumn, path)
	}

	rs := &RecordSet{
		name:    filepath.Base(path),
		records: make([]Record, 0, len(rows)-1),
		hasTags: hasTags,
	}
	for _, row := range rows[1:] {
		rec := Record{Transcript: row[transcriptCol]}
		switch v.Audio {
		case AudioFromFilename:
			rec.AudioPath = filepath.Join(segmentDir, row[audioCol]+".wav")
		case AudioFromColumn:
			rec.AudioPath = row[audioCol]
		}
		if hasTags {
			rec.Tag = ParseTag(row[tagCol])
		}
		rs.records = append(rs.records, rec)
	}

	return v.Filter.Apply(rs)
}

// Apply subsets rs according to the policy. FilterAccepted returns an
// order-preserving subsequence of the accept-tagged rows, re-indexed
// contiguously from zero.
func (p FilterPolicy) Apply(rs *RecordSet) (*RecordSet, error) {
	if p == FilterNone {
		return rs, nil
	}
	if !rs.hasTags {
		return nil, fmt.Errorf("%w: %s", ErrMissingTagColumn, rs.name)
	}
	out := &RecordSet{name: rs.name, hasTags: true}
	for _, rec := range rs.records {
		if rec.Tag == TagAccept {
			out.records = append(out.records, rec)
		}
	}
	return out, nil
}
