// Package ingest converts newline-delimited JSON transcription metadata into
// numbered CSV batch files sized for one review session each.
package ingest

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options control the split.
type Options struct {
	BatchSize  int    // records per batch file; defaults to 500
	OutDir     string // created if missing
	SegmentDir string // prepended to each filename for the audio_path column
	StartIndex int    // number of the first batch file; defaults to 1
}

type metadataRecord struct {
	Filename    string `json:"filename"`
	Transcripts string `json:"transcripts"`
}

var splitHeader = []string{"filename", "audio_path", "transcripts"}

const utf8BOM = "\ufeff"

// Split reads one JSON object per line from r and writes batch files named
// metadata_batch_<n>.csv under opts.OutDir, each capped at opts.BatchSize
// records. Returns the number of files and records written.
func Split(r io.Reader, opts Options) (files, records int, err error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.StartIndex <= 0 {
		opts.StartIndex = 1
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create output dir: %w", err)
	}

	var pending [][]string
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		name := fmt.Sprintf("metadata_batch_%d.csv", opts.StartIndex+files)
		if err := writeBatch(filepath.Join(opts.OutDir, name), pending); err != nil {
			return err
		}
		files++
		pending = pending[:0]
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var m metadataRecord
		if err := json.Unmarshal(raw, &m); err != nil {
			return files, records, fmt.Errorf("parse metadata line %d: %w", line, err)
		}
		audioPath := filepath.Join(opts.SegmentDir, m.Filename+".wav")
		pending = append(pending, []string{m.Filename, audioPath, m.Transcripts})
		records++
		if len(pending) == opts.BatchSize {
			if err := flush(); err != nil {
				return files, records, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return files, records, fmt.Errorf("read metadata: %w", err)
	}
	if err := flush(); err != nil {
		return files, records, err
	}
	return files, records, nil
}

// SplitFile is Split over a metadata file on disk.
func SplitFile(path string, opts Options) (files, records int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()
	return Split(f, opts)
}

func writeBatch(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create batch file: %w", err)
	}

	if _, err := io.WriteString(f, utf8BOM); err != nil {
		f.Close()
		return fmt.Errorf("write bom: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(splitHeader); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	return f.Close()
}
