package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// exportHeader is the canonical output schema. Confirmation flags are
// session-local and never exported.
var exportHeader = []string{colAudioPath, colTranscripts, colTag}

// Export writes the current session state as a UTF-8-sig CSV: one header
// row, then one row per record in post-filter order. transcripts and tags
// must be length-synchronized with rs; unset tags write as empty cells.
//
// Export is a pure projection of its inputs and may be invoked repeatedly.
func Export(w io.Writer, rs *RecordSet, transcripts []string, tags []Tag) error {
	if len(transcripts) != rs.Len() || len(tags) != rs.Len() {
		return fmt.Errorf("export %s: state length %d/%d does not match %d records",
			rs.Name(), len(transcripts), len(tags), rs.Len())
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < rs.Len(); i++ {
		row := []string{rs.Record(i).AudioPath, transcripts[i], tags[i].String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// ExportFile writes the export to path, creating or truncating it.
func ExportFile(path string, rs *RecordSet, transcripts []string, tags []Tag) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Export(f, rs, transcripts, tags); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
