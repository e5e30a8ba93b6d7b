// asreview-split converts a newline-delimited JSON metadata stream into
// numbered CSV batch files ready for review.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/minhng/asreview/internal/ingest"
)

func main() {
	metadata := flag.String("metadata", "", "path to the NDJSON metadata file (required)")
	out := flag.String("out", "batches", "output directory for batch files")
	size := flag.Int("size", 500, "records per batch file")
	segments := flag.String("segments", "segments_16k", "directory prepended to audio references")
	start := flag.Int("start", 1, "number of the first batch file")
	flag.Parse()

	if *metadata == "" {
		flag.Usage()
		log.Fatal("missing -metadata")
	}

	files, records, err := ingest.SplitFile(*metadata, ingest.Options{
		BatchSize:  *size,
		OutDir:     *out,
		SegmentDir: *segments,
		StartIndex: *start,
	})
	if err != nil {
		log.Fatalf("split: %v", err)
	}
	fmt.Printf("Total records: %d; batch files written: %d\n", records, files)
}
