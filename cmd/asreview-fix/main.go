// asreview-fix bulk-accepts every record of a batch file and rewrites it in
// the canonical three-column export schema.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/minhng/asreview/internal/batch"
	"github.com/minhng/asreview/internal/session"
)

func main() {
	in := flag.String("in", "", "batch file to rewrite (required)")
	out := flag.String("out", "", "output path (required)")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		log.Fatal("missing -in or -out")
	}

	v := batch.Variant{Name: "fix", Audio: batch.AudioFromColumn, Filter: batch.FilterNone}
	rs, err := batch.Load(*in, v, "")
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	s := session.New(rs, false)
	s.TagAll(batch.TagAccept)

	if err := batch.ExportFile(*out, rs, s.Transcripts(), s.Tags()); err != nil {
		log.Fatalf("export: %v", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", rs.Len(), *out)
}
