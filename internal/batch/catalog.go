package batch

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ListBatches returns the names of the CSV batch files in dir, sorted.
// An existing but empty directory is not an error.
func ListBatches(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
