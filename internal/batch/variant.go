package batch

// AudioSource selects how a record's audio reference is derived at load time.
type AudioSource int

const (
	// AudioFromFilename builds "<segmentDir>/<filename>.wav" from the
	// filename column.
	AudioFromFilename AudioSource = iota
	// AudioFromColumn uses the audio_path column verbatim.
	AudioFromColumn
)

// FilterPolicy selects which rows of a loaded batch are eligible for the
// current review pass.
type FilterPolicy int

const (
	// FilterNone keeps all records in file order.
	FilterNone FilterPolicy = iota
	// FilterAccepted keeps only records whose stored tag is accept,
	// re-indexed contiguously. Requires the file to carry a tag column.
	FilterAccepted
)

// Variant describes one review pass. The passes differ only in where audio
// references come from, which rows are eligible, and whether the per-row
// confirmation toggle is available.
type Variant struct {
	Name    string
	Audio   AudioSource
	Filter  FilterPolicy
	Confirm bool
}

// Passes returns the shipped review variants, in pass order.
func Passes() []Variant {
	return []Variant{
		{Name: "first", Audio: AudioFromFilename, Filter: FilterNone},
		{Name: "recheck", Audio: AudioFromColumn, Filter: FilterAccepted},
		{Name: "confirm", Audio: AudioFromColumn, Filter: FilterAccepted, Confirm: true},
	}
}

// PassVariant looks up a shipped variant by name.
func PassVariant(name string) (Variant, bool) {
	for _, v := range Passes() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
