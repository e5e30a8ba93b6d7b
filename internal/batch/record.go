// Package batch loads, filters, and exports transcript review batches
// stored as flat CSV files.
package batch

// Tag is the tri-state review verdict for a record.
type Tag int

const (
	TagUnset Tag = iota
	TagAccept
	TagReject
)

// String returns the persisted form of the tag: "Yes", "No", or empty.
func (t Tag) String() string {
	switch t {
	case TagAccept:
		return "Yes"
	case TagReject:
		return "No"
	}
	return ""
}

// ParseTag maps a stored cell value to a Tag. The persisted schema is
// case-sensitive; anything other than "Yes" or "No" reads as unset
// (older batch files carry unset tags as empty cells or the literal "None").
func ParseTag(s string) Tag {
	switch s {
	case "Yes":
		return TagAccept
	case "No":
		return TagReject
	}
	return TagUnset
}

// Record is one reviewable unit: an audio locator, its machine transcript,
// and the stored verdict from a previous pass, if any.
type Record struct {
	AudioPath  string
	Transcript string
	Tag        Tag
}

// RecordSet is an ordered, fixed-length sequence of records loaded from one
// batch file. Record order is exactly the stored order.
type RecordSet struct {
	name    string
	records []Record
	hasTags bool
}

// Name returns the batch file name the set was loaded from.
func (rs *RecordSet) Name() string { return rs.name }

// Len returns the number of records.
func (rs *RecordSet) Len() int { return len(rs.records) }

// HasTags reports whether the backing file carried a tag column.
func (rs *RecordSet) HasTags() bool { return rs.hasTags }

// Record returns the record at position i.
func (rs *RecordSet) Record(i int) Record { return rs.records[i] }

// Transcripts returns a fresh copy of the stored transcript values,
// suitable for seeding session working state.
func (rs *RecordSet) Transcripts() []string {
	out := make([]string, len(rs.records))
	for i, r := range rs.records {
		out[i] = r.Transcript
	}
	return out
}

// Tags returns a fresh copy of the stored tag values. Files without a tag
// column yield all-unset.
func (rs *RecordSet) Tags() []Tag {
	out := make([]Tag, len(rs.records))
	for i, r := range rs.records {
		out[i] = r.Tag
	}
	return out
}
