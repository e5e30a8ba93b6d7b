// Package session holds the mutable working state for one confirmed review
// batch: transcript edits, tags, confirmation flags, and the cursor.
//
// A Session is scoped to a single batch. Confirming a different batch, or
// canceling the current one, replaces the whole session; nothing is merged
// and nothing persists unless the batch exporter is invoked explicitly.
package session

import (
	"errors"
	"fmt"

	"github.com/minhng/asreview/internal/batch"
)

// ErrOutOfRange is returned for operations on a record index outside the
// loaded batch.
var ErrOutOfRange = errors.New("record index out of range")

// ErrNoConfirmation is returned when confirmation flags are toggled on a
// variant that does not carry them.
var ErrNoConfirmation = errors.New("confirmation not supported by this pass")

// Session is the working copy of a loaded batch, keyed by position into the
// post-filter RecordSet. All per-record slices stay length-synchronized with
// the currently loaded record count; Reconcile restores that invariant when
// a reload changes the count.
type Session struct {
	n             int
	cursor        int
	transcripts   []string
	tags          []batch.Tag
	confirmed     []bool // nil when the variant has no confirmation toggle
	detailVisible bool
}

// New creates a session seeded from rs. confirm enables the per-row
// confirmation toggle.
func New(rs *batch.RecordSet, confirm bool) *Session {
	s := &Session{}
	if confirm {
		s.confirmed = []bool{}
	}
	s.Init(rs)
	return s
}

// Init re-derives all working state from rs: transcripts and tags from the
// stored values, confirmation flags all-false, cursor at zero, detail pane
// hidden. This is the only place defaults are established.
func (s *Session) Init(rs *batch.RecordSet) {
	s.n = rs.Len()
	s.transcripts = rs.Transcripts()
	s.tags = rs.Tags()
	if s.confirmed != nil {
		s.confirmed = make([]bool, s.n)
	}
	s.cursor = 0
	s.detailVisible = false
}

// Reconcile guards against stale state: if any per-record slice no longer
// matches the freshly loaded record count, the session is reinitialized from
// rs. Returns true when a reinit happened. Call this at the top of every
// load path.
func (s *Session) Reconcile(rs *batch.RecordSet) bool {
	n := rs.Len()
	stale := s.n != n || len(s.transcripts) != n || len(s.tags) != n ||
		(s.confirmed != nil && len(s.confirmed) != n)
	if stale {
		s.Init(rs)
	}
	return stale
}

// Len returns the number of records under review.
func (s *Session) Len() int { return s.n }

// Cursor returns the position currently under detail review.
func (s *Session) Cursor() int { return s.cursor }

// DetailVisible reports whether the detail pane for the cursor is shown.
func (s *Session) DetailVisible() bool { return s.detailVisible }

// SupportsConfirmation reports whether the confirmation toggle is enabled.
func (s *Session) SupportsConfirmation() bool { return s.confirmed != nil }

// Transcript returns the current transcript text at i.
func (s *Session) Transcript(i int) string { return s.transcripts[i] }

// TagAt returns the current tag at i.
func (s *Session) TagAt(i int) batch.Tag { return s.tags[i] }

// ConfirmedAt returns the confirmation flag at i; always false when the
// variant has no toggle.
func (s *Session) ConfirmedAt(i int) bool {
	return s.confirmed != nil && s.confirmed[i]
}

// Transcripts returns a copy of the working transcript values.
func (s *Session) Transcripts() []string {
	out := make([]string, len(s.transcripts))
	copy(out, s.transcripts)
	return out
}

// Tags returns a copy of the working tag values.
func (s *Session) Tags() []batch.Tag {
	out := make([]batch.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Remaining counts records whose tag is still unset. Informational only;
// it never blocks navigation or export.
func (s *Session) Remaining() int {
	n := 0
	for _, t := range s.tags {
		if t == batch.TagUnset {
			n++
		}
	}
	return n
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= s.n {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, s.n)
	}
	return nil
}

// EditTranscript replaces the working transcript at i. No other field
// changes.
func (s *Session) EditTranscript(i int, text string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.transcripts[i] = text
	return nil
}

// SetTag records a verdict at i. Only accept and reject are valid; the last
// write wins unconditionally.
func (s *Session) SetTag(i int, t batch.Tag) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if t != batch.TagAccept && t != batch.TagReject {
		return fmt.Errorf("set tag: invalid value %d", t)
	}
	s.tags[i] = t
	return nil
}

// TagAll sets every record's tag to t.
func (s *Session) TagAll(t batch.Tag) {
	for i := range s.tags {
		s.tags[i] = t
	}
}

// ToggleConfirmed flips the confirmation flag at i. The flag is cosmetic
// working state; it gates neither navigation nor export.
func (s *Session) ToggleConfirmed(i int) error {
	if s.confirmed == nil {
		return ErrNoConfirmation
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.confirmed[i] = !s.confirmed[i]
	return nil
}

// SelectRow moves the cursor to i without revealing the detail pane; the
// row stays a pending selection until confirmed.
func (s *Session) SelectRow(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.cursor = i
	return nil
}

// ConfirmSelection moves the cursor to i and shows the detail pane. This is
// the only operation that makes the detail pane visible from a selection.
func (s *Session) ConfirmSelection(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.cursor = i
	s.detailVisible = true
	return nil
}

// Previous moves the cursor back one record, clamping at zero, and resumes
// detail viewing. Safe no-op on an empty batch.
func (s *Session) Previous() {
	if s.n == 0 {
		return
	}
	if s.cursor > 0 {
		s.cursor--
	}
	s.detailVisible = true
}

// Next advances the cursor one record and resumes detail viewing. Past the
// last record the cursor clamps to the end and atEnd reports the non-fatal
// end-of-batch condition. Safe no-op on an empty batch.
func (s *Session) Next() (atEnd bool) {
	if s.n == 0 {
		return false
	}
	s.cursor++
	if s.cursor >= s.n {
		s.cursor = s.n - 1
		atEnd = true
	}
	s.detailVisible = true
	return atEnd
}
