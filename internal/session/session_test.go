package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minhng/asreview/internal/batch"
)

// loadSet builds a RecordSet through the real loader so sessions are seeded
// exactly the way the app seeds them.
func loadSet(t *testing.T, csv string) *batch.RecordSet {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rs, err := batch.Load(path, batch.Variant{Audio: batch.AudioFromColumn, Filter: batch.FilterNone}, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return rs
}

func threeRows(t *testing.T) *batch.RecordSet {
	return loadSet(t, "audio_path,transcripts\na.wav,one\nb.wav,two\nc.wav,three\n")
}

func TestInitLengthsAndDefaults(t *testing.T) {
	for _, csv := range []string{
		"audio_path,transcripts\n",
		"audio_path,transcripts\na.wav,one\n",
		"audio_path,transcripts\na.wav,one\nb.wav,two\nc.wav,three\n",
	} {
		rs := loadSet(t, csv)
		s := New(rs, true)

		if s.Len() != rs.Len() {
			t.Errorf("len = %d, want %d", s.Len(), rs.Len())
		}
		if got := len(s.Transcripts()); got != rs.Len() {
			t.Errorf("transcripts len = %d, want %d", got, rs.Len())
		}
		if got := len(s.Tags()); got != rs.Len() {
			t.Errorf("tags len = %d, want %d", got, rs.Len())
		}
		if s.Cursor() != 0 {
			t.Errorf("cursor = %d, want 0", s.Cursor())
		}
		if s.DetailVisible() {
			t.Error("detail pane should be hidden after init")
		}
		if s.Remaining() != rs.Len() {
			t.Errorf("remaining = %d, want %d", s.Remaining(), rs.Len())
		}
	}
}

func TestInitSeedsStoredTags(t *testing.T) {
	rs := loadSet(t, "audio_path,transcripts,tag\na.wav,one,Yes\nb.wav,two,\nc.wav,three,No\n")
	s := New(rs, false)

	want := []batch.Tag{batch.TagAccept, batch.TagUnset, batch.TagReject}
	for i, w := range want {
		if s.TagAt(i) != w {
			t.Errorf("tag %d = %v, want %v", i, s.TagAt(i), w)
		}
	}
	if s.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", s.Remaining())
	}
}

func TestEditTranscript(t *testing.T) {
	s := New(threeRows(t), false)

	if err := s.EditTranscript(1, "earth"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if s.Transcript(1) != "earth" {
		t.Errorf("transcript 1 = %q, want %q", s.Transcript(1), "earth")
	}
	// No other index changes.
	if s.Transcript(0) != "one" || s.Transcript(2) != "three" {
		t.Errorf("neighbors changed: %q, %q", s.Transcript(0), s.Transcript(2))
	}

	if err := s.EditTranscript(3, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
	if err := s.EditTranscript(-1, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestSetTagLastWriteWins(t *testing.T) {
	s := New(threeRows(t), false)

	if err := s.SetTag(0, batch.TagAccept); err != nil {
		t.Fatalf("set tag: %v", err)
	}
	// Idempotent under repeated identical calls.
	if err := s.SetTag(0, batch.TagAccept); err != nil {
		t.Fatalf("set tag again: %v", err)
	}
	if s.TagAt(0) != batch.TagAccept {
		t.Errorf("tag = %v, want accept", s.TagAt(0))
	}

	// Last write wins, no history.
	if err := s.SetTag(0, batch.TagReject); err != nil {
		t.Fatalf("overwrite tag: %v", err)
	}
	if s.TagAt(0) != batch.TagReject {
		t.Errorf("tag = %v, want reject", s.TagAt(0))
	}

	if err := s.SetTag(0, batch.TagUnset); err == nil {
		t.Error("unset is not a valid verdict")
	}
	if err := s.SetTag(5, batch.TagAccept); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestTagAll(t *testing.T) {
	s := New(threeRows(t), false)
	s.TagAll(batch.TagAccept)

	for i := 0; i < s.Len(); i++ {
		if s.TagAt(i) != batch.TagAccept {
			t.Errorf("tag %d = %v, want accept", i, s.TagAt(i))
		}
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", s.Remaining())
	}
}

func TestToggleConfirmed(t *testing.T) {
	s := New(threeRows(t), true)

	if !s.SupportsConfirmation() {
		t.Fatal("confirmation should be enabled")
	}
	if s.ConfirmedAt(1) {
		t.Error("flags should start false")
	}
	if err := s.ToggleConfirmed(1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !s.ConfirmedAt(1) {
		t.Error("flag should be set after toggle")
	}
	if err := s.ToggleConfirmed(1); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if s.ConfirmedAt(1) {
		t.Error("flag should be clear after second toggle")
	}
}

func TestToggleConfirmedUnsupported(t *testing.T) {
	s := New(threeRows(t), false)
	if err := s.ToggleConfirmed(0); !errors.Is(err, ErrNoConfirmation) {
		t.Errorf("err = %v, want ErrNoConfirmation", err)
	}
	if s.ConfirmedAt(0) {
		t.Error("ConfirmedAt must be false without the toggle")
	}
}

func TestSelectRowLeavesDetailHidden(t *testing.T) {
	s := New(threeRows(t), false)

	if err := s.SelectRow(2); err != nil {
		t.Fatalf("select: %v", err)
	}
	if s.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", s.Cursor())
	}
	if s.DetailVisible() {
		t.Error("selecting a row alone must not reveal the detail pane")
	}

	if err := s.ConfirmSelection(1); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if s.Cursor() != 1 || !s.DetailVisible() {
		t.Errorf("cursor = %d, visible = %v; want 1, true", s.Cursor(), s.DetailVisible())
	}

	if err := s.SelectRow(9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
	if err := s.ConfirmSelection(9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestPreviousClampsAtZero(t *testing.T) {
	s := New(threeRows(t), false)

	s.Previous()
	if s.Cursor() != 0 {
		t.Errorf("cursor = %d, want clamp at 0", s.Cursor())
	}
	if !s.DetailVisible() {
		t.Error("previous should resume detail viewing")
	}

	s.ConfirmSelection(2)
	s.Previous()
	if s.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", s.Cursor())
	}
}

func TestNextClampsAtEnd(t *testing.T) {
	// N=1 batch: three next presses keep the cursor at 0 and report the end
	// from the first press on.
	rs := loadSet(t, "audio_path,transcripts\na.wav,only\n")
	s := New(rs, false)

	for i := 0; i < 3; i++ {
		atEnd := s.Next()
		if s.Cursor() != 0 {
			t.Errorf("press %d: cursor = %d, want 0", i+1, s.Cursor())
		}
		if !atEnd {
			t.Errorf("press %d: expected end-of-batch notice", i+1)
		}
		if !s.DetailVisible() {
			t.Errorf("press %d: detail should be visible", i+1)
		}
	}
}

func TestNextAdvancesBeforeEnd(t *testing.T) {
	s := New(threeRows(t), false)

	if atEnd := s.Next(); atEnd || s.Cursor() != 1 {
		t.Errorf("cursor = %d, atEnd = %v; want 1, false", s.Cursor(), atEnd)
	}
	if atEnd := s.Next(); atEnd || s.Cursor() != 2 {
		t.Errorf("cursor = %d, atEnd = %v; want 2, false", s.Cursor(), atEnd)
	}
	if atEnd := s.Next(); !atEnd || s.Cursor() != 2 {
		t.Errorf("cursor = %d, atEnd = %v; want clamp at 2, true", s.Cursor(), atEnd)
	}
}

func TestNavigationOnEmptyBatch(t *testing.T) {
	rs := loadSet(t, "audio_path,transcripts\n")
	s := New(rs, false)

	s.Previous()
	if s.Cursor() != 0 || s.DetailVisible() {
		t.Error("previous on empty batch must not move or reveal detail")
	}
	if s.Next() {
		t.Error("next on empty batch must not report end-of-batch")
	}
	if s.Cursor() != 0 || s.DetailVisible() {
		t.Error("next on empty batch must not move or reveal detail")
	}
}

func TestReconcileReinitializesStaleState(t *testing.T) {
	rs := loadSet(t, "audio_path,transcripts,tag\na.wav,one,Yes\nb.wav,two,No\nc.wav,three,Yes\n")
	s := New(rs, false)

	s.EditTranscript(0, "edited")
	s.SetTag(1, batch.TagAccept)
	s.ConfirmSelection(2)

	// Simulate a stale session: arrays sized N-1 against a fresh N-row load.
	smaller := loadSet(t, "audio_path,transcripts\na.wav,one\nb.wav,two\n")
	if !s.Reconcile(smaller) {
		t.Fatal("length mismatch must trigger reinit")
	}
	if s.Len() != 2 || len(s.Transcripts()) != 2 || len(s.Tags()) != 2 {
		t.Errorf("lengths after reinit = %d/%d/%d, want 2",
			s.Len(), len(s.Transcripts()), len(s.Tags()))
	}
	// State comes fresh from the file, not from the stale arrays.
	if s.Transcript(0) != "one" {
		t.Errorf("transcript 0 = %q, want value from file", s.Transcript(0))
	}
	if s.TagAt(1) != batch.TagUnset {
		t.Errorf("tag 1 = %v, want unset from file", s.TagAt(1))
	}
	if s.Cursor() != 0 || s.DetailVisible() {
		t.Error("reinit must reset cursor and hide detail")
	}
}

func TestReconcileKeepsMatchingState(t *testing.T) {
	rs := loadSet(t, "audio_path,transcripts\na.wav,one\nb.wav,two\n")
	s := New(rs, false)

	s.EditTranscript(1, "edited")
	s.SetTag(0, batch.TagReject)
	s.ConfirmSelection(1)

	if s.Reconcile(rs) {
		t.Fatal("matching lengths must not reinit")
	}
	if s.Transcript(1) != "edited" || s.TagAt(0) != batch.TagReject {
		t.Error("reconcile must preserve work when lengths match")
	}
	if s.Cursor() != 1 || !s.DetailVisible() {
		t.Error("reconcile must preserve cursor and detail state")
	}
}

func TestWorkingCopiesAreIsolated(t *testing.T) {
	s := New(threeRows(t), false)

	ts := s.Transcripts()
	ts[0] = "mutated"
	if s.Transcript(0) == "mutated" {
		t.Error("Transcripts must return a copy")
	}

	tags := s.Tags()
	tags[0] = batch.TagReject
	if s.TagAt(0) == batch.TagReject {
		t.Error("Tags must return a copy")
	}
}
