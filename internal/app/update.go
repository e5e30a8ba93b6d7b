package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minhng/asreview/internal/batch"
	"github.com/minhng/asreview/internal/session"
)

// Update processes messages and returns the updated model and any commands.
// Each user action maps to exactly one session transition followed by one
// render; there is no hidden reentrancy.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(msg.Width, max(4, msg.Height-4))
		m.rows.SetSize(msg.Width, max(4, msg.Height-4))
		m.editor.Width = max(20, msg.Width-14)
		return m, nil

	case BatchesListedMsg:
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			m.noticeErr = true
			return m, clearNoticeCmd()
		}
		items := make([]list.Item, 0, len(msg.Files))
		for _, f := range msg.Files {
			items = append(items, batchItem{name: f})
		}
		m.picker.SetItems(items)
		return m, nil

	case BatchLoadedMsg:
		return m.handleBatchLoaded(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.notice = "Export failed: " + msg.Err.Error()
			m.noticeErr = true
		} else {
			m.notice = fmt.Sprintf("Exported %d rows to %s", msg.Rows, msg.Path)
			m.noticeErr = false
		}
		return m, clearNoticeCmd()

	case AudioStatMsg:
		if m.sess != nil && msg.Index == m.sess.Cursor() {
			m.audioChecked = msg.Index
			m.audioMissing = !msg.OK
		}
		return m, nil

	case PlayerDoneMsg:
		if msg.Err != nil {
			m.notice = "Player: " + msg.Err.Error()
			m.noticeErr = true
			return m, clearNoticeCmd()
		}
		return m, nil

	case ClearNoticeMsg:
		m.notice = ""
		m.noticeErr = false
		return m, nil
	}

	return m, nil
}

// handleBatchLoaded installs a freshly loaded record set. Confirming a new
// batch replaces the session wholesale; reloading the current batch runs the
// stale-state guard instead, so unchanged files keep the reviewer's work.
func (m Model) handleBatchLoaded(msg BatchLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.notice = msg.Err.Error()
		m.noticeErr = true
		return m, clearNoticeCmd()
	}

	if m.phase == phaseReview && m.sess != nil && msg.Name == m.batchName {
		m.rs = msg.Set
		m.sess.Reconcile(msg.Set)
		m.audioChecked = -1
		return m, m.statCursorAudio()
	}

	m.rs = msg.Set
	m.sess = session.New(msg.Set, m.variant.Confirm)
	m.batchName = msg.Name
	m.phase = phaseReview
	m.editing = false
	m.audioChecked = -1
	m.notice = ""
	m.noticeErr = false
	return m, nil
}

// handleKey routes key presses by phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditorKey(msg)
	}

	switch m.phase {
	case phasePick:
		return m.handlePickKey(msg)
	case phaseRows:
		return m.handleRowsKey(msg)
	default:
		return m.handleReviewKey(msg)
	}
}

func (m Model) handlePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		item, ok := m.picker.SelectedItem().(batchItem)
		if !ok {
			return m, nil
		}
		dir := m.cfg.BatchDir(m.variant.Name)
		return m, loadBatchCmd(dir, item.name, m.variant, m.cfg.Audio.Segments)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) handleRowsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.phase = phaseReview
		return m, nil

	case key.Matches(msg, m.keys.Select):
		// Pending selection only; the detail pane stays as it was.
		if item, ok := m.rows.SelectedItem().(rowItem); ok {
			m.sess.SelectRow(item.index)
		}
		m.phase = phaseReview
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if item, ok := m.rows.SelectedItem().(rowItem); ok {
			m.sess.ConfirmSelection(item.index)
		}
		m.phase = phaseReview
		m.audioChecked = -1
		return m, m.statCursorAudio()
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		// Canceling the batch is a hard reset: the session is discarded,
		// not saved.
		m.sess = nil
		m.rs = nil
		m.batchName = ""
		m.phase = phasePick
		m.audioChecked = -1
		return m, listBatchesCmd(m.cfg.BatchDir(m.variant.Name))

	case key.Matches(msg, m.keys.Prev):
		m.sess.Previous()
		m.audioChecked = -1
		return m, m.statCursorAudio()

	case key.Matches(msg, m.keys.Next):
		if m.sess.Next() {
			m.notice = "You are at the last item."
			m.noticeErr = false
		}
		m.audioChecked = -1
		return m, tea.Batch(m.statCursorAudio(), clearNoticeCmd())

	case key.Matches(msg, m.keys.Confirm):
		if m.sess.Len() > 0 && !m.sess.DetailVisible() {
			m.sess.ConfirmSelection(m.sess.Cursor())
			m.audioChecked = -1
			return m, m.statCursorAudio()
		}
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		if m.sess.DetailVisible() {
			m.sess.SetTag(m.sess.Cursor(), batch.TagAccept)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reject):
		if m.sess.DetailVisible() {
			m.sess.SetTag(m.sess.Cursor(), batch.TagReject)
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirmed):
		if m.variant.Confirm && m.sess.DetailVisible() {
			m.sess.ToggleConfirmed(m.sess.Cursor())
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.sess.DetailVisible() && m.sess.Len() > 0 {
			m.editor.SetValue(m.sess.Transcript(m.sess.Cursor()))
			m.editor.CursorEnd()
			m.editing = true
			return m, m.editor.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Play):
		if !m.sess.DetailVisible() || m.sess.Len() == 0 {
			return m, nil
		}
		if m.cfg.Audio.Player == "" {
			m.notice = "No audio player configured."
			m.noticeErr = true
			return m, clearNoticeCmd()
		}
		return m, playAudioCmd(m.cfg.Audio.Player, m.rs.Record(m.sess.Cursor()).AudioPath)

	case key.Matches(msg, m.keys.Rows):
		if m.sess.Len() == 0 {
			return m, nil
		}
		m.rows.SetItems(rowItems(m.sess))
		m.rows.Select(m.sess.Cursor())
		m.phase = phaseRows
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, exportCmd(m.cfg.Export.Path, m.rs, m.sess.Transcripts(), m.sess.Tags())

	case key.Matches(msg, m.keys.Reload):
		dir := m.cfg.BatchDir(m.variant.Name)
		return m, loadBatchCmd(dir, m.batchName, m.variant, m.cfg.Audio.Segments)

	case key.Matches(msg, m.keys.AcceptAll):
		m.sess.TagAll(batch.TagAccept)
		m.notice = "Tagged all rows accept."
		m.noticeErr = false
		return m, clearNoticeCmd()
	}

	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.sess.EditTranscript(m.sess.Cursor(), m.editor.Value())
		m.editing = false
		m.editor.Blur()
		return m, nil
	case "esc":
		m.editing = false
		m.editor.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// statCursorAudio checks the cursor row's audio reference on disk.
func (m Model) statCursorAudio() tea.Cmd {
	if m.sess == nil || m.rs == nil || m.sess.Len() == 0 {
		return nil
	}
	i := m.sess.Cursor()
	return statAudioCmd(i, m.rs.Record(i).AudioPath)
}
