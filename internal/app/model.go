// Package app implements the bubbletea front end for batch transcript
// review. One review pass runs per program: the user confirms a batch file,
// works through its records, and exports the session state on demand.
package app

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minhng/asreview/internal/batch"
	"github.com/minhng/asreview/internal/config"
	"github.com/minhng/asreview/internal/session"
	"github.com/minhng/asreview/internal/ui"
)

type phase int

const (
	phasePick   phase = iota // choosing a batch file
	phaseReview              // working through the confirmed batch
	phaseRows                // row-picker overlay
)

// Model is the root bubbletea model.
type Model struct {
	cfg     config.Config
	variant batch.Variant

	phase phase

	// Batch picker
	picker list.Model

	// Confirmed batch
	batchName string
	rs        *batch.RecordSet
	sess      *session.Session

	// Row picker overlay
	rows list.Model

	// Transcript editor
	editor  textinput.Model
	editing bool

	// Audio existence for the cursor row; -1 means not checked yet
	audioChecked int
	audioMissing bool

	keys keyMap

	// Transient status line
	notice    string
	noticeErr bool

	width  int
	height int
}

// New creates a Model for the given pass.
func New(cfg config.Config, v batch.Variant) Model {
	picker := list.New([]list.Item{}, batchItemDelegate{}, 0, 0)
	picker.Title = "Batch files — " + v.Name + " pass"
	picker.Styles.Title = ui.TitleStyle
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)
	picker.DisableQuitKeybindings()

	rows := list.New([]list.Item{}, rowItemDelegate{}, 0, 0)
	rows.Title = "Select a row to view details"
	rows.Styles.Title = ui.TitleStyle
	rows.SetShowStatusBar(false)
	rows.SetFilteringEnabled(false)
	rows.SetShowHelp(false)
	rows.DisableQuitKeybindings()

	editor := textinput.New()
	editor.Prompt = "Transcript: "

	return Model{
		cfg:          cfg,
		variant:      v,
		phase:        phasePick,
		picker:       picker,
		rows:         rows,
		editor:       editor,
		audioChecked: -1,
		keys:         newKeyMap(),
	}
}

// Init lists the batch files for the pass directory.
func (m Model) Init() tea.Cmd {
	return listBatchesCmd(m.cfg.BatchDir(m.variant.Name))
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func listBatchesCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := batch.ListBatches(dir)
		return BatchesListedMsg{Files: files, Err: err}
	}
}

func loadBatchCmd(dir, name string, v batch.Variant, segmentDir string) tea.Cmd {
	return func() tea.Msg {
		rs, err := batch.Load(filepath.Join(dir, name), v, segmentDir)
		return BatchLoadedMsg{Name: name, Set: rs, Err: err}
	}
}

func exportCmd(path string, rs *batch.RecordSet, transcripts []string, tags []batch.Tag) tea.Cmd {
	return func() tea.Msg {
		err := batch.ExportFile(path, rs, transcripts, tags)
		return ExportDoneMsg{Path: path, Rows: rs.Len(), Err: err}
	}
}

func statAudioCmd(index int, path string) tea.Cmd {
	return func() tea.Msg {
		_, err := os.Stat(path)
		return AudioStatMsg{Index: index, OK: err == nil}
	}
}

func playAudioCmd(player, path string) tea.Cmd {
	return tea.ExecProcess(exec.Command(player, path), func(err error) tea.Msg {
		return PlayerDoneMsg{Err: err}
	})
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}

// ---------------------------------------------------------------------------
// List items
// ---------------------------------------------------------------------------

type batchItem struct {
	name string
}

func (b batchItem) Title() string       { return b.name }
func (b batchItem) Description() string { return "" }
func (b batchItem) FilterValue() string { return b.name }

type batchItemDelegate struct{}

func (d batchItemDelegate) Height() int                             { return 1 }
func (d batchItemDelegate) Spacing() int                            { return 0 }
func (d batchItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d batchItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(batchItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+entry.name)
}

type rowItem struct {
	index   int
	preview string
}

func (r rowItem) Title() string       { return r.preview }
func (r rowItem) Description() string { return "" }
func (r rowItem) FilterValue() string { return r.preview }

type rowItemDelegate struct{}

func (d rowItemDelegate) Height() int                             { return 1 }
func (d rowItemDelegate) Spacing() int                            { return 0 }
func (d rowItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d rowItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(rowItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%sIndex %d: %s", prefix, entry.index, entry.preview)
}

// rowItems builds the row-picker entries, previewing the first part of each
// working transcript (the same shape the detail selector always had).
func rowItems(s *session.Session) []list.Item {
	items := make([]list.Item, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		items = append(items, rowItem{index: i, preview: truncateRunes(s.Transcript(i), 50)})
	}
	return items
}
