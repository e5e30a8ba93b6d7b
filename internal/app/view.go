package app

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"

	"github.com/minhng/asreview/internal/batch"
	"github.com/minhng/asreview/internal/ui"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.phase {
	case phasePick:
		return m.viewPicker()
	case phaseRows:
		return m.viewRows()
	default:
		return m.viewReview()
	}
}

func (m Model) viewPicker() string {
	var sections []string
	if len(m.picker.Items()) == 0 {
		sections = append(sections, ui.TitleStyle.Render("ASREVIEW"))
		sections = append(sections, "")
		sections = append(sections, ui.DimStyle.Render("No CSV files found in the batches directory."))
	} else {
		sections = append(sections, m.picker.View())
	}
	if m.notice != "" {
		sections = append(sections, m.renderNotice())
	}
	sections = append(sections, m.renderFooter([]footerKey{
		{"↑↓", "navigate"},
		{"enter", "confirm batch"},
		{"q", "quit"},
	}))
	return strings.Join(sections, "\n")
}

func (m Model) viewRows() string {
	var sections []string
	sections = append(sections, m.rows.View())
	sections = append(sections, m.renderFooter([]footerKey{
		{"↑↓", "navigate"},
		{"space", "select"},
		{"enter", "confirm row"},
		{"esc", "back"},
	}))
	return strings.Join(sections, "\n")
}

func (m Model) viewReview() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderRemaining())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderPreview())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.sess.Len() == 0 {
		sections = append(sections, ui.DimStyle.Render("  No records in this batch."))
	} else if m.sess.DetailVisible() {
		sections = append(sections, m.renderDetail())
	} else {
		sections = append(sections, ui.DimStyle.Render("  Press enter to confirm the row selection and show details."))
	}

	if m.notice != "" {
		sections = append(sections, m.renderNotice())
	}
	sections = append(sections, m.renderReviewFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("ASREVIEW")
	pass := ui.DimStyle.Render(" — " + m.variant.Name + " pass")
	name := ui.DimStyle.Render(" — " + m.batchName)
	return title + pass + name
}

func (m Model) renderRemaining() string {
	remaining := m.sess.Remaining()
	if remaining > 0 {
		return ui.RemainingStyle.Render(fmt.Sprintf("Tags remaining: %d of %d", remaining, m.sess.Len()))
	}
	return ui.RemainingDoneStyle.Render("All tags updated!")
}

// renderPreview shows a window of rows around the cursor: index, tag,
// confirmation mark, and the working transcript.
func (m Model) renderPreview() string {
	n := m.sess.Len()
	if n == 0 {
		return ui.DimStyle.Render("  (empty batch)")
	}

	visible := m.previewRows()
	start := m.sess.Cursor() - visible/2
	if start > n-visible {
		start = n - visible
	}
	if start < 0 {
		start = 0
	}
	end := min(n, start+visible)

	var lines []string
	for i := start; i < end; i++ {
		marker := "  "
		if i == m.sess.Cursor() {
			marker = ui.SelectedStyle.Render("> ")
		}

		tag := m.sess.TagAt(i)
		tagCell := padRight(renderTag(tag), 3)

		var confirmCell string
		if m.variant.Confirm {
			confirmCell = "  "
			if m.sess.ConfirmedAt(i) {
				confirmCell = ui.ConfirmedStyle.Render("✓ ")
			}
		}

		text := truncateRunes(m.sess.Transcript(i), max(10, m.width-14))
		lines = append(lines, fmt.Sprintf("%s%3d  %s %s%s", marker, i, tagCell, confirmCell, text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetail() string {
	i := m.sess.Cursor()
	rec := m.rs.Record(i)

	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("DETAIL — record %d of %d", i+1, m.sess.Len())))

	audioLine := "  Audio: " + rec.AudioPath
	if m.audioChecked == i && m.audioMissing {
		audioLine += "  " + ui.ErrorTextStyle.Render("[audio file not found]")
	}
	lines = append(lines, audioLine)

	if m.editing {
		lines = append(lines, "  "+m.editor.View())
	} else {
		wrapped := wrapText(m.sess.Transcript(i), max(10, m.width-6))
		lines = append(lines, "  Transcript: "+wrapped[0])
		for _, wl := range wrapped[1:] {
			lines = append(lines, "              "+wl)
		}
	}

	lines = append(lines, "  Tag: "+renderTag(m.sess.TagAt(i)))

	if m.variant.Confirm {
		mark := ui.DimStyle.Render("unconfirmed")
		if m.sess.ConfirmedAt(i) {
			mark = ui.ConfirmedStyle.Render("confirmed ✓")
		}
		lines = append(lines, "  Row: "+mark)
	}

	if drift := levenshtein.ComputeDistance(rec.Transcript, m.sess.Transcript(i)); drift > 0 {
		lines = append(lines, ui.DimStyle.Render(fmt.Sprintf("  Edited: %d chars from stored transcript", drift)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderNotice() string {
	if m.noticeErr {
		return ui.ErrorStyle.Render("! ") + ui.ErrorTextStyle.Render(m.notice)
	}
	return ui.WarnStyle.Render(m.notice)
}

type footerKey struct {
	key  string
	desc string
}

func (m Model) renderFooter(keys []footerKey) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, ui.FooterKeyStyle.Render(k.key)+ui.FooterDescStyle.Render(" "+k.desc))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderReviewFooter() string {
	keys := []footerKey{
		{"←/→", "prev/next"},
		{"g", "pick row"},
		{"enter", "confirm row"},
		{"y/n", "tag"},
	}
	if m.variant.Confirm {
		keys = append(keys, footerKey{"c", "confirm"})
	}
	keys = append(keys,
		footerKey{"e", "edit"},
		footerKey{"p", "play"},
		footerKey{"x", "export"},
		footerKey{"A", "accept all"},
		footerKey{"r", "reload"},
		footerKey{"esc", "cancel batch"},
		footerKey{"q", "quit"},
	)
	return m.renderFooter(keys)
}

func renderTag(t batch.Tag) string {
	switch t {
	case batch.TagAccept:
		return ui.TagAcceptStyle.Render("Yes")
	case batch.TagReject:
		return ui.TagRejectStyle.Render("No")
	}
	return ui.TagUnsetStyle.Render("—")
}

// previewRows is how many preview lines fit above the detail pane.
func (m Model) previewRows() int {
	if m.height == 0 {
		return 10
	}
	// Reserve: header(1) + remaining(1) + dividers(2) + detail(~7) + notice(1) + footer(1)
	return max(3, m.height-13)
}

// ---------------------------------------------------------------------------
// Text helpers
// ---------------------------------------------------------------------------

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateRunes(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
