package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/heroman/heroman/internal/domain"
)

// focus is the dialog element receiving keys.
type focus int

const (
	focusNone focus = iota
	focusTitle
	focusDescription
	focusType
	focusDifficulty
	focusSave
	focusCancel
)

// focusRing is the Tab order of the dialog.
var focusRing = []focus{focusTitle, focusDescription, focusType, focusDifficulty, focusSave, focusCancel}

// dialogAction is what the dialog asks the app to do after a key or click.
type dialogAction int

const (
	dialogStay dialogAction = iota
	dialogSave
	dialogClose
)

// dialog is the new/edit task form.
type dialog struct {
	// editID is the task being edited, zero for a new task.
	editID      int64
	title       Field
	description Field
	taskType    domain.TaskType
	difficulty  domain.Difficulty
	focus       focus
	keys        dialogKeyMap
}

func newTaskDialog() *dialog {
	return &dialog{
		title:       NewField(domain.MaxTitleLength),
		description: NewField(domain.MaxDescriptionLength),
		taskType:    domain.TypeHabit,
		difficulty:  domain.DifficultyMedium,
		keys:        defaultDialogKeys(),
	}
}

func editTaskDialog(t *domain.Task) *dialog {
	d := newTaskDialog()
	d.editID = t.ID
	d.title.SetValue(t.Title)
	d.description.SetValue(t.Description)
	d.taskType = t.Type
	d.difficulty = t.Difficulty
	return d
}

// isNew reports whether saving creates a task.
func (d *dialog) isNew() bool {
	return d.editID == 0
}

// editingText reports whether a text field has focus.
func (d *dialog) editingText() bool {
	return d.focus == focusTitle || d.focus == focusDescription
}

// activeField returns the focused text field, or nil.
func (d *dialog) activeField() *Field {
	switch d.focus {
	case focusTitle:
		return &d.title
	case focusDescription:
		return &d.description
	}
	return nil
}

// setFocus moves focus, putting the cursor at the end of a text field.
func (d *dialog) setFocus(f focus) {
	d.focus = f
	if field := d.activeField(); field != nil {
		field.End()
	}
}

// step moves focus by delta around the ring. From no focus, forward starts
// at the title and backward at cancel.
func (d *dialog) step(delta int) {
	idx := -1
	for i, f := range focusRing {
		if f == d.focus {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta > 0 {
			d.setFocus(focusRing[0])
		} else {
			d.setFocus(focusRing[len(focusRing)-1])
		}
		return
	}
	n := len(focusRing)
	d.setFocus(focusRing[((idx+delta)%n+n)%n])
}

// handleKey applies a key press.
func (d *dialog) handleKey(msg tea.KeyMsg) dialogAction {
	switch {
	case key.Matches(msg, d.keys.Save):
		return dialogSave
	case key.Matches(msg, d.keys.Next):
		d.step(1)
		return dialogStay
	case key.Matches(msg, d.keys.Prev):
		d.step(-1)
		return dialogStay
	case key.Matches(msg, d.keys.Close):
		if d.editingText() {
			d.focus = focusNone
			return dialogStay
		}
		return dialogClose
	}

	if field := d.activeField(); field != nil {
		d.editKey(field, msg)
		return dialogStay
	}

	activate := msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace
	if !activate {
		return dialogStay
	}
	switch d.focus {
	case focusType:
		d.taskType = d.taskType.Next()
	case focusDifficulty:
		d.difficulty = d.difficulty.Next()
	case focusSave:
		return dialogSave
	case focusCancel:
		return dialogClose
	}
	return dialogStay
}

// editKey applies a key to the focused text field.
func (d *dialog) editKey(field *Field, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		if d.focus == focusTitle {
			d.setFocus(focusDescription)
		} else {
			d.focus = focusType
		}
	case tea.KeyRunes:
		field.Insert(msg.Runes...)
	case tea.KeySpace:
		field.Insert(' ')
	case tea.KeyBackspace:
		field.Backspace()
	case tea.KeyDelete:
		field.Delete()
	case tea.KeyLeft:
		field.Left()
	case tea.KeyRight:
		field.Right()
	case tea.KeyHome, tea.KeyCtrlA:
		field.Home()
	case tea.KeyEnd, tea.KeyCtrlE:
		field.End()
	}
}

// handleClick applies a left click on z. ok is false when the click hit
// nothing, which drops text focus.
func (d *dialog) handleClick(z zone, ok bool) dialogAction {
	if !ok {
		d.focus = focusNone
		return dialogStay
	}
	switch z.kind {
	case zoneTitle:
		d.setFocus(focusTitle)
	case zoneDescription:
		d.setFocus(focusDescription)
	case zoneType:
		d.focus = focusType
		d.taskType = d.taskType.Next()
	case zoneDifficulty:
		d.focus = focusDifficulty
		d.difficulty = d.difficulty.Next()
	case zoneSave:
		return dialogSave
	case zoneCancel:
		return dialogClose
	default:
		d.focus = focusNone
	}
	return dialogStay
}

const dialogLabelWidth = 13

// render draws the dialog into s. fieldWidth is the number of cells for
// text fields; showCursor is the blink phase.
func (d *dialog) render(s *screen, fieldWidth int, showCursor bool) {
	heading := "Edit Task"
	if d.isNew() {
		heading = "New Task"
	}
	s.text(heading, titleStyle)
	s.newline()
	s.newline()

	d.renderField(s, "Title:", &d.title, focusTitle, zoneTitle, fieldWidth, showCursor)
	d.renderField(s, "Description:", &d.description, focusDescription, zoneDescription, fieldWidth, showCursor)
	d.renderChoice(s, "Type:", d.taskType.String(), focusType, zoneType)
	d.renderChoice(s, "Difficulty:", d.difficulty.String(), focusDifficulty, zoneDifficulty)
	s.newline()

	s.button("[ Save ]", d.styleFor(focusSave, buttonStyle), zoneSave, 0)
	s.plain("  ")
	s.button("[ Cancel ]", d.styleFor(focusCancel, buttonStyle), zoneCancel, 0)
	s.newline()
}

func (d *dialog) styleFor(f focus, base lipgloss.Style) lipgloss.Style {
	if d.focus == f {
		return focusedStyle
	}
	return base
}

func (d *dialog) renderField(s *screen, label string, field *Field, f focus, kind zoneKind, width int, showCursor bool) {
	s.text(fmt.Sprintf("%-*s", dialogLabelWidth, label), d.styleFor(f, statsStyle))

	runes, cursor := field.window(width)
	start := s.x
	if d.focus == f && showCursor {
		before := string(runes[:cursor])
		under := " "
		after := ""
		if cursor < len(runes) {
			under = string(runes[cursor])
			after = string(runes[cursor+1:])
		}
		s.plain(before)
		s.text(under, cursorStyle)
		s.plain(after)
	} else {
		s.plain(string(runes))
	}
	if used := s.x - start; used < width {
		s.text(strings.Repeat("_", width-used), dimStyle)
	}
	s.zones = append(s.zones, zone{rect: rect{x: 0, y: len(s.lines), w: start + width, h: 1}, kind: kind})
	s.newline()
}

func (d *dialog) renderChoice(s *screen, label, value string, f focus, kind zoneKind) {
	s.text(fmt.Sprintf("%-*s", dialogLabelWidth, label), d.styleFor(f, statsStyle))
	s.button("< "+value+" >", d.styleFor(f, buttonStyle), kind, 0)
	s.newline()
}

// task returns the dialog's values as a task.
func (d *dialog) task() *domain.Task {
	return &domain.Task{
		ID:          d.editID,
		Title:       d.title.Value(),
		Description: d.description.Value(),
		Type:        d.taskType,
		Difficulty:  d.difficulty,
	}
}
