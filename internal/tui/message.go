package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// BlinkInterval is the text cursor blink period.
const BlinkInterval = 500 * time.Millisecond

// Flash messages shown under the task list.
const (
	msgTaskCreated     = "Task created successfully!"
	msgTaskUpdated     = "Task updated successfully!"
	msgSaveFailed      = "Failed to save task to database!"
	msgTitleRequired   = "Task title cannot be empty!"
	msgTaskUncompleted = "Task uncompleted!"
	msgUpdateFailed    = "Failed to update task!"
	msgTaskDeleted     = "Task deleted!"
	msgDeleteFailed    = "Failed to delete task!"
	msgLoadFailed      = "Failed to load tasks!"
)

// clearMessageMsg expires the flash message with the same id.
type clearMessageMsg struct {
	id int
}

// blinkMsg flips the cursor of the dialog opened with the same id.
type blinkMsg struct {
	id int
}

// flash shows text until the message duration passes or another message
// replaces it.
func (m *Model) flash(text string) tea.Cmd {
	m.message = text
	m.messageID++
	id := m.messageID
	return tea.Tick(m.messageDuration, func(time.Time) tea.Msg {
		return clearMessageMsg{id: id}
	})
}

func (m *Model) blink() tea.Cmd {
	id := m.blinkID
	return tea.Tick(BlinkInterval, func(time.Time) tea.Msg {
		return blinkMsg{id: id}
	})
}
