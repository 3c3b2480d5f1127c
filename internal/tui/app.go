// Package tui is the interactive task list: a full-screen terminal program
// driven by keyboard and mouse.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/service"
)

// AppTitle is drawn at the top of every screen.
const AppTitle = "Habitica Clone"

// Service is the part of service.HabitService the TUI uses.
type Service interface {
	ListTasks(ctx context.Context, filter domain.Filter, sort domain.Sort) ([]*domain.Task, error)
	CreateTask(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, input service.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleTask(ctx context.Context, id int64, now time.Time) (*service.ToggleResult, error)
	Player(ctx context.Context) (*domain.PlayerStats, error)
	Rollover(ctx context.Context, now time.Time) (*service.RolloverResult, error)
}

// Options configures a Model.
type Options struct {
	Filter          domain.Filter
	Sort            domain.Sort
	MessageDuration time.Duration
	// Now is the clock used for completions and rollover. Nil means time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the habit tracker.
type Model struct {
	ctx             context.Context
	svc             Service
	log             zerolog.Logger
	now             func() time.Time
	messageDuration time.Duration

	tasks    []*domain.Task
	player   *domain.PlayerStats
	filter   domain.Filter
	sort     domain.Sort
	selected int
	offset   int

	dialog   *dialog
	cursorOn bool
	blinkID  int

	message   string
	messageID int

	width    int
	height   int
	keys     listKeyMap
	help     help.Model
	quitting bool
}

const (
	headerLines = 6
	minVisible  = 3
)

// New creates the model and loads the task list.
func New(ctx context.Context, svc Service, log zerolog.Logger, opts Options) *Model {
	m := &Model{
		ctx:             ctx,
		svc:             svc,
		log:             log,
		now:             opts.Now,
		messageDuration: opts.MessageDuration,
		filter:          opts.Filter,
		sort:            opts.Sort,
		keys:            defaultListKeys(),
		help:            help.New(),
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.messageDuration <= 0 {
		m.messageDuration = 3 * time.Second
	}
	m.refresh()
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, svc Service, log zerolog.Logger, opts Options) error {
	p := tea.NewProgram(
		New(ctx, svc, log, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// Init runs the daily rollover.
func (m *Model) Init() tea.Cmd {
	res, err := m.svc.Rollover(m.ctx, m.now())
	if err != nil {
		m.log.Error().Err(err).Msg("rollover failed")
		return m.flash("Failed to start a new day!")
	}
	if !res.Ran || (res.Missed == 0 && res.Reset == 0) {
		return nil
	}

	m.refresh()
	if res.Missed > 0 {
		return m.flash(fmt.Sprintf("New day! %d missed dailies cost %d HP", res.Missed, res.Damage))
	}
	return m.flash("New day! Dailies are ready again")
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.dialog != nil {
			return m, m.dialogKey(msg)
		}
		return m, m.listKey(msg)

	case tea.MouseMsg:
		return m, m.mouse(msg)

	case blinkMsg:
		if m.dialog == nil || msg.id != m.blinkID {
			return m, nil
		}
		m.cursorOn = !m.cursorOn
		return m, m.blink()

	case clearMessageMsg:
		if msg.id == m.messageID {
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

// ============================================================================
// Main screen
// ============================================================================

func (m *Model) listKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.New):
		return m.openDialog(newTaskDialog())
	case key.Matches(msg, m.keys.Edit):
		if t := m.current(); t != nil {
			return m.openDialog(editTaskDialog(t))
		}
	case key.Matches(msg, m.keys.Delete):
		if t := m.current(); t != nil {
			return m.deleteTask(t.ID)
		}
	case key.Matches(msg, m.keys.Toggle):
		if t := m.current(); t != nil {
			return m.toggleTask(t.ID)
		}
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.refresh()
	case key.Matches(msg, m.keys.Sort):
		m.sort = m.sort.Next()
		m.refresh()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ensureVisible()
	}
	return nil
}

func (m *Model) mouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	if m.dialog == nil {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.move(-1)
			return nil
		case tea.MouseButtonWheelDown:
			m.move(1)
			return nil
		}
	}
	if msg.Button != tea.MouseButtonLeft {
		return nil
	}

	z, ok := m.render().hit(msg.X, msg.Y)
	if m.dialog != nil {
		m.cursorOn = true
		return m.dialogAction(m.dialog.handleClick(z, ok))
	}
	if !ok {
		return nil
	}

	switch z.kind {
	case zoneNewTask:
		return m.openDialog(newTaskDialog())
	case zoneQuit:
		m.quitting = true
		return tea.Quit
	case zoneTaskRow:
		m.selectTask(z.taskID)
		return m.toggleTask(z.taskID)
	case zoneTaskEdit:
		m.selectTask(z.taskID)
		if t := m.current(); t != nil {
			return m.openDialog(editTaskDialog(t))
		}
	case zoneTaskDelete:
		return m.deleteTask(z.taskID)
	}
	return nil
}

func (m *Model) toggleTask(id int64) tea.Cmd {
	res, err := m.svc.ToggleTask(m.ctx, id, m.now())
	if err != nil {
		m.log.Error().Err(err).Int64("task_id", id).Msg("toggle failed")
		return m.flash(msgUpdateFailed)
	}

	m.refresh()
	m.selectTask(id)
	if res.Completed {
		return m.flash(fmt.Sprintf("Task completed! +%d XP", res.Reward))
	}
	return m.flash(msgTaskUncompleted)
}

func (m *Model) deleteTask(id int64) tea.Cmd {
	if err := m.svc.DeleteTask(m.ctx, id); err != nil {
		m.log.Error().Err(err).Int64("task_id", id).Msg("delete failed")
		return m.flash(msgDeleteFailed)
	}

	m.refresh()
	return m.flash(msgTaskDeleted)
}

// refresh reloads the visible tasks and the player.
func (m *Model) refresh() {
	tasks, err := m.svc.ListTasks(m.ctx, m.filter, m.sort)
	if err != nil {
		m.log.Error().Err(err).Msg("list tasks failed")
		m.message = msgLoadFailed
		return
	}
	m.tasks = tasks

	player, err := m.svc.Player(m.ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("load player failed")
	} else {
		m.player = player
	}

	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureVisible()
}

func (m *Model) current() *domain.Task {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.selected]
}

func (m *Model) move(delta int) {
	if len(m.tasks) == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	m.ensureVisible()
}

func (m *Model) selectTask(id int64) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.selected = i
			m.ensureVisible()
			return
		}
	}
}

// visibleRows is how many task rows fit, or 0 for no limit.
func (m *Model) visibleRows() int {
	if m.height == 0 {
		return 0
	}
	footer := 2 + lipgloss.Height(m.help.View(m.keys))
	rows := m.height - headerLines - footer
	if rows < minVisible {
		rows = minVisible
	}
	return rows
}

// ensureVisible scrolls so the selected row is on screen.
func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	if rows == 0 {
		m.offset = 0
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if maxOffset := len(m.tasks) - rows; m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// ============================================================================
// Dialog
// ============================================================================

func (m *Model) openDialog(d *dialog) tea.Cmd {
	m.dialog = d
	m.cursorOn = true
	m.blinkID++
	return m.blink()
}

func (m *Model) closeDialog() {
	m.dialog = nil
	m.blinkID++
}

func (m *Model) dialogKey(msg tea.KeyMsg) tea.Cmd {
	m.cursorOn = true
	return m.dialogAction(m.dialog.handleKey(msg))
}

func (m *Model) dialogAction(action dialogAction) tea.Cmd {
	switch action {
	case dialogSave:
		return m.saveDialog()
	case dialogClose:
		m.closeDialog()
	}
	return nil
}

// saveDialog creates or updates the task. The dialog stays open when the
// save fails so nothing typed is lost.
func (m *Model) saveDialog() tea.Cmd {
	t := m.dialog.task()
	if strings.TrimSpace(t.Title) == "" {
		m.dialog.setFocus(focusTitle)
		return m.flash(msgTitleRequired)
	}

	var (
		saved *domain.Task
		err   error
		done  string
	)
	if m.dialog.isNew() {
		saved, err = m.svc.CreateTask(m.ctx, service.CreateTaskInput{
			Title:       t.Title,
			Description: t.Description,
			Difficulty:  &t.Difficulty,
			Type:        &t.Type,
		})
		done = msgTaskCreated
	} else {
		saved, err = m.svc.UpdateTask(m.ctx, t.ID, service.UpdateTaskInput{
			Title:       &t.Title,
			Description: &t.Description,
			Difficulty:  &t.Difficulty,
			Type:        &t.Type,
		})
		done = msgTaskUpdated
	}
	if err != nil {
		m.log.Error().Err(err).Int64("task_id", t.ID).Msg("save task failed")
		return m.flash(msgSaveFailed)
	}

	m.closeDialog()
	m.refresh()
	m.selectTask(saved.ID)
	return m.flash(done)
}

// ============================================================================
// View
// ============================================================================

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render().String()
}

// render draws the current screen and its click zones.
func (m *Model) render() *screen {
	s := &screen{}
	s.text(AppTitle, titleStyle)
	s.newline()

	if m.dialog != nil {
		s.newline()
		m.dialog.render(s, m.fieldWidth(), m.cursorOn)
		s.newline()
		s.text(m.message, messageStyle)
		s.newline()
		s.plain(m.help.View(m.dialog.keys))
		s.newline()
		return s
	}

	m.renderStats(s)
	s.newline()

	s.button("[ New Task ]", buttonStyle, zoneNewTask, 0)
	s.plain("  ")
	s.button("[ Quit ]", buttonStyle, zoneQuit, 0)
	s.newline()

	s.text(fmt.Sprintf("Filter: %s   Sort: %s   Tasks: %d", m.filter, m.sort, len(m.tasks)), dimStyle)
	s.newline()
	s.newline()

	if len(m.tasks) == 0 {
		s.text("No tasks yet. Press n or click [ New Task ] to add one.", dimStyle)
		s.newline()
	}
	end := len(m.tasks)
	if rows := m.visibleRows(); rows > 0 && m.offset+rows < end {
		end = m.offset + rows
	}
	for i := m.offset; i < end; i++ {
		m.renderRow(s, m.tasks[i], i == m.selected)
	}

	s.newline()
	s.text(m.message, messageStyle)
	s.newline()
	s.plain(m.help.View(m.keys))
	s.newline()
	return s
}

func (m *Model) renderStats(s *screen) {
	p := m.player
	if p == nil {
		p = domain.NewPlayer()
	}
	s.text(fmt.Sprintf("HP %d/%d", p.Health, domain.MaxHealth), healthStyle)
	s.plain("  ")
	s.text(fmt.Sprintf("XP %d", p.Experience), xpStyle)
	s.plain("  ")
	s.text(fmt.Sprintf("Gold %d", p.Gold), goldStyle)
	s.plain("  ")
	s.text(fmt.Sprintf("Level %d  STR %d  INT %d  CON %d  PER %d",
		p.Level, p.Strength, p.Intelligence, p.Constitution, p.Perception), statsStyle)
	s.newline()
}

const rowButtons = "  [E] [D]"

func (m *Model) renderRow(s *screen, t *domain.Task, selected bool) {
	marker := "  "
	if selected {
		marker = "> "
	}
	check := "[ ] "
	if t.Completed {
		check = "[X] "
	}
	meta := fmt.Sprintf(" (%s, %s)", t.Type, t.Difficulty)
	streak := ""
	if t.Streak > 0 {
		streak = fmt.Sprintf(" streak %d", t.Streak)
	}

	title := singleLine(t.Title)
	if m.width > 0 {
		room := m.width - lipgloss.Width(marker+check+meta+streak+rowButtons)
		if room < 10 {
			room = 10
		}
		if domain.RuneCount(title) > room {
			title = domain.Truncate(title, room-1) + "…"
		}
	}

	style := lipgloss.NewStyle()
	if t.Completed {
		style = doneStyle
	}
	if selected {
		style = selectedStyle
	}

	y := len(s.lines)
	s.plain(marker)
	s.text(check+title, style)
	s.text(meta, dimStyle)
	s.text(streak, streakStyle)
	s.zones = append(s.zones, zone{rect: rect{x: 0, y: y, w: s.x, h: 1}, kind: zoneTaskRow, taskID: t.ID})

	s.plain("  ")
	s.button("[E]", buttonStyle, zoneTaskEdit, t.ID)
	s.plain(" ")
	s.button("[D]", deleteStyle, zoneTaskDelete, t.ID)
	s.newline()
}

// fieldWidth is the number of cells given to dialog text fields.
func (m *Model) fieldWidth() int {
	if m.width == 0 {
		return 50
	}
	w := m.width - dialogLabelWidth - 1
	if w < 20 {
		w = 20
	}
	if w > 80 {
		w = 80
	}
	return w
}
