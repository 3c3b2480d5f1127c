package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// rect is a block of terminal cells.
type rect struct {
	x, y, w, h int
}

// Contains reports whether the cell at (x, y) is inside r.
func (r rect) Contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type zoneKind int

const (
	zoneNewTask zoneKind = iota + 1
	zoneQuit
	zoneTaskRow
	zoneTaskEdit
	zoneTaskDelete
	zoneTitle
	zoneDescription
	zoneType
	zoneDifficulty
	zoneSave
	zoneCancel
)

// zone is a clickable area of the last rendered screen.
type zone struct {
	rect
	kind   zoneKind
	taskID int64
}

// screen builds the view line by line and records where each clickable
// piece ends up, so mouse hits resolve against exactly what was drawn.
type screen struct {
	lines []string
	line  strings.Builder
	x     int
	zones []zone
}

// text appends styled text to the current line.
func (s *screen) text(str string, style lipgloss.Style) {
	s.line.WriteString(style.Render(str))
	s.x += lipgloss.Width(str)
}

// plain appends unstyled text to the current line.
func (s *screen) plain(str string) {
	s.line.WriteString(str)
	s.x += lipgloss.Width(str)
}

// button appends styled text and registers it as a zone.
func (s *screen) button(str string, style lipgloss.Style, kind zoneKind, taskID int64) {
	w := lipgloss.Width(str)
	s.zones = append(s.zones, zone{
		rect:   rect{x: s.x, y: len(s.lines), w: w, h: 1},
		kind:   kind,
		taskID: taskID,
	})
	s.text(str, style)
}

// newline ends the current line.
func (s *screen) newline() {
	s.lines = append(s.lines, s.line.String())
	s.line.Reset()
	s.x = 0
}

func (s *screen) String() string {
	if s.line.Len() > 0 {
		s.newline()
	}
	return strings.Join(s.lines, "\n")
}

// hit returns the zone under (x, y).
func (s *screen) hit(x, y int) (zone, bool) {
	for _, z := range s.zones {
		if z.Contains(x, y) {
			return z, true
		}
	}
	return zone{}, false
}

// singleLine replaces runes that would move the terminal cursor, such as
// newlines, with spaces so the text stays on one screen line.
func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return ' '
	}, s)
}
