package tui

import "unicode"

// Field is a single-line text buffer with a cursor. The cursor sits
// between runes, in [0, Len()].
type Field struct {
	runes  []rune
	cursor int
	limit  int
}

// NewField returns an empty field holding at most limit runes.
func NewField(limit int) Field {
	return Field{limit: limit}
}

// Value returns the field's text.
func (f *Field) Value() string {
	return string(f.runes)
}

// SetValue replaces the text, truncated to the limit and without
// non-printable runes, and moves the cursor to the end.
func (f *Field) SetValue(s string) {
	f.runes = f.runes[:0]
	f.cursor = 0
	f.Insert([]rune(s)...)
}

// Len returns the number of runes in the field.
func (f *Field) Len() int {
	return len(f.runes)
}

// Cursor returns the cursor position.
func (f *Field) Cursor() int {
	return f.cursor
}

// Insert puts printable runes at the cursor, dropping any past the limit.
// It reports whether anything was inserted.
func (f *Field) Insert(rs ...rune) bool {
	inserted := false
	for _, r := range rs {
		if !unicode.IsPrint(r) {
			continue
		}
		if f.limit > 0 && len(f.runes) >= f.limit {
			break
		}
		f.runes = append(f.runes, 0)
		copy(f.runes[f.cursor+1:], f.runes[f.cursor:])
		f.runes[f.cursor] = r
		f.cursor++
		inserted = true
	}
	return inserted
}

// Backspace deletes the rune before the cursor.
func (f *Field) Backspace() {
	if f.cursor == 0 {
		return
	}
	f.runes = append(f.runes[:f.cursor-1], f.runes[f.cursor:]...)
	f.cursor--
}

// Delete removes the rune under the cursor.
func (f *Field) Delete() {
	if f.cursor >= len(f.runes) {
		return
	}
	f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
}

func (f *Field) Left() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *Field) Right() {
	if f.cursor < len(f.runes) {
		f.cursor++
	}
}

func (f *Field) Home() {
	f.cursor = 0
}

func (f *Field) End() {
	f.cursor = len(f.runes)
}

// window returns the slice of runes to draw in width cells and the cursor
// position inside it, scrolling so the cursor stays visible.
func (f *Field) window(width int) ([]rune, int) {
	if width <= 0 || len(f.runes) < width {
		return f.runes, f.cursor
	}
	// One cell is reserved for the cursor past the last rune.
	start := 0
	if f.cursor >= width {
		start = f.cursor - width + 1
	}
	end := start + width
	if end > len(f.runes) {
		end = len(f.runes)
	}
	return f.runes[start:end], f.cursor - start
}
