package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/vlist"
)

// RowFunc returns the wrapped lines and style of item index.
type RowFunc func(index int) ([]string, tcell.Style)

// DrawItems draws each item's lines at Start - ScrollY, clipped to the list
// viewport. Lines beyond an item's Size are dropped. It returns the number
// of rows written.
func (s *Screen) DrawItems(items []vlist.VirtualItem, row RowFunc) int {
	viewH := int(s.InnerHeight())
	width := s.Width()
	written := 0

	for _, it := range items {
		top := int(it.Start - s.ScrollY())
		size := int(it.Size)
		lines, style := row(it.Index)
		for j := 0; j < size; j++ {
			y := top + j
			if y < 0 || y >= viewH {
				continue
			}
			text := ""
			if j < len(lines) {
				text = lines[j]
			}
			s.fillLine(y, width, text, style)
			written++
		}
	}
	return written
}

// Status draws text across the reserved row n (0 is the first reserved row).
func (s *Screen) Status(n int, text string, style tcell.Style) {
	if n < 0 || n >= s.reserved {
		return
	}
	s.fillLine(int(s.InnerHeight())+n, s.Width(), text, style)
}

// DrawString writes text at column x of row y and returns the next column.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (s *Screen) fillLine(y, width int, text string, style tcell.Style) {
	x := s.DrawString(0, y, text, style)
	for ; x < width; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}
