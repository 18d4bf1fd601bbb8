package terminal

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-runewidth"
)

type layoutKey struct {
	text  string
	width int
}

// Layout hard-wraps text to a column width. Results are cached per text and
// width, so re-measuring a row after a scroll is a lookup.
type Layout struct {
	cache *lru.Cache[layoutKey, []string]
}

// NewLayout creates a layout with room for size wrapped texts.
func NewLayout(size int) (*Layout, error) {
	cache, err := lru.New[layoutKey, []string](size)
	if err != nil {
		return nil, err
	}
	return &Layout{cache: cache}, nil
}

// Lines wraps text at width columns. Newlines start new lines; an empty text
// is one empty line.
func (l *Layout) Lines(text string, width int) []string {
	key := layoutKey{text, width}
	if lines, ok := l.cache.Get(key); ok {
		return lines
	}
	lines := wrap(text, width)
	l.cache.Add(key, lines)
	return lines
}

// Height returns the number of rows text occupies at width columns.
func (l *Layout) Height(text string, width int) int {
	return len(l.Lines(text, width))
}

// Cached returns the number of cached layouts.
func (l *Layout) Cached() int {
	return l.cache.Len()
}

func wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var b strings.Builder
		cols := 0
		for _, r := range para {
			w := runewidth.RuneWidth(r)
			if cols+w > width && cols > 0 {
				lines = append(lines, b.String())
				b.Reset()
				cols = 0
			}
			b.WriteRune(r)
			cols += w
		}
		lines = append(lines, b.String())
	}
	return lines
}
