// Terminal example: a measured, window-scrolled list of wrapped paragraphs
// that loads more pages as the end comes into view.
//
//	go run ./example/terminal/
//
// j/k or arrows scroll a row, space/PgDn a page, g/G jump, q quits.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/vlist"
	"github.com/go-theft-auto/vlist/backend/memory"
	"github.com/go-theft-auto/vlist/backend/terminal"
)

const (
	pageSize  = 100
	maxItems  = 1000
	threshold = 20
)

var words = strings.Fields("lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua")

// pageLoaded is posted to the event loop when a fetch completes.
type pageLoaded struct {
	tcell.EventTime
	items []string
}

func paragraph(i int) string {
	n := 4 + (i*13)%40
	var b strings.Builder
	fmt.Fprintf(&b, "#%d ", i)
	for j := 0; j < n; j++ {
		b.WriteString(words[(i+j)%len(words)])
		b.WriteByte(' ')
	}
	return b.String()
}

func fetch(from, n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = paragraph(from + i)
	}
	return items
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	surface := terminal.New(screen, 1)
	doc := memory.NewDocument(surface.InnerHeight())
	host := doc.HostWithWindow(surface)

	layout, err := terminal.NewLayout(4096)
	if err != nil {
		return err
	}

	items := fetch(0, pageSize)
	list, err := vlist.New(len(items),
		vlist.WithFixedHeight(2),
		vlist.WithItemSpacing(1),
		vlist.MeasureItemHeight(),
		vlist.WithScrollTarget(vlist.ScrollWindow),
		vlist.WithHost(host),
	)
	if err != nil {
		return fmt.Errorf("virtualizer: %w", err)
	}
	defer list.Close()

	loading := false
	var sentinel *vlist.Sentinel
	var sentinelErr error
	sentinel, err = vlist.NewSentinel(host, func() {
		loading = true
		if err := sentinel.Update(vlist.WithLoading(true)); err != nil {
			sentinelErr = err
		}
		from := len(items)
		go func() {
			time.Sleep(400 * time.Millisecond)
			ev := &pageLoaded{items: fetch(from, pageSize)}
			ev.SetEventNow()
			_ = screen.PostEvent(ev)
		}()
	}, vlist.WithThreshold(threshold))
	if err != nil {
		return fmt.Errorf("sentinel: %w", err)
	}
	defer sentinel.Close()

	marker := doc.NewElement(1)
	sentinel.Ref()(marker)
	markerVisible := false

	// One element per rendered row, detached when it leaves the range.
	rows := make(map[int]*memory.Element)
	width := surface.Width()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if loaded, ok := ev.(*pageLoaded); ok {
				items = append(items, loaded.items...)
				list.SetItemCount(len(items))
				loading = false
				markerVisible = false
				if err := sentinel.Update(vlist.WithLoading(false), vlist.WithHasMore(len(items) < maxItems)); err != nil {
					return fmt.Errorf("sentinel: %w", err)
				}
				continue
			}
			if !surface.HandleEvent(ev) {
				return nil
			}
			if w := surface.Width(); w != width {
				width = w
				for i, el := range rows {
					el.SetHeight(float64(layout.Height(items[i], width)))
				}
			}

		case <-ticker.C:
			doc.Tick()
			if sentinelErr != nil {
				return fmt.Errorf("sentinel: %w", sentinelErr)
			}

			r := list.Range()
			for i := range rows {
				if !r.Contains(i) {
					list.MeasureRef(i)(nil)
					delete(rows, i)
				}
			}
			for i := r.Start; i <= r.End; i++ {
				if _, ok := rows[i]; ok {
					continue
				}
				el := doc.NewElement(float64(layout.Height(items[i], width)))
				rows[i] = el
				list.MeasureRef(i)(el)
			}

			surface.SetContentHeight(list.TotalHeight())
			vp := list.Viewport()
			visible := list.TotalHeight()-vp.ScrollOffset <= vp.ContainerHeight+threshold
			if visible != markerVisible {
				markerVisible = visible
				doc.Intersect(marker, visible)
			}

			screen.Clear()
			surface.DrawItems(list.Items(), func(i int) ([]string, tcell.Style) {
				style := tcell.StyleDefault
				if i%2 == 1 {
					style = style.Foreground(tcell.ColorSilver)
				}
				return layout.Lines(items[i], width), style
			})

			status := fmt.Sprintf(" rows %d-%d of %d  offset %.0f/%.0f",
				r.Start, r.End, len(items), vp.ScrollOffset, list.TotalHeight())
			if loading {
				status += "  loading..."
			} else if len(items) >= maxItems {
				status += "  end"
			}
			surface.Status(0, status, tcell.StyleDefault.Reverse(true))
			screen.Show()
		}
	}
}
