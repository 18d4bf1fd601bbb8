// Package terminal hosts virtualized lists on a tcell screen.
//
// One terminal row is one list pixel. The Screen is the scroll surface and
// implements vlist.Window; pair it with memory.Document's frames and
// observers through Document.HostWithWindow.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/vlist"
)

// WheelRows is the distance of one mouse wheel step.
const WheelRows = 3

// Screen adapts a tcell screen to vlist.Window.
type Screen struct {
	*vlist.ScrollSurface
	screen   tcell.Screen
	reserved int
}

// New wraps screen. reserved rows at the bottom are kept out of the list
// viewport for status lines.
func New(screen tcell.Screen, reserved int) *Screen {
	if reserved < 0 {
		reserved = 0
	}
	s := &Screen{screen: screen, reserved: reserved}
	s.ScrollSurface = vlist.NewScrollSurface(s.rows())
	return s
}

// Tcell returns the underlying screen.
func (s *Screen) Tcell() tcell.Screen { return s.screen }

// Width returns the screen width in columns.
func (s *Screen) Width() int {
	w, _ := s.screen.Size()
	return w
}

func (s *Screen) rows() float64 {
	_, h := s.screen.Size()
	if h -= s.reserved; h < 0 {
		h = 0
	}
	return float64(h)
}

type action int

const (
	actNone action = iota
	actLineUp
	actLineDown
	actPageUp
	actPageDown
	actHome
	actEnd
	actQuit
)

func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyUp:
		return actLineUp
	case tcell.KeyDown:
		return actLineDown
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		return actPageUp
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		return actPageDown
	case tcell.KeyHome:
		return actHome
	case tcell.KeyEnd:
		return actEnd
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyRune:
		switch r {
		case 'k':
			return actLineUp
		case 'j':
			return actLineDown
		case ' ':
			return actPageDown
		case 'g':
			return actHome
		case 'G':
			return actEnd
		case 'q':
			return actQuit
		}
	}
	return actNone
}

func (s *Screen) apply(a action) bool {
	switch a {
	case actLineUp:
		s.ScrollBy(-1)
	case actLineDown:
		s.ScrollBy(1)
	case actPageUp:
		s.PageUp()
	case actPageDown:
		s.PageDown()
	case actHome:
		s.Home()
	case actEnd:
		s.End()
	case actQuit:
		return false
	}
	return true
}

// HandleEvent applies navigation keys, wheel steps and resizes. It returns
// false when the user asked to quit.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.apply(keyAction(ev.Key(), ev.Rune()))

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			s.Wheel(1, WheelRows)
		}
		if buttons&tcell.WheelDown != 0 {
			s.Wheel(-1, WheelRows)
		}

	case *tcell.EventResize:
		s.screen.Sync()
		s.Resized()
	}
	return true
}

// Resized re-reads the screen size into the viewport height.
func (s *Screen) Resized() {
	s.SetInnerHeight(s.rows())
}
