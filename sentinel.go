package vlist

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentinel triggers incremental loading when a marker element nears the edge
// of the viewport.
//
// loadMore runs only while hasMore is true and isLoading is false, checked at
// call time. There is no retry, backoff or rate limit: a loadMore that does not
// promptly report isLoading through Update can be called again by the next
// intersection.
//
// Usage:
//
//	s, err := vlist.NewSentinel(host, fetchNextPage,
//	    vlist.WithHasMore(page.HasNext),
//	    vlist.WithLoading(fetching),
//	)
//	s.Ref()(markerElement)
//	// when fetching state changes:
//	s.Update(vlist.WithHasMore(page.HasNext), vlist.WithLoading(fetching))
type Sentinel struct {
	host     Host
	loadMore func()
	opts     options
	margin   string

	el       Element
	observer IntersectionObserver
	closed   bool
}

// NewSentinel creates a sentinel that calls loadMore. It returns
// ErrInvalidRootMargin if the root margin cannot be parsed.
func NewSentinel(host Host, loadMore func(), opts ...Option) (*Sentinel, error) {
	s := &Sentinel{
		host:     host,
		loadMore: loadMore,
	}
	if err := s.configure(applyOptions(options{}, opts)); err != nil {
		return nil, err
	}
	return s, nil
}

// Ref returns the attachment callback for the marker element. Pass nil to
// detach.
func (s *Sentinel) Ref() func(Element) {
	return func(el Element) {
		if s.closed || el == s.el {
			return
		}
		s.el = el
		s.arm()
	}
}

// Update applies changed options. The observer is torn down and rebuilt so it
// never runs with stale configuration. A margin error leaves the previous
// configuration in place.
func (s *Sentinel) Update(opts ...Option) error {
	if s.closed {
		return nil
	}
	return s.configure(applyOptions(s.opts, opts))
}

// LoadMore calls loadMore through the same gate as an intersection and
// reports whether it ran.
func (s *Sentinel) LoadMore() bool {
	if s.closed || !s.ready() {
		logger.Debug("sentinel load gated",
			"hasMore", GetOpt(s.opts, OptHasMore),
			"isLoading", GetOpt(s.opts, OptLoading))
		return false
	}
	logger.Debug("sentinel load triggered", "direction", GetOpt(s.opts, OptDirection))
	s.loadMore()
	return true
}

// RootMargin returns the effective intersection margin.
func (s *Sentinel) RootMargin() string {
	return s.margin
}

// Armed reports whether an observer is currently watching the marker.
func (s *Sentinel) Armed() bool {
	return s.observer != nil
}

// Close disconnects the observer. Further calls are no-ops.
func (s *Sentinel) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.disarm()
}

func (s *Sentinel) configure(o options) error {
	margin, err := SentinelMargin(
		GetOpt(o, OptRootMargin),
		GetOpt(o, OptDirection),
		GetOpt(o, OptThreshold),
	)
	if err != nil {
		return err
	}
	s.opts = o
	s.margin = margin
	s.arm()
	return nil
}

func (s *Sentinel) ready() bool {
	return s.loadMore != nil && GetOpt(s.opts, OptHasMore) && !GetOpt(s.opts, OptLoading)
}

// arm replaces the observer for the current element and configuration.
func (s *Sentinel) arm() {
	s.disarm()
	if s.el == nil || s.host.NewIntersectionObserver == nil {
		return
	}
	el := s.el
	obs := s.host.NewIntersectionObserver(func(entries []IntersectionEntry) {
		for _, e := range entries {
			if e.Target == el && e.IsIntersecting {
				s.LoadMore()
				return
			}
		}
	}, IntersectionOptions{
		Root:       GetOpt(s.opts, OptRoot),
		RootMargin: s.margin,
	})
	obs.Observe(el)
	s.observer = obs
}

func (s *Sentinel) disarm() {
	if s.observer != nil {
		s.observer.Disconnect()
		s.observer = nil
	}
}

// SentinelMargin extends base by threshold pixels on the leading edge:
// the bottom edge for DirectionDown, the top edge for DirectionUp.
// base is CSS margin shorthand with one to four pixel values.
func SentinelMargin(base string, dir Direction, threshold float64) (string, error) {
	m, err := parseMargin(base)
	if err != nil {
		return "", err
	}
	if dir == DirectionUp {
		m[0] += threshold
	} else {
		m[2] += threshold
	}
	return formatMargin(m), nil
}

// parseMargin expands CSS shorthand into top, right, bottom, left.
func parseMargin(s string) ([4]float64, error) {
	var m [4]float64
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return m, fmt.Errorf("parse root margin %q: %w", s, ErrInvalidRootMargin)
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		num := strings.TrimSuffix(f, "px")
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return m, fmt.Errorf("parse root margin %q: %w", s, ErrInvalidRootMargin)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		m = [4]float64{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		m = [4]float64{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		m = [4]float64{vals[0], vals[1], vals[2], vals[1]}
	case 4:
		m = [4]float64{vals[0], vals[1], vals[2], vals[3]}
	}
	return m, nil
}

func formatMargin(m [4]float64) string {
	parts := make([]string, 4)
	for i, v := range m {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64) + "px"
	}
	return strings.Join(parts, " ")
}
