// Package scenario loads scripted list sessions from YAML and replays them
// against an in-memory host.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/vlist"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid scenario")

// Scenario describes a list configuration and a sequence of steps.
type Scenario struct {
	Name            string          `yaml:"name"`
	Items           int             `yaml:"items"`
	ItemHeight      float64         `yaml:"itemHeight,omitempty"`
	Heights         []float64       `yaml:"heights,omitempty"`
	ItemSpacing     float64         `yaml:"itemSpacing,omitempty"`
	Measure         bool            `yaml:"measure,omitempty"`
	ScrollTarget    string          `yaml:"scrollTarget,omitempty"`
	ContainerHeight float64         `yaml:"containerHeight,omitempty"`
	ContainerTop    float64         `yaml:"containerTop,omitempty"`
	WindowHeight    float64         `yaml:"windowHeight,omitempty"`
	Overscan        *int            `yaml:"overscan,omitempty"`
	Measured        map[int]float64 `yaml:"measured,omitempty"`
	Sentinel        *SentinelConfig `yaml:"sentinel,omitempty"`
	Steps           []Step          `yaml:"steps"`
}

// SentinelConfig enables incremental loading during the replay. Every load
// appends PageSize items until MaxItems is reached.
type SentinelConfig struct {
	Threshold  *float64 `yaml:"threshold,omitempty"`
	Direction  string   `yaml:"direction,omitempty"`
	RootMargin string   `yaml:"rootMargin,omitempty"`
	PageSize   int      `yaml:"pageSize,omitempty"`
	MaxItems   int      `yaml:"maxItems,omitempty"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Scroll   *float64     `yaml:"scroll,omitempty"`
	Resize   *float64     `yaml:"resize,omitempty"`
	SetCount *int         `yaml:"setCount,omitempty"`
	Measure  *Measurement `yaml:"measure,omitempty"`
	Frames   int          `yaml:"frames,omitempty"`
}

// Measurement reports a rendered item height.
type Measurement struct {
	Index  int     `yaml:"index"`
	Height float64 `yaml:"height"`
}

// String describes the step for reports.
func (s Step) String() string {
	switch {
	case s.Scroll != nil:
		return fmt.Sprintf("scroll %g", *s.Scroll)
	case s.Resize != nil:
		return fmt.Sprintf("resize %g", *s.Resize)
	case s.SetCount != nil:
		return fmt.Sprintf("count %d", *s.SetCount)
	case s.Measure != nil:
		return fmt.Sprintf("measure #%d=%g", s.Measure.Index, s.Measure.Height)
	case s.Frames > 0:
		return fmt.Sprintf("frames %d", s.Frames)
	}
	return "noop"
}

func (s Step) actions() int {
	n := 0
	if s.Scroll != nil {
		n++
	}
	if s.Resize != nil {
		n++
	}
	if s.SetCount != nil {
		n++
	}
	if s.Measure != nil {
		n++
	}
	if s.Frames > 0 {
		n++
	}
	return n
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ApplyDefaults fills unset fields.
func (s *Scenario) ApplyDefaults() {
	if s.WindowHeight == 0 {
		s.WindowHeight = 800
	}
	if s.Overscan == nil {
		n := vlist.OptOverscan.Default()
		s.Overscan = &n
	}
	if sc := s.Sentinel; sc != nil {
		if sc.Threshold == nil {
			t := vlist.OptThreshold.Default()
			sc.Threshold = &t
		}
		if sc.Direction == "" {
			sc.Direction = "down"
		}
		if sc.RootMargin == "" {
			sc.RootMargin = vlist.OptRootMargin.Default()
		}
		if sc.PageSize == 0 {
			sc.PageSize = 50
		}
	}
}

// Validate checks the scenario for settings the engine would reject and for
// malformed steps.
func (s *Scenario) Validate() error {
	if s.Items < 0 {
		return fmt.Errorf("%w: items must not be negative", ErrInvalid)
	}
	if s.ItemHeight <= 0 && len(s.Heights) == 0 {
		return fmt.Errorf("%w: itemHeight or heights is required", ErrInvalid)
	}
	for i, h := range s.Heights {
		if h <= 0 {
			return fmt.Errorf("%w: heights[%d] must be positive", ErrInvalid, i)
		}
	}
	target, err := vlist.ParseScrollTarget(s.ScrollTarget)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if target == vlist.ScrollContainer && s.ContainerHeight <= 0 {
		return fmt.Errorf("%w: containerHeight is required for container scrolling", ErrInvalid)
	}
	if len(s.Measured) > 0 && !s.Measure {
		return fmt.Errorf("%w: measured heights need measure: true", ErrInvalid)
	}
	if sc := s.Sentinel; sc != nil {
		if sc.Direction != "down" && sc.Direction != "up" {
			return fmt.Errorf("%w: sentinel direction %q", ErrInvalid, sc.Direction)
		}
		if _, err := vlist.SentinelMargin(sc.RootMargin, vlist.DirectionDown, 0); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if sc.PageSize < 0 || sc.MaxItems < 0 {
			return fmt.Errorf("%w: sentinel sizes must not be negative", ErrInvalid)
		}
	}
	for i, st := range s.Steps {
		if st.actions() != 1 {
			return fmt.Errorf("%w: step %d must set exactly one action", ErrInvalid, i+1)
		}
		if st.Measure != nil && !s.Measure {
			return fmt.Errorf("%w: step %d measures but measure is off", ErrInvalid, i+1)
		}
	}
	return nil
}

// Target returns the parsed scroll target.
func (s *Scenario) Target() vlist.ScrollTarget {
	t, _ := vlist.ParseScrollTarget(s.ScrollTarget)
	return t
}

// HeightSource returns the fallback height source. Heights repeat when the
// list is longer than the slice.
func (s *Scenario) HeightSource() vlist.HeightSource {
	if len(s.Heights) == 0 {
		return vlist.FixedHeight(s.ItemHeight)
	}
	heights := s.Heights
	return vlist.HeightBy(func(i int) float64 {
		return heights[i%len(heights)]
	})
}
