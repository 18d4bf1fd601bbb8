package vlist

// Option configures a Virtualizer or a Sentinel.
type Option func(*options)

// options holds all configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for options.
//
// Example:
//
//	var OptRowPadding = vlist.NewOptKey[float64]("rowPadding", 4)
//
//	v, err := vlist.New(n, vlist.WithOpt(OptRowPadding, 8))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options on top of base and returns the result.
// base is not modified.
func applyOptions(base options, opts []Option) options {
	o := options{extensions: make(map[string]any, len(base.extensions)+len(opts))}
	for k, v := range base.extensions {
		o.extensions[k] = v
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ApplyAndGet applies options and returns a single value.
func ApplyAndGet[T any](opts []Option, key OptKey[T]) T {
	return GetOpt(applyOptions(options{}, opts), key)
}

// ApplyAndCheck returns the option value and whether it was explicitly set.
func ApplyAndCheck[T any](opts []Option, key OptKey[T]) (T, bool) {
	o := applyOptions(options{}, opts)
	return GetOpt(o, key), HasOpt(o, key)
}

// =============================================================================
// Virtualizer Option Keys
// =============================================================================

var (
	OptItemHeight        = NewOptKey("itemHeight", HeightSource{})
	OptItemSpacing       = NewOptKey[float64]("itemSpacing", 0)
	OptMeasureItemHeight = NewOptKey("measureItemHeight", false)
	OptContainerHeight   = NewOptKey[float64]("containerHeight", 0)
	OptContainerRef      = NewOptKey[Element]("containerRef", nil)
	OptScrollTarget      = NewOptKey("scrollTarget", ScrollContainer)
	OptOverscan          = NewOptKey("overscan", 3)
	OptScrollOffset      = NewOptKey[float64]("scrollOffset", 0)
	OptHost              = NewOptKey("host", Host{})
)

// =============================================================================
// Sentinel Option Keys
// =============================================================================

// Direction is the edge of the loaded content a sentinel watches.
type Direction int

const (
	DirectionDown Direction = iota // Sentinel after the last item (default)
	DirectionUp                    // Sentinel before the first item
)

// String returns the configuration name of the direction.
func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}

var (
	OptHasMore    = NewOptKey("hasMore", true)
	OptLoading    = NewOptKey("isLoading", false)
	OptThreshold  = NewOptKey[float64]("threshold", 100)
	OptDirection  = NewOptKey("direction", DirectionDown)
	OptRoot       = NewOptKey[Element]("root", nil)
	OptRootMargin = NewOptKey("rootMargin", "0px")
)

// =============================================================================
// Convenience Option Functions (wrap WithOpt for common cases)
// =============================================================================

// WithItemHeight sets the fallback item height source.
func WithItemHeight(src HeightSource) Option { return WithOpt(OptItemHeight, src) }

// WithFixedHeight is shorthand for WithItemHeight(FixedHeight(h)).
func WithFixedHeight(h float64) Option { return WithItemHeight(FixedHeight(h)) }

// WithHeightFunc is shorthand for WithItemHeight(HeightBy(fn)).
func WithHeightFunc(fn HeightFunc) Option { return WithItemHeight(HeightBy(fn)) }

// WithItemSpacing sets the gap added to measured heights.
func WithItemSpacing(px float64) Option { return WithOpt(OptItemSpacing, px) }

// MeasureItemHeight enables live measurement of rendered items.
func MeasureItemHeight() Option { return WithOpt(OptMeasureItemHeight, true) }

// WithContainerHeight sets the static (or initial) container height.
func WithContainerHeight(px float64) Option { return WithOpt(OptContainerHeight, px) }

// WithContainerRef sets an element whose height is the container height.
func WithContainerRef(el Element) Option { return WithOpt(OptContainerRef, el) }

// WithScrollTarget selects container or window scrolling.
func WithScrollTarget(t ScrollTarget) Option { return WithOpt(OptScrollTarget, t) }

// WithOverscan sets how many extra items render beyond each viewport edge.
func WithOverscan(n int) Option { return WithOpt(OptOverscan, n) }

// WithScrollOffset sets the initial scroll offset.
func WithScrollOffset(px float64) Option { return WithOpt(OptScrollOffset, px) }

// WithHost sets the platform primitives.
func WithHost(h Host) Option { return WithOpt(OptHost, h) }

// WithHasMore reports whether more content can be loaded.
func WithHasMore(more bool) Option { return WithOpt(OptHasMore, more) }

// WithLoading reports whether a load is in flight.
func WithLoading(loading bool) Option { return WithOpt(OptLoading, loading) }

// WithThreshold sets how many pixels before the edge the sentinel fires.
func WithThreshold(px float64) Option { return WithOpt(OptThreshold, px) }

// WithDirection selects the edge the sentinel watches.
func WithDirection(d Direction) Option { return WithOpt(OptDirection, d) }

// WithRoot sets the scroll root of the intersection observer.
func WithRoot(el Element) Option { return WithOpt(OptRoot, el) }

// WithRootMargin sets the base intersection margin the threshold is added to.
func WithRootMargin(margin string) Option { return WithOpt(OptRootMargin, margin) }
