package vlist

import "errors"

// Configuration errors returned by New and NewSentinel. They are wrapped with
// context; test for them with errors.Is.
var (
	// ErrNoContainerHeight means container-mode virtualization was configured
	// without a container ref and without a static container height.
	ErrNoContainerHeight = errors.New("vlist: container mode requires a container ref or a container height")

	// ErrNoItemHeight means no fallback item height source was supplied.
	ErrNoItemHeight = errors.New("vlist: item height source is required")

	// ErrNegativeItemCount means the item count was below zero.
	ErrNegativeItemCount = errors.New("vlist: item count must not be negative")

	// ErrInvalidRootMargin means a sentinel root margin could not be parsed.
	ErrInvalidRootMargin = errors.New("vlist: invalid root margin")
)
