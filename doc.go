/*
Package vlist provides a virtualized list engine: given a scrollable viewport
and a long, variable-height item sequence, it computes the small contiguous
window of items that must be materialized, and keeps cumulative offsets
consistent while item heights are discovered after render.

# Overview

A Virtualizer is built from an item count and a fallback height source. The
host reports scroll and resize signals, renders only the indices returned by
Items(), and hands each rendered element back through MeasureRef so its real
height can correct the layout.

	v, err := vlist.New(len(rows),
	    vlist.WithFixedHeight(24),
	    vlist.WithContainerHeight(480),
	    vlist.WithHost(host),
	)
	if err != nil {
	    return err
	}
	defer v.Close()

	onScroll := v.ScrollHandler()
	for ev := range events {
	    onScroll(ev.ScrollTop)
	    frames.Tick()
	    for _, item := range v.Items() {
	        drawRow(rows[item.Index], item.Start)
	    }
	}

# Components

	Height Oracle      measured height + spacing, else the fixed/function fallback
	Position Index     prefix-sum table of start offsets and total extent
	Viewport Tracker   container or window scroll, coalesced to one update per frame
	Range Resolver     binary search from both viewport edges, widened by overscan
	Measurement Feed   attach/detach registry with resize observation and 1px dedup
	Sentinel           intersection-gated loadMore for infinite scrolling

# Hosts

The engine only talks to the Host interfaces in host.go. The backend
packages provide implementations:

	backend/memory     in-memory document for tests and simulation
	backend/opengl     GLFW window and OpenGL painter
	backend/terminal   tcell screen and row painter

# Frames

Offset updates are not applied when they arrive. They are parked in a single
slot and applied by the next frame callback, so scrolling a thousand times
between two frames costs one recomputation. Hosts drive frames with
FrameQueue.Tick. A host without a frame pump applies updates immediately.

# Measurement

When MeasureItemHeight is set, each attached element is measured at once,
again two frames later, and whenever its resize observer fires. Readings of
zero or less, and changes under one pixel, are dropped. Detaching an element
keeps its height so items scrolling back in do not jump.

# Errors

New fails fast with ErrNoContainerHeight for a container-mode list without a
container ref or height, and with ErrNoItemHeight when no fallback height is
given. A misconfigured list is an error, never an empty render.
*/
package vlist
