package grid

import (
	"errors"

	"github.com/javiermolinar/plando/internal/schedule"
)

// Drag errors.
var (
	ErrDragActive   = errors.New("a drag is already in progress")
	ErrDragInactive = errors.New("no drag in progress")
)

// Kind identifies what a drag adjusts.
type Kind int

const (
	Move Kind = iota
	ResizeTop
	ResizeBottom
)

// Drag is the transient state between grabbing a block and releasing it.
// It exists only for the duration of the interaction and must be discarded
// on release, cancellation, or teardown so the UI cannot get stuck mid-drag.
type Drag struct {
	config Config

	active       bool
	kind         Kind
	workID       string
	originOffset float64
	origStart    float64
	origEnd      float64
}

// NewDrag creates an idle drag tracker for the given grid geometry.
func NewDrag(config Config) *Drag {
	return &Drag{config: config}
}

// Active returns true while a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// WorkID returns the id of the block being dragged, or "" when idle.
func (d *Drag) WorkID() string {
	if !d.active {
		return ""
	}
	return d.workID
}

// Begin starts a drag of the given kind on a block, anchored at offset.
func (d *Drag) Begin(kind Kind, w schedule.Work, offset float64) error {
	if d.active {
		return ErrDragActive
	}
	d.active = true
	d.kind = kind
	d.workID = w.ID
	d.originOffset = offset
	d.origStart = w.Start
	d.origEnd = w.End
	return nil
}

// Preview returns the block's start and end hours for the current pointer
// offset. Results are snapped to the half-hour lattice, clamped to the grid
// span, and never shorter than the minimum block duration.
func (d *Drag) Preview(offset float64) (start, end float64, err error) {
	if !d.active {
		return 0, 0, ErrDragInactive
	}

	deltaHours := schedule.Snap((offset - d.originOffset) / d.config.PixelsPerHour)
	start, end = d.origStart, d.origEnd

	switch d.kind {
	case Move:
		length := d.origEnd - d.origStart
		start = d.origStart + deltaHours
		if start < d.config.OriginHour {
			start = d.config.OriginHour
		}
		if start+length > d.config.EndHour {
			start = d.config.EndHour - length
		}
		end = start + length
	case ResizeTop:
		start = d.config.ClampHour(d.origStart + deltaHours)
		if start > d.origEnd-schedule.MinDuration {
			start = d.origEnd - schedule.MinDuration
		}
	case ResizeBottom:
		end = d.config.ClampHour(d.origEnd + deltaHours)
		if end < d.origStart+schedule.MinDuration {
			end = d.origStart + schedule.MinDuration
		}
	}

	return start, end, nil
}

// Release finishes the drag and returns the final start and end hours.
// The drag state is discarded whether or not the caller commits the result.
func (d *Drag) Release(offset float64) (start, end float64, err error) {
	start, end, err = d.Preview(offset)
	d.reset()
	return start, end, err
}

// Cancel discards the drag without producing a result. Safe to call when
// idle, so teardown paths can call it unconditionally.
func (d *Drag) Cancel() {
	d.reset()
}

func (d *Drag) reset() {
	*d = Drag{config: d.config}
}
