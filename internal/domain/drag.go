package domain

import "strings"

// DragState tracks one drag gesture from press to release.
type DragState struct {
	OrderID string
	Source  Column
	Over    Column
	// Moved is set once the pointer leaves the origin cell.
	Moved bool
}

// Active reports whether a gesture is in progress.
func (d DragState) Active() bool {
	return d.OrderID != ""
}

// Start begins a gesture for orderID picked up from source.
func (d *DragState) Start(orderID string, source Column) bool {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" || !source.Valid() {
		return false
	}
	*d = DragState{
		OrderID: orderID,
		Source:  source,
		Over:    source,
	}
	return true
}

// Hover records the column currently under the pointer and reports whether it changed.
func (d *DragState) Hover(column Column) bool {
	if !d.Active() || !column.Valid() {
		return false
	}
	if column != d.Over {
		d.Moved = true
	}
	changed := d.Over != column
	d.Over = column
	return changed
}

// MarkMoved flags movement inside the same column (row reordering).
func (d *DragState) MarkMoved() {
	if d.Active() {
		d.Moved = true
	}
}

// End finishes the gesture and returns the finished state. The receiver is reset.
func (d *DragState) End() (DragState, bool) {
	done := *d
	d.Reset()
	if !done.Active() {
		return DragState{}, false
	}
	return done, true
}

// Reset clears any gesture in progress.
func (d *DragState) Reset() {
	*d = DragState{}
}
