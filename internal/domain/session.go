package domain

import "time"

// TableSession is one open/close cycle of a physical table. A session is
// open while ClosedAt is nil; at most one open session exists per table.
type TableSession struct {
	ID       int
	TableID  int
	OpenedAt time.Time
	ClosedAt *time.Time
}

func (s TableSession) IsOpen() bool {
	return s.ClosedAt == nil
}
