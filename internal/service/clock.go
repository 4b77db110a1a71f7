package service

import "time"

// Clock is the time source for all business-date comparisons. Injected so
// validation is deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewClock() Clock { return realClock{} }
