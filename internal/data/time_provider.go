package data

import "time"

// TimeProvider abstracts time.Now so repositories and services can be tested
// with a fixed clock.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the current UTC time.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now().UTC() }

// FixedTimeProvider always returns the same instant. Test helper.
type FixedTimeProvider struct {
	Fixed time.Time
}

func (f FixedTimeProvider) Now() time.Time { return f.Fixed }
