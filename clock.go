package fixtures

import "time"

// Default sequence starting point, chosen so generated values are obviously
// synthetic in test output.
var clockEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock is a deterministic, sequential producer of time values for tests.
// Each call to Next advances by a fixed step, or consumes from an explicitly
// queued sequence when values were added up front. Clocks are typically
// installed over a package's now/clock member through a Replacer.
type Clock struct {
	next      time.Time
	step      time.Duration
	queue     []time.Time
	queueOnly bool
	dateOnly  bool
}

// NewDate returns a clock yielding midnight-truncated dates advancing one
// day per call, starting at the given date.
func NewDate(year int, month time.Month, day int) *Clock {
	return &Clock{
		next:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		step:     24 * time.Hour,
		dateOnly: true,
	}
}

// NewDefaultDate returns a date clock starting at 2001-01-01.
func NewDefaultDate() *Clock {
	return NewDate(clockEpoch.Year(), clockEpoch.Month(), clockEpoch.Day())
}

// NewDateTime returns a clock advancing ten seconds per call.
func NewDateTime(start time.Time) *Clock {
	return &Clock{next: start, step: 10 * time.Second}
}

// NewDefaultDateTime returns a datetime clock starting at
// 2001-01-01T00:00:00Z.
func NewDefaultDateTime() *Clock {
	return NewDateTime(clockEpoch)
}

// NewTime returns a clock advancing one second per call.
func NewTime(start time.Time) *Clock {
	return &Clock{next: start, step: time.Second}
}

// NewDefaultTime returns a time clock starting at 2001-01-01T00:00:00Z.
func NewDefaultTime() *Clock {
	return NewTime(clockEpoch)
}

// NewQueued returns a clock that yields exactly the given values in order.
// Once the queue is exhausted, Next returns ErrClockExhausted.
func NewQueued(values ...time.Time) *Clock {
	c := &Clock{queueOnly: true}
	c.Add(values...)
	return c
}

// Add queues explicit values consumed before the generated sequence resumes.
// After the queue drains, a generating clock continues from the last queued
// value plus its step.
func (c *Clock) Add(values ...time.Time) {
	for _, value := range values {
		if c.dateOnly {
			value = time.Date(
				value.Year(), value.Month(), value.Day(),
				0, 0, 0, 0, value.Location(),
			)
		}
		c.queue = append(c.queue, value)
	}
}

// Next returns the next value in the sequence. Queue-only clocks return
// ErrClockExhausted once every queued value has been consumed.
func (c *Clock) Next() (time.Time, error) {
	if len(c.queue) > 0 {
		value := c.queue[0]
		c.queue = c.queue[1:]
		if !c.queueOnly {
			c.next = value.Add(c.step)
		}
		return value, nil
	}
	if c.queueOnly {
		return time.Time{}, ErrClockExhausted
	}
	value := c.next
	c.next = c.next.Add(c.step)
	return value, nil
}

// MustNext is Next but panics on exhaustion.
func (c *Clock) MustNext() time.Time {
	value, err := c.Next()
	if err != nil {
		panic(err)
	}
	return value
}

// NextUnix returns the next value as Unix seconds, mirroring clocks that
// stand in for epoch-based time sources.
func (c *Clock) NextUnix() (int64, error) {
	value, err := c.Next()
	if err != nil {
		return 0, err
	}
	return value.Unix(), nil
}
