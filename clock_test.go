package fixtures

import (
	"errors"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDateClockAdvancesOneDay(t *testing.T) {
	c := NewDate(2001, time.January, 1)

	first := c.MustNext()
	second := c.MustNext()
	if !first.Equal(date(2001, time.January, 1)) {
		t.Fatalf("expected 2001-01-01, got %s", first)
	}
	if !second.Equal(date(2001, time.January, 2)) {
		t.Fatalf("expected 2001-01-02, got %s", second)
	}
}

func TestDefaultClockSeeds(t *testing.T) {
	if got := NewDefaultDate().MustNext(); !got.Equal(date(2001, time.January, 1)) {
		t.Fatalf("unexpected default date seed: %s", got)
	}
	if got := NewDefaultDateTime().MustNext(); !got.Equal(clockEpoch) {
		t.Fatalf("unexpected default datetime seed: %s", got)
	}
}

func TestDateTimeClockStepsTenSeconds(t *testing.T) {
	c := NewDefaultDateTime()
	first := c.MustNext()
	second := c.MustNext()
	if got := second.Sub(first); got != 10*time.Second {
		t.Fatalf("expected +10s step, got %s", got)
	}
}

func TestTimeClockStepsOneSecond(t *testing.T) {
	c := NewDefaultTime()
	first, err := c.NextUnix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.NextUnix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second-first != 1 {
		t.Fatalf("expected +1s step, got %d", second-first)
	}
}

func TestQueuedClockYieldsExactlyQueuedValues(t *testing.T) {
	a := date(2001, time.March, 18)
	b := date(2001, time.March, 19)
	c := NewQueued(a, b)

	got, err := c.Next()
	if err != nil || !got.Equal(a) {
		t.Fatalf("expected first queued value, got %s err=%v", got, err)
	}
	got, err = c.Next()
	if err != nil || !got.Equal(b) {
		t.Fatalf("expected second queued value, got %s err=%v", got, err)
	}

	if _, err := c.Next(); !errors.Is(err, ErrClockExhausted) {
		t.Fatalf("expected ErrClockExhausted, got %v", err)
	}
}

func TestAddInterleavesWithGeneratedSequence(t *testing.T) {
	c := NewDate(2001, time.January, 1)
	c.Add(date(2001, time.June, 15))

	if got := c.MustNext(); !got.Equal(date(2001, time.June, 15)) {
		t.Fatalf("expected queued value first, got %s", got)
	}
	// The sequence resumes from the last queued value plus one day.
	if got := c.MustNext(); !got.Equal(date(2001, time.June, 16)) {
		t.Fatalf("expected resumed sequence, got %s", got)
	}
}

func TestDateClockTruncatesQueuedValues(t *testing.T) {
	c := NewDate(2001, time.January, 1)
	c.Add(time.Date(2001, time.June, 15, 13, 45, 12, 0, time.UTC))

	if got := c.MustNext(); !got.Equal(date(2001, time.June, 15)) {
		t.Fatalf("expected midnight truncation, got %s", got)
	}
}

func TestMustNextPanicsOnExhaustion(t *testing.T) {
	defer func() {
		if recovered := recover(); recovered == nil {
			t.Fatalf("expected MustNext to panic once exhausted")
		}
	}()
	NewQueued().MustNext()
}
