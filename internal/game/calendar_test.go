package game

import (
	"testing"
	"time"
)

func TestToday_ShiftsAheadOfUTC(t *testing.T) {
	late := time.Date(2024, time.March, 10, 21, 30, 0, 0, time.UTC)
	if got := Today(late); !got.Equal(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Today(21:30 UTC) = %s", got)
	}

	early := time.Date(2024, time.March, 10, 20, 59, 0, 0, time.UTC)
	if got := Today(early); !got.Equal(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Today(20:59 UTC) = %s", got)
	}
}

func TestUntilNextDay(t *testing.T) {
	now := time.Date(2024, time.March, 10, 19, 45, 30, 0, time.UTC) // 22:45:30 game time
	got := UntilNextDay(now)
	if got.Hours != 1 || got.Minutes != 14 || got.Seconds != 30 {
		t.Fatalf("UntilNextDay = %+v, want 1h14m30s", got)
	}
	if got.Duration() != time.Hour+14*time.Minute+30*time.Second {
		t.Fatalf("Duration = %s", got.Duration())
	}

	midnight := time.Date(2024, time.March, 10, 21, 0, 0, 0, time.UTC)
	if got := UntilNextDay(midnight); got.Hours != 24 || got.Minutes != 0 || got.Seconds != 0 {
		t.Fatalf("UntilNextDay at game midnight = %+v", got)
	}
}

func TestFixedTimestamp(t *testing.T) {
	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, time.March, 10, 12, 36, 0, 0, time.UTC).Unix()
	if got := FixedTimestamp(day); got != want {
		t.Fatalf("FixedTimestamp = %d, want %d", got, want)
	}
}

func TestSameDayAndDaysBetween(t *testing.T) {
	a := time.Date(2024, time.March, 10, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatalf("SameDay = false")
	}
	if d := daysBetween(a, b); d != 1 {
		// b is already the next game day.
		t.Fatalf("daysBetween = %d, want 1", d)
	}
	if d := daysBetween(a, a.AddDate(0, 0, 30)); d != 30 {
		t.Fatalf("daysBetween = %d, want 30", d)
	}
}
