// Package game holds the pure rules of the pig game: daily size and growth
// formulas, overclock stats, duel resolution and the achievement catalog.
// Nothing here touches storage; callers pass in snapshots and persist results.
package game

import "time"

const (
	fixedHour   = 12
	fixedMinute = 36

	// fixedOffset is the game clock offset in seconds. The wall clock is read
	// as local time at this offset and converted back to UTC, which moves the
	// game day three hours ahead of UTC.
	fixedOffset = -3 * 3600
)

// Clock returns the game wall-clock time for t. The result is expressed in
// UTC so that its Day/Month/Hour fields are the game calendar fields.
func Clock(t time.Time) time.Time {
	return t.UTC().Add(-fixedOffset * time.Second)
}

// Today returns the game calendar day containing t, at midnight UTC.
func Today(t time.Time) time.Time {
	return DateOf(Clock(t))
}

// DateOf truncates an already shifted game time to its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b are the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FixedTimestamp is the Unix time of day's calendar date at 12:36:00,
// the anchor used by CalculateSize.
func FixedTimestamp(day time.Time) int64 {
	y, m, d := day.Date()
	return time.Date(y, m, d, fixedHour, fixedMinute, 0, 0, time.UTC).Unix()
}

// Countdown is the time left until the next game day.
type Countdown struct {
	Hours   int64
	Minutes int64
	Seconds int64
}

// Duration converts the countdown back into a time.Duration.
func (c Countdown) Duration() time.Duration {
	return time.Duration(c.Hours)*time.Hour +
		time.Duration(c.Minutes)*time.Minute +
		time.Duration(c.Seconds)*time.Second
}

// UntilNextDay returns how long a pig owner has to wait for the next feed.
func UntilNextDay(now time.Time) Countdown {
	cur := Clock(now).Truncate(time.Second)
	next := DateOf(cur).AddDate(0, 0, 1)
	left := next.Sub(cur)

	return Countdown{
		Hours:   int64(left / time.Hour),
		Minutes: int64(left/time.Minute) % 60,
		Seconds: int64(left/time.Second) % 60,
	}
}

// daysBetween counts calendar days from a to b in game time.
func daysBetween(a, b time.Time) int {
	return int(Today(b).Sub(Today(a)).Hours() / 24)
}
