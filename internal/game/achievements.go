package game

import (
	"time"

	"github.com/fr0staman/pigbot/internal/domain"
)

// Code identifies an achievement. Values are stable and grouped by theme;
// new achievements are appended without renumbering.
type Code int16

const (
	// Simple
	FirstLoss     Code = 101
	KamaSutra     Code = 102
	Rollercoaster Code = 103
	MonsterGrow   Code = 104

	// Numbers
	ElectricGrandpa Code = 201
	YearWeight      Code = 202
	HundredClub     Code = 203
	FiveMetersOfFat Code = 204
	TonOfPig        Code = 205
	Jackpot         Code = 206

	// Cyclic
	FeederOfTheYear    Code = 301
	SchrodingerPig     Code = 302
	EmployeeOfTheMonth Code = 303
	SevenFridays       Code = 304
	Pendulum           Code = 305
	GroundhogDay       Code = 306
	NoChangeThreeDays  Code = 307

	// Special
	InfinityWar  Code = 401
	EternalGenin Code = 402
	NewYearPig   Code = 403

	// Date or time
	ZeroHour Code = 501
	Agent007 Code = 502
	NewHope  Code = 503
)

// Predicate decides whether a pig has earned an achievement. history is the
// full growth log in chronological order; now is the evaluation time.
type Predicate func(pig domain.Pig, history []domain.GrowthLog, now time.Time) bool

// Achievement is one catalog entry.
type Achievement struct {
	Code  Code
	Name  string
	Check Predicate
}

// String returns the snake_case name of the code, or "unknown".
func (c Code) String() string {
	if a, ok := Lookup(c); ok {
		return a.Name
	}
	return "unknown"
}

var catalog = []Achievement{
	{FirstLoss, "first_loss", firstLoss},
	{KamaSutra, "kama_sutra", massEquals(69)},
	{MonsterGrow, "monster_grow", monsterGrow},

	{ElectricGrandpa, "electric_grandpa", massEquals(1488)},
	{YearWeight, "year_weight", yearWeight},
	{HundredClub, "hundred_club", massAtLeast(100)},
	{FiveMetersOfFat, "five_meters_of_fat", massAtLeast(500)},
	{TonOfPig, "ton_of_pig", massAtLeast(1000)},
	{Jackpot, "jackpot", massEquals(777)},
	{Rollercoaster, "rollercoaster", rollercoaster},

	{FeederOfTheYear, "feeder_of_the_year", feederOfTheYear},
	{SchrodingerPig, "schrodinger_pig", schrodingerPig},
	{EmployeeOfTheMonth, "employee_of_the_month", employeeOfTheMonth},
	{SevenFridays, "seven_fridays", sevenFridays},
	{Pendulum, "pendulum", pendulum},
	{GroundhogDay, "groundhog_day", groundhogDay},
	{NoChangeThreeDays, "no_change_three_days", noChangeThreeDays},

	{InfinityWar, "infinity_war", infinityWar},
	{EternalGenin, "eternal_genin", eternalGenin},
	{NewYearPig, "new_year_pig", newYearPig},

	{ZeroHour, "zero_hour", zeroHour},
	{Agent007, "agent_007", agent007},
	{NewHope, "new_hope", newHope},
}

// Catalog returns the achievement catalog in its fixed order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog entry by code.
func Lookup(c Code) (Achievement, bool) {
	for _, a := range catalog {
		if a.Code == c {
			return a, true
		}
	}
	return Achievement{}, false
}

// Evaluate returns the codes that are newly earned, in catalog order.
// Codes present in unlocked are skipped without evaluating their predicate.
func Evaluate(pig domain.Pig, history []domain.GrowthLog, now time.Time, unlocked map[Code]struct{}) []Code {
	var out []Code
	for _, a := range catalog {
		if _, done := unlocked[a.Code]; done {
			continue
		}
		if a.Check(pig, history, now) {
			out = append(out, a.Code)
		}
	}
	return out
}

func massEquals(n int) Predicate {
	return func(pig domain.Pig, _ []domain.GrowthLog, _ time.Time) bool { return pig.Mass == n }
}

func massAtLeast(n int) Predicate {
	return func(pig domain.Pig, _ []domain.GrowthLog, _ time.Time) bool { return pig.Mass >= n }
}

// lastN returns the trailing n entries, or nil when history is shorter.
func lastN(history []domain.GrowthLog, n int) []domain.GrowthLog {
	if len(history) < n {
		return nil
	}
	return history[len(history)-n:]
}

// spansDays reports whether window covers exactly len(window) consecutive
// game days, one feed per day.
func spansDays(window []domain.GrowthLog) bool {
	if len(window) == 0 {
		return false
	}
	return daysBetween(window[0].CreatedAt, window[len(window)-1].CreatedAt) == len(window)-1
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func firstLoss(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 1)
	if w == nil {
		return false
	}
	previous := w[0].CurrentWeight - w[0].WeightChange
	return w[0].CurrentWeight < previous
}

// rollercoaster: a gain, a loss and a no-change within one week of feeds.
func rollercoaster(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 7)
	if w == nil || !spansDays(w) {
		return false
	}
	var lost, same, gained bool
	for _, e := range w {
		switch sign(e.WeightChange) {
		case -1:
			lost = true
		case 0:
			same = true
		case 1:
			gained = true
		}
	}
	return lost && same && gained
}

func monsterGrow(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 1)
	return w != nil && w[0].WeightChange >= 20
}

func yearWeight(pig domain.Pig, _ []domain.GrowthLog, now time.Time) bool {
	return pig.Mass == Clock(now).Year()
}

// feederOfTheYear: five feeds in a row with +20 or more.
func feederOfTheYear(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 5)
	if w == nil {
		return false
	}
	for _, e := range w {
		if e.WeightChange < 20 {
			return false
		}
	}
	return true
}

// schrodingerPig: the last three feeds are a gain, a loss and no change in
// one of the accepted orders.
func schrodingerPig(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 3)
	if w == nil {
		return false
	}
	got := [3]int{sign(w[0].WeightChange), sign(w[1].WeightChange), sign(w[2].WeightChange)}
	switch got {
	case [3]int{1, -1, 0}, [3]int{-1, 1, 0}, [3]int{0, 1, -1}, [3]int{0, -1, 1}:
		return true
	}
	return false
}

// employeeOfTheMonth: fed 30 days in a row, the last one today.
func employeeOfTheMonth(_ domain.Pig, history []domain.GrowthLog, now time.Time) bool {
	w := lastN(history, 30)
	if w == nil || !spansDays(w) {
		return false
	}
	return daysBetween(w[len(w)-1].CreatedAt, now) == 0
}

// sevenFridays: one calendar week, Monday to Sunday, with a gain every day.
func sevenFridays(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 7)
	if w == nil || !spansDays(w) {
		return false
	}
	if Today(w[0].CreatedAt).Weekday() != time.Monday {
		return false
	}

	var gained [7]bool
	for _, e := range w {
		if e.WeightChange > 0 {
			gained[Today(e.CreatedAt).Weekday()] = true
		}
	}
	for _, ok := range gained {
		if !ok {
			return false
		}
	}
	return true
}

// pendulum: +20 then -20, or the reverse, on the last two feeds.
func pendulum(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 2)
	if w == nil {
		return false
	}
	a, b := w[0].WeightChange, w[1].WeightChange
	return (a >= 20 && b <= -20) || (a <= -20 && b >= 20)
}

func groundhogDay(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 3)
	if w == nil {
		return false
	}
	for _, e := range w {
		if e.WeightChange >= 0 {
			return false
		}
	}
	return true
}

func noChangeThreeDays(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 3)
	if w == nil {
		return false
	}
	for _, e := range w {
		if e.WeightChange != 0 {
			return false
		}
	}
	return true
}

// infinityWar: dropped to exactly 1 with a loss of 20 or more.
func infinityWar(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 1)
	return w != nil && w[0].CurrentWeight == 1 && w[0].WeightChange <= -20
}

// eternalGenin: seven feeds in a row without getting past 10.
func eternalGenin(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 7)
	if w == nil {
		return false
	}
	for _, e := range w {
		if e.CurrentWeight > 10 {
			return false
		}
	}
	return true
}

// newYearPig: fed on December 31 and then on January 1.
func newYearPig(_ domain.Pig, history []domain.GrowthLog, _ time.Time) bool {
	w := lastN(history, 2)
	if w == nil {
		return false
	}
	d1, d2 := Clock(w[0].CreatedAt), Clock(w[1].CreatedAt)
	return d1.Month() == time.December && d1.Day() == 31 &&
		d2.Month() == time.January && d2.Day() == 1
}

func zeroHour(_ domain.Pig, _ []domain.GrowthLog, now time.Time) bool {
	t := Clock(now)
	return t.Hour() == 0 && t.Minute() == 0
}

func agent007(_ domain.Pig, _ []domain.GrowthLog, now time.Time) bool {
	t := Clock(now)
	return t.Month() == time.July && t.Day() == 7 && t.Hour() == 7
}

func newHope(_ domain.Pig, _ []domain.GrowthLog, now time.Time) bool {
	return Clock(now).Day() == 1
}
