package game

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	strangeDelimiter        = 5527.0
	anotherStrangeDelimiter = 1009.0
	secondStrangeDelimiter  = 4049.0
	ten                     = 10.0

	// Growth draws chance from [growthChanceMin, growthChanceMax].
	growthChanceMin = -8
	growthChanceMax = 20
	maxLoss         = 20
)

// Rand is the subset of math/rand/v2 the rules draw from. IntN returns a
// value in [0, n).
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns a Rand backed by the goroutine-safe global source.
func DefaultRand() Rand { return globalRand{} }

// intRange draws uniformly from [lo, hi).
func intRange(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo)
}

// GrowthStatus classifies the outcome of a feed.
type GrowthStatus int

const (
	Lost GrowthStatus = iota - 1
	Maintained
	Gained
)

// String returns the status name used in log fields and API payloads.
func (s GrowthStatus) String() string {
	switch s {
	case Lost:
		return "lost"
	case Maintained:
		return "maintained"
	case Gained:
		return "gained"
	default:
		return "unknown"
	}
}

// CalculateSize derives the hand pig size for ownerID on the given game day.
// The value is stable for the whole day and is never below 1.
func CalculateSize(ownerID uint64, today time.Time) int {
	day := float64(today.Day())
	month := float64(today.Month())
	timestamp := float64(FixedTimestamp(today))
	uid := float64(ownerID)

	calculatedCategory := timestamp/strangeDelimiter*day/month + uid/(day*month)
	kf := remEuclid(calculatedCategory, 25.0)

	var category float64
	switch {
	case kf >= 21.0:
		category = 7.0
	case kf >= 12.0:
		category = 5.0
	case kf >= 6.0:
		category = 3.0
	case kf >= 0.3:
		category = 2.0
	case kf >= 0.05:
		category = 1.0
	case kf >= 0.0:
		category = 0.39
	default:
		category = 0.0
	}

	moduloBySize := secondStrangeDelimiter + ten*(day+(month-8.0)*30.0)
	size := remEuclid(timestamp/day*month/anotherStrangeDelimiter+uid, moduloBySize) / category

	if n := int(size); n != 0 {
		return n
	}
	return 1
}

// CalculateGrowth draws the mass delta for one chat pig feed. Degenerate
// draws (a loss that would empty the pig, or no change at zero mass) are
// redrawn until a valid outcome appears.
func CalculateGrowth(r Rand, currentMass int) (int, GrowthStatus) {
	for {
		chance := intRange(r, growthChanceMin, growthChanceMax+1)

		switch {
		case chance > 0:
			return chance, Gained
		case chance < 0:
			limit := maxLoss
			if currentMass < maxLoss {
				limit = currentMass - 1
			}
			if limit < 1 {
				continue
			}
			return intRange(r, -limit, 0), Lost
		default:
			if currentMass == 0 {
				continue
			}
			return 0, Maintained
		}
	}
}

// remEuclid is the always non-negative remainder of a / b.
func remEuclid(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += math.Abs(b)
	}
	return r
}

func remEuclid32(a, b float32) float32 {
	return float32(remEuclid(float64(a), float64(b)))
}

// PigEmoji returns the display tier for a pig of the given mass.
func PigEmoji(mass int) string {
	switch {
	case mass >= 10000:
		return "🪐"
	case mass >= 8000:
		return "☄"
	case mass >= 7000:
		return "💫"
	case mass >= 6000:
		return "🌠"
	case mass >= 5000:
		return "🌍"
	case mass >= 4000:
		return "🌋"
	case mass >= 3000:
		return "💥"
	case mass >= 2000:
		return "☢️"
	case mass == 1488:
		return "⚡⚡"
	case mass >= 1000:
		return "☣️"
	case mass >= 800:
		return "🚷"
	case mass == 777:
		return "🎰"
	case mass == 666:
		return "👹"
	case mass >= 500:
		return "🐖💨"
	case mass >= 300:
		return "🐖"
	case mass >= 100:
		return "🐽"
	case mass >= 20:
		return "🐷"
	case mass == 18:
		return "🔞"
	case mass >= 10:
		return "🍖"
	case mass == 1:
		return "🍽"
	default:
		return "🦴"
	}
}
