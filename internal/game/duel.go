package game

// Outcome is the tier of a resolved duel.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Critical
	Knockout
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case Win:
		return "win"
	case Critical:
		return "critical"
	case Knockout:
		return "knockout"
	default:
		return "unknown"
	}
}

const (
	// maxPowerRatio caps how much heavier one pig's roll bound may be.
	maxPowerRatio = 5

	knockoutPercent = 99
	criticalPercent = 90
)

// Duelist is one side of a duel as seen by the resolver.
type Duelist struct {
	OwnerID uint64
	Mass    int
}

// Duel is the resolved result. On Draw, Winner is the first duelist and
// Loser the second; both receive the same mass update.
type Duel struct {
	Winner  Duelist
	Loser   Duelist
	Damage  int
	Outcome Outcome

	FirstChance  int
	SecondChance int
	FirstRoll    int
	SecondRoll   int
}

// FirstWon reports whether the first duelist won outright.
func (d Duel) FirstWon() bool {
	return d.Outcome != Draw && d.FirstRoll > d.SecondRoll
}

// Chances returns the roll bounds for both duelists after clamping the
// lighter side up to a fifth of the heavier one.
func Chances(firstMass, secondMass int) (int, int) {
	first := max(firstMass, 1)
	second := max(secondMass, 1)

	if first/second > maxPowerRatio {
		second = first / maxPowerRatio
	} else if second/first > maxPowerRatio {
		first = second / maxPowerRatio
	}
	return first, second
}

// ClassifyTier grades a winning roll against the winner's own mass.
func ClassifyTier(roll, mass int) Outcome {
	m := int64(mass)
	switch r := int64(roll); {
	case r >= m*knockoutPercent/100:
		return Knockout
	case r >= m*criticalPercent/100:
		return Critical
	default:
		return Win
	}
}

// Damage is the mass moved by a duel of the given tier.
func Damage(outcome Outcome, loserMass, firstMass, secondMass int) int {
	switch outcome {
	case Win:
		return loserMass / 8
	case Critical:
		return loserMass / 3
	case Knockout:
		return int(float32(loserMass) / 1.5)
	default:
		return max(firstMass, secondMass) / 8
	}
}

// ResolveDuel rolls both duelists and computes the winner, tier and damage.
func ResolveDuel(r Rand, first, second Duelist) Duel {
	firstChance, secondChance := Chances(first.Mass, second.Mass)
	firstRoll := r.IntN(firstChance)
	secondRoll := r.IntN(secondChance)

	return settle(first, second, firstChance, secondChance, firstRoll, secondRoll)
}

func settle(first, second Duelist, firstChance, secondChance, firstRoll, secondRoll int) Duel {
	d := Duel{
		Winner:       first,
		Loser:        second,
		Outcome:      Draw,
		FirstChance:  firstChance,
		SecondChance: secondChance,
		FirstRoll:    firstRoll,
		SecondRoll:   secondRoll,
	}

	switch {
	case firstRoll > secondRoll:
		d.Outcome = ClassifyTier(firstRoll, first.Mass)
	case secondRoll > firstRoll:
		d.Winner, d.Loser = second, first
		d.Outcome = ClassifyTier(secondRoll, second.Mass)
	}

	d.Damage = Damage(d.Outcome, d.Loser.Mass, first.Mass, second.Mass)
	return d
}

// Winrate returns the duel win percentage, truncated. ok is false until the
// pig has both won and lost at least once.
func Winrate(wins, losses uint) (percent uint, ok bool) {
	if wins == 0 || losses == 0 {
		return 0, false
	}
	rate := 100.0 / ((float32(wins) + float32(losses)) / float32(wins))
	return uint(rate), true
}
