package game

import (
	"math/rand/v2"
	"testing"
)

func TestChances_ClampsLighterSide(t *testing.T) {
	first, second := Chances(100, 1000)
	if first != 200 || second != 1000 {
		t.Fatalf("Chances(100,1000) = (%d,%d), want (200,1000)", first, second)
	}

	first, second = Chances(1000, 100)
	if first != 1000 || second != 200 {
		t.Fatalf("Chances(1000,100) = (%d,%d), want (1000,200)", first, second)
	}

	first, second = Chances(300, 100)
	if first != 300 || second != 100 {
		t.Fatalf("Chances(300,100) = (%d,%d), want unchanged", first, second)
	}
}

func TestChances_ZeroMassStillRolls(t *testing.T) {
	first, second := Chances(0, 3)
	if first < 1 || second < 1 {
		t.Fatalf("Chances(0,3) = (%d,%d), want both >= 1", first, second)
	}
}

func TestResolveDuel_RollsWithClampedChances(t *testing.T) {
	r := script(t, 150, 10)

	d := ResolveDuel(r, Duelist{OwnerID: 1, Mass: 100}, Duelist{OwnerID: 2, Mass: 1000})
	if r.bounds[0] != 200 || r.bounds[1] != 1000 {
		t.Fatalf("roll bounds = %v, want [200 1000]", r.bounds)
	}
	if d.FirstChance != 200 || d.SecondChance != 1000 {
		t.Fatalf("chances = (%d,%d)", d.FirstChance, d.SecondChance)
	}
	// 150 >= 99% of 100: the lighter pig knocks the heavy one out.
	if d.Winner.OwnerID != 1 || d.Outcome != Knockout {
		t.Fatalf("winner=%d outcome=%s", d.Winner.OwnerID, d.Outcome)
	}
	// 1000 / 1.5 truncated
	if d.Damage != 666 {
		t.Fatalf("damage = %d", d.Damage)
	}
	if !d.FirstWon() {
		t.Fatalf("FirstWon = false")
	}
}

func TestResolveDuel_SecondWins(t *testing.T) {
	r := script(t, 5, 40)

	d := ResolveDuel(r, Duelist{OwnerID: 1, Mass: 80}, Duelist{OwnerID: 2, Mass: 100})
	if d.Winner.OwnerID != 2 || d.Loser.OwnerID != 1 {
		t.Fatalf("winner=%d loser=%d", d.Winner.OwnerID, d.Loser.OwnerID)
	}
	if d.Outcome != Win || d.Damage != 80/8 {
		t.Fatalf("outcome=%s damage=%d", d.Outcome, d.Damage)
	}
	if d.FirstWon() {
		t.Fatalf("FirstWon = true")
	}
}

func TestResolveDuel_Draw(t *testing.T) {
	r := script(t, 7, 7)

	d := ResolveDuel(r, Duelist{OwnerID: 1, Mass: 80}, Duelist{OwnerID: 2, Mass: 160})
	if d.Outcome != Draw {
		t.Fatalf("outcome = %s, want draw", d.Outcome)
	}
	if d.Winner.OwnerID != 1 || d.Loser.OwnerID != 2 {
		t.Fatalf("draw keeps the original order")
	}
	if d.Damage != 160/8 {
		t.Fatalf("damage = %d, want %d", d.Damage, 160/8)
	}
}

func TestClassifyTier_Boundaries(t *testing.T) {
	cases := []struct {
		roll, mass int
		want       Outcome
	}{
		{99, 100, Knockout},
		{100, 100, Knockout},
		{98, 100, Critical},
		{90, 100, Critical},
		{89, 100, Win},
		{0, 100, Win},
		{990, 1000, Knockout},
		{900, 1000, Critical},
		{899, 1000, Win},
	}
	for _, c := range cases {
		if got := ClassifyTier(c.roll, c.mass); got != c.want {
			t.Errorf("ClassifyTier(%d,%d) = %s, want %s", c.roll, c.mass, got, c.want)
		}
	}
}

func TestDamage(t *testing.T) {
	if got := Damage(Win, 100, 100, 50); got != 12 {
		t.Fatalf("Win damage = %d", got)
	}
	if got := Damage(Critical, 100, 100, 50); got != 33 {
		t.Fatalf("Critical damage = %d", got)
	}
	if got := Damage(Knockout, 100, 100, 50); got != 66 {
		t.Fatalf("Knockout damage = %d", got)
	}
	if got := Damage(Draw, 50, 100, 50); got != 12 {
		t.Fatalf("Draw damage = %d", got)
	}
}

func TestResolveDuel_LoserNeverNegative(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 5000; i++ {
		first := Duelist{OwnerID: 1, Mass: 1 + r.IntN(5000)}
		second := Duelist{OwnerID: 2, Mass: 1 + r.IntN(5000)}

		d := ResolveDuel(r, first, second)
		if d.Damage < 0 {
			t.Fatalf("negative damage %d for %+v", d.Damage, d)
		}
		if d.Outcome != Draw && d.Loser.Mass-d.Damage < 0 {
			t.Fatalf("loser mass %d - %d < 0", d.Loser.Mass, d.Damage)
		}
	}
}

func TestWinrate(t *testing.T) {
	if _, ok := Winrate(0, 5); ok {
		t.Fatalf("winrate defined without wins")
	}
	if _, ok := Winrate(5, 0); ok {
		t.Fatalf("winrate defined without losses")
	}
	if got, ok := Winrate(1, 1); !ok || got != 50 {
		t.Fatalf("Winrate(1,1) = %d,%v", got, ok)
	}
	if got, ok := Winrate(1, 3); !ok || got != 25 {
		t.Fatalf("Winrate(1,3) = %d,%v", got, ok)
	}
}

func TestOutcome_String(t *testing.T) {
	for o, want := range map[Outcome]string{Draw: "draw", Win: "win", Critical: "critical", Knockout: "knockout", Outcome(42): "unknown"} {
		if o.String() != want {
			t.Fatalf("%d.String() = %q", int(o), o.String())
		}
	}
}
