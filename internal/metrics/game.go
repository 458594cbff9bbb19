// Package metrics holds the Prometheus collectors for game activity. HTTP
// traffic is instrumented separately by the middleware package.
//
// Labels stay low-cardinality: feed status, duel outcome, rejection reason,
// achievement name and inline result kind are closed sets.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Feeds counts chat pig feeds by growth status (gained/maintained/lost)
	// and "already_fed" for rejected repeats.
	Feeds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pigbot_feeds_total",
			Help: "Total number of chat pig feed attempts.",
		},
		[]string{"status"},
	)

	// Duels counts resolved duels by outcome tier.
	Duels = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pigbot_duels_total",
			Help: "Total number of resolved duels.",
		},
		[]string{"outcome"},
	)

	// DuelRejections counts duels that never resolved.
	DuelRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pigbot_duel_rejections_total",
			Help: "Total number of duel attempts rejected before resolution.",
		},
		[]string{"reason"},
	)

	// AchievementsUnlocked counts unlocks by achievement name.
	AchievementsUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pigbot_achievements_unlocked_total",
			Help: "Total number of achievement unlocks.",
		},
		[]string{"code"},
	)

	// InlineChosen counts inline results picked by users, by result kind.
	InlineChosen = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pigbot_inline_chosen_total",
			Help: "Total number of chosen inline results.",
		},
		[]string{"kind"},
	)

	// DuelsInFlight gauges duels holding a guard slot.
	DuelsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pigbot_duels_inflight",
			Help: "Current number of duels in flight.",
		},
	)
)

// Duel rejection reasons.
const (
	ReasonBusy      = "busy"
	ReasonDuplicate = "duplicate"
	ReasonNoPig     = "no_pig"
	ReasonSelf      = "self"
	ReasonError     = "error"
)

func init() {
	prometheus.MustRegister(Feeds, Duels, DuelRejections, AchievementsUnlocked, InlineChosen, DuelsInFlight)
}
