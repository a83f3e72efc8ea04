// Package rules provides the RuleService external collaborator (spec.md
// §6, §7): GetLegalTargetsForUse answers "which seats can legally be
// targeted by this card use", folding in per-card distance/visibility
// rules (spec.md §4.I: Steal distance ≤1, Dismantle no limit) so resolvers
// never hardcode distance math themselves.
//
// The teacher's duel engine has no seat-adjacency concept (a two-player
// card game has none to speak of), so this package is grounded on its
// validation shape — chain.go/effect_resolution.go's "enumerate candidates,
// then filter" structure — generalized to seat-order adjacency, the
// canonical range model for this genre of game (see GLOSSARY "distance").
package rules

import (
	"github.com/sanguosha/resolve/internal/card"
)

// UsageContext describes one prospective card use: who is using which
// card's sub-type, from which seat, against which candidate seats.
type UsageContext struct {
	Game           *card.Game
	SourceSeat     int
	SubType        card.SubType
	CandidateSeats []int
}

// TargetResult is RuleService.GetLegalTargetsForUse's return value.
type TargetResult struct {
	HasAny bool
	Items  []int
}

// Service is the RuleService collaborator. Distance is computed as the
// shorter of the two directions around the seat circle, counting every
// seat (dead players included), matching the genre's standard
// adjacency-based range model.
type Service struct{}

// New creates a RuleService.
func New() *Service {
	return &Service{}
}

// MaxDistance returns the maximum seat distance the given sub-type allows,
// or -1 for "no limit".
func MaxDistance(subType card.SubType) int {
	switch subType {
	case card.SubTypeSteal:
		return 1
	default:
		return -1
	}
}

// GetLegalTargetsForUse filters ctx.CandidateSeats down to seats that are
// alive, not the source, and within the sub-type's distance limit.
func (s *Service) GetLegalTargetsForUse(ctx UsageContext) TargetResult {
	limit := MaxDistance(ctx.SubType)
	var items []int
	for _, seat := range ctx.CandidateSeats {
		if seat == ctx.SourceSeat {
			continue
		}
		p := ctx.Game.Player(seat)
		if p == nil || !p.Alive {
			continue
		}
		if limit >= 0 && Distance(ctx.Game, ctx.SourceSeat, seat) > limit {
			continue
		}
		items = append(items, seat)
	}
	return TargetResult{HasAny: len(items) > 0, Items: items}
}

// Distance returns the seat distance between two players: the fewer of the
// clockwise and counter-clockwise hops around the table among seats that
// exist (dead players still occupy a seat for distance purposes; only
// aliveness gates legality, not distance, per spec.md §4.I).
func Distance(g *card.Game, from, to int) int {
	n := len(g.Players)
	if n == 0 {
		return 0
	}
	d := to - from
	if d < 0 {
		d += n
	}
	rev := n - d
	if rev < d {
		return rev
	}
	return d
}
