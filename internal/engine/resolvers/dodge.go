package resolvers

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/response"
	"github.com/sanguosha/resolve/internal/rerr"
)

// AssistedDodgeWindow is the default DodgeWindow for Damage: the target
// responds with a Dodge, and any other alive player may answer on the
// target's behalf (spec.md §4.F, genre name Hujia). Wire it into Damage's
// DodgeWindow field wherever preventable damage should actually be
// preventable rather than an inert flag.
func AssistedDodgeWindow(ctx *engine.Context, d bus.DamageEvent) (bool, *rerr.Error) {
	var candidates []int
	for _, p := range ctx.Game.Players {
		if p.Seat != d.TargetSeat && p.Alive {
			candidates = append(candidates, p.Seat)
		}
	}

	result, rerrErr := response.ResolveAssistedWindow(ctx, d.TargetSeat, card.SubTypeDodge, "Dodge", candidates)
	if rerrErr != nil {
		return false, rerrErr
	}
	return result.Status == response.StatusSuccess, nil
}
