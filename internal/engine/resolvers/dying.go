package resolvers

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/rerr"
)

// Dying is the DyingResolver from spec.md §4.C / GLOSSARY "Dying": the
// transient state a player enters at 0 HP, during which they have a chance
// to be rescued (typically by a Peach) before being declared dead.
type Dying struct {
	TargetSeat int

	// RescueWindow solicits rescue attempts (e.g. Peach) from whichever
	// players are eligible to offer one, returning the health the target
	// ends the window with. nil means no rescue mechanic is wired — the
	// player simply dies if still at 0 HP.
	RescueWindow func(ctx *engine.Context, targetSeat int) (finalHealth int, err *rerr.Error)
}

// Kind implements engine.Resolver.
func (Dying) Kind() string { return "DyingResolver" }

// Resolve implements engine.Resolver.
func (r Dying) Resolve(ctx *engine.Context) engine.Result {
	target := ctx.Game.Player(r.TargetSeat)
	if target == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.dying.noSuchSeat", rerr.WithDetail("seat", r.TargetSeat)))
	}
	if target.Health > 0 {
		// Already rescued by the time this resolver runs (e.g. a sibling
		// effect healed the target first).
		return engine.Success()
	}

	if err := ctx.Publish(bus.DyingEvent{Kind: bus.KindPlayerDying, PlayerSeat: r.TargetSeat}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.dying.dyingPublishFailed", err))
	}

	if r.RescueWindow != nil {
		finalHealth, rerrErr := r.RescueWindow(ctx, r.TargetSeat)
		if rerrErr != nil {
			return engine.Fail(rerrErr)
		}
		target.Health = finalHealth
	}

	if target.Health > 0 {
		return engine.Success()
	}

	target.Alive = false
	if err := ctx.Publish(bus.DyingEvent{Kind: bus.KindPlayerDied, PlayerSeat: r.TargetSeat}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.dying.deathPublishFailed", err))
	}
	return engine.Success()
}
