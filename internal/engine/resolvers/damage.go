// Package resolvers implements the concrete effect resolvers spec.md §4
// names: damage/HP-loss, targeted tricks, compound tricks, and skill loops.
// Grounded on the teacher's internal/game/battle.go damage-step sequencing
// (publish trigger events around a fixed mutation point) and effect.go's
// OnLeaveField/Resolve shape, generalized to spec.md's resolver contract.
package resolvers

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/rerr"
)

// Damage is the DamageResolver from spec.md §4.C. It reads ctx.PendingDamage,
// validates the target, runs the Before/dodge/mutate/After sequence, and
// — when the hit triggers dying — pushes the AfterDamage handler beneath a
// DyingResolver so Dying runs first and the handler can observe its outcome.
type Damage struct {
	// DodgeWindow opens a prevention response window for preventable
	// damage, returning true if the damage was prevented. nil means no
	// dodge mechanic is wired (damage is never preventable).
	DodgeWindow func(ctx *engine.Context, d bus.DamageEvent) (prevented bool, err *rerr.Error)
}

// Kind implements engine.Resolver.
func (Damage) Kind() string { return "DamageResolver" }

// Resolve implements engine.Resolver.
func (r Damage) Resolve(ctx *engine.Context) engine.Result {
	if ctx.PendingDamage == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.damage.missingDescriptor"))
	}
	d := *ctx.PendingDamage
	target := ctx.Game.Player(d.TargetSeat)
	if target == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.damage.noSuchSeat", rerr.WithDetail("seat", d.TargetSeat)))
	}
	if !target.Alive {
		ctx.Log(logsink.LogEntry{EventType: "DamageResolver", Level: logsink.LevelInfo, Message: "target already dead, skipping"})
		return engine.Success()
	}

	d.Kind = bus.KindBeforeDamage
	if err := ctx.Publish(d); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.damage.beforeDamagePublishFailed", err))
	}

	if d.Preventable && r.DodgeWindow != nil {
		prevented, rerrErr := r.DodgeWindow(ctx, d)
		if rerrErr != nil {
			return engine.Fail(rerrErr)
		}
		if prevented {
			ctx.Log(logsink.LogEntry{EventType: "DamageResolver", Level: logsink.LevelInfo, Message: "damage prevented"})
			return engine.Success()
		}
	}

	previous := target.Health
	target.Health -= d.Amount
	if target.Health < 0 {
		target.Health = 0
	}

	d.Kind = bus.KindDamage
	if err := ctx.Publish(d); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.damage.damagePublishFailed", err))
	}
	d.Kind = bus.KindAfterDamage
	if err := ctx.Publish(d); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.damage.afterDamagePublishFailed", err))
	}

	if target.Health <= 0 && d.TriggersDying {
		ctx.Scratchpad.Set(engine.KeyDyingPlayerSeat, target.Seat)
		ctx.Stack.Push(AfterDamageHandler{TargetSeat: target.Seat, PreviousHealth: previous}, ctx)
		ctx.Stack.Push(Dying{TargetSeat: target.Seat}, ctx)
	}
	return engine.Success()
}

// AfterDamageHandler runs after DyingResolver when damage drove a player to
// 0 HP, observing whether the dying window rescued them.
type AfterDamageHandler struct {
	TargetSeat     int
	PreviousHealth int
}

// Kind implements engine.Resolver.
func (AfterDamageHandler) Kind() string { return "AfterDamageHandler" }

// Resolve implements engine.Resolver.
func (h AfterDamageHandler) Resolve(ctx *engine.Context) engine.Result {
	target := ctx.Game.Player(h.TargetSeat)
	if target == nil {
		return engine.Success()
	}
	if !target.Alive {
		ctx.Log(logsink.LogEntry{EventType: "AfterDamageHandler", Level: logsink.LevelInfo, Message: "player died, suppressing further AfterDamage"})
	}
	return engine.Success()
}
