package resolvers

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/rerr"
)

// LoseHp is the LoseHpResolver from spec.md §4.C: HP loss distinct from
// damage, so it must never fire a damage-triggered listener (law 7, spec.md
// §8) — it publishes HpLostEvent, not DamageEvent.
type LoseHp struct {
	TargetSeat int
	Amount     int
}

// Kind implements engine.Resolver.
func (LoseHp) Kind() string { return "LoseHpResolver" }

// Resolve implements engine.Resolver.
func (r LoseHp) Resolve(ctx *engine.Context) engine.Result {
	if r.Amount <= 0 {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.losehp.nonPositiveAmount", rerr.WithDetail("amount", r.Amount)))
	}
	target := ctx.Game.Player(r.TargetSeat)
	if target == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.losehp.noSuchSeat", rerr.WithDetail("seat", r.TargetSeat)))
	}
	if !target.Alive {
		return engine.Fail(rerr.New(rerr.KindTargetNotAlive, "resolution.losehp.targetNotAlive"))
	}

	previous := target.Health
	target.Health -= r.Amount
	if target.Health < 0 {
		target.Health = 0
	}

	if err := ctx.Publish(bus.HpLostEvent{
		Kind:           bus.KindHpLost,
		TargetSeat:     r.TargetSeat,
		Amount:         r.Amount,
		PreviousHealth: previous,
		NewHealth:      target.Health,
	}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.losehp.hpLostPublishFailed", err))
	}

	if target.Health <= 0 {
		ctx.Scratchpad.Set(engine.KeyDyingPlayerSeat, r.TargetSeat)
		ctx.Stack.Push(AfterHpLostHandler{TargetSeat: r.TargetSeat}, ctx)
		ctx.Stack.Push(Dying{TargetSeat: r.TargetSeat}, ctx)
		return engine.Success()
	}

	if err := ctx.Publish(bus.HpLostEvent{Kind: bus.KindAfterHpLost, TargetSeat: r.TargetSeat, Amount: r.Amount, PreviousHealth: previous, NewHealth: target.Health}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.losehp.afterHpLostPublishFailed", err))
	}
	return engine.Success()
}

// AfterHpLostHandler runs after Dying resolves: it publishes AfterHpLost
// only if the player survived the dying window, suppressing it otherwise
// (spec.md §4.C).
type AfterHpLostHandler struct {
	TargetSeat int
}

// Kind implements engine.Resolver.
func (AfterHpLostHandler) Kind() string { return "AfterHpLostHandler" }

// Resolve implements engine.Resolver.
func (h AfterHpLostHandler) Resolve(ctx *engine.Context) engine.Result {
	target := ctx.Game.Player(h.TargetSeat)
	if target == nil || !target.Alive {
		ctx.Log(logsink.LogEntry{EventType: "AfterHpLostHandler", Level: logsink.LevelInfo, Message: "player died, suppressing AfterHpLost"})
		return engine.Success()
	}
	if err := ctx.Publish(bus.HpLostEvent{Kind: bus.KindAfterHpLost, TargetSeat: h.TargetSeat, NewHealth: target.Health}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.afterHpLost.publishFailed", err))
	}
	return engine.Success()
}
