package resolvers

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/nullify"
	"github.com/sanguosha/resolve/internal/rerr"
	"github.com/sanguosha/resolve/internal/response"
	"github.com/sanguosha/resolve/internal/rules"
)

// jieDaoShaRenEffectKey scopes this effect's nullification chain, per
// spec.md §4.D ("identified by target player, not by the causing card").
const jieDaoShaRenEffectKey = "JieDaoShaRen.Resolve"

// JieDaoShaRen is the compound-trick resolver from spec.md §4.J: "use A's
// weapon to force A to attack B".
type JieDaoShaRen struct {
	SourceSeat int
	ASeat      int
	BSeat      int
	CardID     string
}

// Kind implements engine.Resolver.
func (JieDaoShaRen) Kind() string { return "JieDaoShaRenResolver" }

// Resolve implements engine.Resolver.
func (j JieDaoShaRen) Resolve(ctx *engine.Context) engine.Result {
	ctx.Stack.Push(JieDaoShaRenHandler{SourceSeat: j.SourceSeat, ASeat: j.ASeat, BSeat: j.BSeat}, ctx)
	ctx.Stack.Push(nullify.Protocol{
		Effect: nullify.Effect{
			IsNullifiable: true,
			EffectKey:     jieDaoShaRenEffectKey,
			TargetSeat:    j.ASeat,
			CausingCardID: j.CardID,
		},
		SourceSeat: j.SourceSeat,
		MaxDepth:   ctx.MaxNullificationDepth(),
	}, ctx)
	return engine.Success()
}

// JieDaoShaRenHandler re-checks legality after nullification and branches
// into the forced-Slash path or the weapon-transfer fallback.
type JieDaoShaRenHandler struct {
	SourceSeat int
	ASeat      int
	BSeat      int
}

// Kind implements engine.Resolver.
func (JieDaoShaRenHandler) Kind() string { return "JieDaoShaRenHandler" }

// Resolve implements engine.Resolver.
func (h JieDaoShaRenHandler) Resolve(ctx *engine.Context) engine.Result {
	key := engine.NullificationKey(jieDaoShaRenEffectKey, h.ASeat)
	nr, _ := engine.ScratchpadGet[engine.NullificationResult](ctx.Scratchpad, key)
	if nr.Nullified {
		ctx.Log(logsink.LogEntry{EventType: "JieDaoShaRenHandler", Level: logsink.LevelInfo, Message: "effect nullified"})
		return engine.Success()
	}

	a := ctx.Game.Player(h.ASeat)
	legal := false
	if a != nil && a.Alive && ctx.RuleService != nil {
		legal = ctx.RuleService.GetLegalTargetsForUse(rules.UsageContext{
			Game:           ctx.Game,
			SourceSeat:     h.ASeat,
			SubType:        card.SubTypeSlash,
			CandidateSeats: []int{h.BSeat},
		}).HasAny
	}

	if !legal {
		ctx.Stack.Push(WeaponTransferBranch{SourceSeat: h.SourceSeat, FromSeat: h.ASeat}, ctx)
		return engine.Success()
	}

	ctx.Stack.Push(ForcedSlashResultHandler{SourceSeat: h.SourceSeat, ASeat: h.ASeat, BSeat: h.BSeat}, ctx)
	ctx.Stack.Push(response.Window{
		ResponderSeat:    h.ASeat,
		RequestedSubType: card.SubTypeSlash,
		EffectName:       "JieDaoShaRen",
		CanPass:          true,
	}, ctx)
	return engine.Success()
}

// ForcedSlashResultHandler reads the forced-Slash window's outcome: success
// deals Slash damage to B, failure falls through to the weapon-transfer
// branch (spec.md §4.J, scenario "target A refuses Slash").
type ForcedSlashResultHandler struct {
	SourceSeat int
	ASeat      int
	BSeat      int
}

// Kind implements engine.Resolver.
func (ForcedSlashResultHandler) Kind() string { return "ForcedSlashResultHandler" }

// Resolve implements engine.Resolver.
func (h ForcedSlashResultHandler) Resolve(ctx *engine.Context) engine.Result {
	result, _ := engine.ScratchpadGet[response.Result](ctx.Scratchpad, engine.KeyLastResponseResult)
	if result.Status != response.StatusSuccess {
		ctx.Stack.Push(WeaponTransferBranch{SourceSeat: h.SourceSeat, FromSeat: h.ASeat}, ctx)
		return engine.Success()
	}

	dctx := ctx.WithPendingDamage(&bus.DamageEvent{
		SourceSeat:    h.ASeat,
		TargetSeat:    h.BSeat,
		Amount:        1,
		Type:          bus.DamageNormal,
		Reason:        "Slash",
		Preventable:   true,
		TriggersDying: true,
	})
	ctx.Stack.Push(Damage{DodgeWindow: AssistedDodgeWindow}, dctx)
	return engine.Success()
}

// WeaponTransferBranch removes FromSeat's equipped weapon and moves it to
// SourceSeat's hand (spec.md §4.J "weapon-transfer branch").
type WeaponTransferBranch struct {
	SourceSeat int
	FromSeat   int
}

// Kind implements engine.Resolver.
func (WeaponTransferBranch) Kind() string { return "WeaponTransferBranch" }

// Resolve implements engine.Resolver.
func (b WeaponTransferBranch) Resolve(ctx *engine.Context) engine.Result {
	from := ctx.Game.Player(b.FromSeat)
	source := ctx.Game.Player(b.SourceSeat)
	if from == nil || source == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.jiedaoshaoren.noSuchSeat"))
	}

	equipped := from.Equipment.Cards()
	if len(equipped) == 0 {
		// Recoverable local failure per spec.md §7: no weapon to transfer.
		ctx.Log(logsink.LogEntry{EventType: "WeaponTransferBranch", Level: logsink.LevelInfo, Message: "no equipment to transfer"})
		return engine.Success()
	}
	weapon := equipped[0]

	if ctx.SkillRegistry != nil {
		ctx.SkillRegistry.DetachEquipmentSkill(weapon, b.FromSeat)
	}
	if ctx.MoveService == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.jiedaoshaoren.missingMoveService"))
	}
	if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
		Source:  from.Equipment,
		Target:  source.Hand,
		CardIDs: []string{weapon.ID},
		Reason:  moveservice.ReasonTransfer,
	}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.jiedaoshaoren.transferFailed", err))
	}

	if err := ctx.Publish(bus.WeaponTransferredEvent{FromSeat: b.FromSeat, ToSeat: b.SourceSeat, CardID: weapon.ID}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.jiedaoshaoren.transferPublishFailed", err))
	}
	return engine.Success()
}
