// Package delayedtrick implements the delayed-trick dispatcher from
// spec.md §4.H: couples a judgement outcome to a suit-specific
// success/failure effect and decides how the card leaves the judgement
// zone afterward (discard, for most; migrate to the next alive player, for
// Shandian).
//
// Grounded on the teacher's internal/game/effect_resolution.go
// Before/After event bracketing reused here around the judgement call, and
// special.go's "resolve an effect, then decide the card's fate" shape.
package delayedtrick

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/engine/resolvers"
	"github.com/sanguosha/resolve/internal/judgement"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/rerr"
)

// Binding is a delayed trick's success/failure wiring (spec.md §4.H table).
type Binding struct {
	Name    string
	Rule    engine.Rule
	OnSuccess func(ctx *engine.Context, ownerSeat int, finalCard *card.Card) engine.Result
	OnFailure func(ctx *engine.Context, ownerSeat int, finalCard *card.Card) engine.Result
}

// Lebusishu is the 乐不思蜀 binding: success (suit Heart) is a no-op,
// failure sets Flags["SkipPlayPhase"]. Both paths discard the judged card
// (spec.md §4.H: "after resolution, the card is removed from the owner's
// judgement zone").
var Lebusishu = Binding{
	Name: "Lebusishu",
	Rule: judgement.SuitRule{Suit: card.SuitHeart},
	OnSuccess: func(ctx *engine.Context, ownerSeat int, finalCard *card.Card) engine.Result {
		return discardJudgementCard(ctx, ownerSeat, finalCard)
	},
	OnFailure: func(ctx *engine.Context, ownerSeat int, finalCard *card.Card) engine.Result {
		owner := ctx.Game.Player(ownerSeat)
		if owner != nil {
			owner.SetFlag("SkipPlayPhase", true)
		}
		return discardJudgementCard(ctx, ownerSeat, finalCard)
	},
}

// Shandian is the 闪电 binding: success (Spade, rank 2-9) deals 3 Thunder
// damage to its owner; failure relocates the card to the next alive player
// instead of discarding it.
var Shandian = Binding{
	Name: "Shandian",
	Rule: judgement.NewComposite(judgement.OpAnd, judgement.SuitRule{Suit: card.SuitSpade}, judgement.RankRangeRule{Lo: 2, Hi: 9}),
	OnSuccess: func(ctx *engine.Context, ownerSeat int, finalCard *card.Card) engine.Result {
		// No player "deals" Shandian's damage; -1 marks a sourceless hit
		// rather than misattributing it to seat 0 (spec.md's reference
		// pseudocode writes source=0, which this engine treats as a
		// placeholder rather than literally seat 0 — see DESIGN.md).
		dctx := ctx.WithPendingDamage(&bus.DamageEvent{
			SourceSeat:    -1,
			TargetSeat:    ownerSeat,
			Amount:        3,
			Type:          bus.DamageThunder,
			Reason:        "Shandian",
			TriggersDying: true,
		})
		ctx.Stack.Push(resolvers.Damage{}, dctx)
		return discardJudgementCard(ctx, ownerSeat, finalCard)
	},
	OnFailure: func(ctx *engine.Context, ownerSeat int, finalCard *card.Card) engine.Result {
		next := ctx.Game.NextAliveSeat(ownerSeat)
		if next < 0 {
			// No other alive player — spec.md §4.H: "leave/discard". The
			// Dispatcher always requests SkipFinalDiscard, so with no
			// destination this falls through to an explicit discard here.
			return discardJudgementCard(ctx, ownerSeat, finalCard)
		}

		owner := ctx.Game.Player(ownerSeat)
		target := ctx.Game.Player(next)
		if owner == nil || target == nil || ctx.MoveService == nil {
			return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.shandian.missingCollaborator"))
		}
		if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
			Source:  owner.Judgement,
			Target:  target.Judgement,
			CardIDs: []string{finalCard.ID},
			Reason:  moveservice.ReasonDelayedTrickMigration,
		}); err != nil {
			return engine.Fail(rerr.FromCollaborator("resolution.shandian.migrationFailed", err))
		}
		return engine.Success()
	},
}

// discardJudgementCard moves finalCard from owner's judgement zone to the
// discard pile, the default "the card is removed from the owner's
// judgement zone" disposal spec.md §4.H calls for once a Binding callback
// has run (Dispatcher always requests SkipFinalDiscard so the judgement
// service leaves that decision to the caller). A missing owner or a card
// already moved out of Judgement (e.g. by a skill reacting to the
// judgement) is treated as already handled, not an error.
func discardJudgementCard(ctx *engine.Context, ownerSeat int, finalCard *card.Card) engine.Result {
	if ctx.MoveService == nil {
		return engine.Success()
	}
	owner := ctx.Game.Player(ownerSeat)
	if owner == nil || !owner.Judgement.Contains(finalCard.ID) {
		return engine.Success()
	}
	if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
		Source:  owner.Judgement,
		Target:  ctx.Game.DiscardPile,
		CardIDs: []string{finalCard.ID},
		Reason:  moveservice.ReasonDiscard,
	}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.delayedtrick.discardFailed", err))
	}
	return engine.Success()
}

// Dispatcher is the DelayedTrickResolver: it requests a judgement against
// Binding.Rule for OwnerSeat and runs the matching success/failure effect.
type Dispatcher struct {
	OwnerSeat int
	Binding   Binding
}

// Kind implements engine.Resolver.
func (d Dispatcher) Kind() string { return "DelayedTrickResolver:" + d.Binding.Name }

// Resolve implements engine.Resolver.
func (d Dispatcher) Resolve(ctx *engine.Context) engine.Result {
	if ctx.Judgement == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.delayedtrick.missingJudgementService"))
	}

	result, rerrErr := ctx.Judgement.RequestJudgement(ctx, engine.JudgementRequest{
		JudgeOwnerSeat:   d.OwnerSeat,
		Reason:           engine.JudgementReasonDelayedTrick,
		Source:           d.Binding.Name,
		Rule:             d.Binding.Rule,
		AllowModify:      true,
		SkipFinalDiscard: true,
	})
	if rerrErr != nil {
		return engine.Fail(rerrErr)
	}
	if result.FinalCard == nil {
		// Draw pile exhausted — the judgement itself already logged this.
		return engine.Success()
	}

	ctx.Log(logsink.LogEntry{
		EventType: d.Kind(),
		Level:     logsink.LevelInfo,
		Message:   "delayed trick judgement resolved",
		Data:      map[string]any{"success": result.Success, "ownerSeat": d.OwnerSeat},
	})

	if result.Success {
		return d.Binding.OnSuccess(ctx, d.OwnerSeat, result.FinalCard)
	}
	return d.Binding.OnFailure(ctx, d.OwnerSeat, result.FinalCard)
}
