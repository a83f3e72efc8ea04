// Package nullify implements the nullification protocol from spec.md §4.D:
// a recursive counter-counter solicitation scoped to one effect instance
// (not the originating card), whose final chain-length parity decides
// whether the effect fires.
//
// Grounded on the teacher's effect_resolution.go trigger-ordering loop
// (ask each eligible player in turn, branch on their answer) generalized
// from "simultaneous trigger collection" to "sequential counter-chain",
// since the teacher's TCG has no nullification-style counter mechanic of
// its own to draw on directly.
package nullify

import (
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/rerr"
)

// Effect describes the nullifiable unit spec.md §4.D calls
// INullifiableEffect: one target-specific firing of a trick, identified by
// EffectKey (e.g. "Dismantle.Resolve", "DelayedTrick.Judgement").
type Effect struct {
	IsNullifiable bool
	EffectKey     string
	TargetSeat    int
	CausingCardID string
}

// Protocol is the NullificationProtocol resolver. Pushed on top of the
// corresponding effect handler (spec.md §4.I step 5) so it resolves first
// and deposits a NullificationResult the handler can read.
type Protocol struct {
	Effect     Effect
	SourceSeat int
	MaxDepth   int
}

// Kind implements engine.Resolver.
func (Protocol) Kind() string { return "NullificationProtocol" }

// Resolve implements engine.Resolver.
func (p Protocol) Resolve(ctx *engine.Context) engine.Result {
	key := engine.NullificationKey(p.Effect.EffectKey, p.Effect.TargetSeat)

	if !p.Effect.IsNullifiable {
		// Untargeted mass tricks skip the protocol entirely (spec.md §4.D).
		ctx.Scratchpad.Set(key, engine.NullificationResult{Nullified: false})
		return engine.Success()
	}

	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 16
	}

	chainLength, rerrErr := p.solicit(ctx, p.SourceSeat, 0, maxDepth)
	if rerrErr != nil {
		return engine.Fail(rerrErr)
	}

	nullified := chainLength%2 == 1
	ctx.Scratchpad.Set(key, engine.NullificationResult{Nullified: nullified, NullificationCount: chainLength})
	ctx.Log(logsink.LogEntry{
		EventType: "NullificationProtocol",
		Level:     logsink.LevelInfo,
		Message:   "nullification chain resolved",
		Data:      map[string]any{"effectKey": p.Effect.EffectKey, "chainLength": chainLength, "nullified": nullified},
	})
	return engine.Success()
}

// solicit asks each alive player in seat order starting after fromSeat
// whether they want to play a Nullification; the first to accept recurses
// (alternating sides) to solicit a counter against their own card. Returns
// the resulting chain length.
func (p Protocol) solicit(ctx *engine.Context, fromSeat, depth, maxDepth int) (int, *rerr.Error) {
	if depth >= maxDepth {
		return depth, nil
	}

	n := len(ctx.Game.Players)
	for i := 1; i <= n; i++ {
		seat := (fromSeat + i) % n
		player := ctx.Game.Player(seat)
		if player == nil || !player.Alive {
			continue
		}

		eligible := eligibleNullificationCards(player)
		if len(eligible) == 0 {
			continue
		}
		if ctx.ChoiceCallback == nil {
			return depth, rerr.New(rerr.KindInvalidState, "resolution.nullify.missingChoiceCallback")
		}

		confirmResult, err := ctx.ChoiceCallback.RequestChoice(choice.Request{
			PlayerSeat: seat,
			ChoiceType: choice.TypeConfirm,
			CanPass:    true,
		})
		if err != nil {
			return depth, rerr.FromCollaborator("resolution.nullify.confirmFailed", err)
		}
		if !confirmResult.Confirmed {
			continue
		}

		selectResult, err := ctx.ChoiceCallback.RequestChoice(choice.Request{
			PlayerSeat:     seat,
			ChoiceType:     choice.TypeSelectCards,
			AllowedCardIDs: eligible,
		})
		if err != nil {
			return depth, rerr.FromCollaborator("resolution.nullify.selectFailed", err)
		}
		if !selectResult.Confirmed || len(selectResult.SelectedCardIDs) == 0 {
			continue
		}

		cardID := selectResult.SelectedCardIDs[0]
		c, zone := player.FindCard(cardID)
		if c == nil {
			return depth, rerr.New(rerr.KindCardNotFound, "resolution.nullify.cardNotFound", rerr.WithDetail("cardId", cardID))
		}
		if ctx.MoveService == nil {
			return depth, rerr.New(rerr.KindInvalidState, "resolution.nullify.missingMoveService")
		}
		if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
			Source:   zone,
			Target:   ctx.Game.DiscardPile,
			CardIDs:  []string{cardID},
			Reason:   moveservice.ReasonDiscard,
			Ordering: card.ToTop,
		}); err != nil {
			return depth, rerr.FromCollaborator("resolution.nullify.moveFailed", err)
		}

		return p.solicit(ctx, seat, depth+1, maxDepth)
	}

	return depth, nil
}

func eligibleNullificationCards(p *card.Player) []string {
	var ids []string
	for _, c := range p.Hand.Cards() {
		if c.SubType() == card.SubTypeNullification {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
