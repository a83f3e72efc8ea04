package resolvers

import (
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/nullify"
	"github.com/sanguosha/resolve/internal/rerr"
	"github.com/sanguosha/resolve/internal/rules"
)

// Destination names where a targeted trick's chosen card ends up when it
// is not nullified (spec.md §4.I step 6).
type Destination int

// Destinations.
const (
	// DestinationSourceHand is Steal's outcome.
	DestinationSourceHand Destination = iota
	// DestinationDiscard is Dismantle's outcome.
	DestinationDiscard
)

// TargetedTrick is the shared validate/enumerate/solicit resolver for the
// targeted-immediate-trick family (Steal, Dismantle; spec.md §4.I). Each
// card supplies its SubType, EffectKey (for the nullification protocol),
// and Destination.
type TargetedTrick struct {
	SourceSeat  int
	TargetSeat  int
	SubType     card.SubType
	EffectKey   string
	Destination Destination
}

// Kind implements engine.Resolver.
func (t TargetedTrick) Kind() string { return "TargetedTrickResolver:" + string(t.SubType) }

// Resolve implements engine.Resolver.
func (t TargetedTrick) Resolve(ctx *engine.Context) engine.Result {
	if t.TargetSeat == t.SourceSeat {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.targetedTrick.cannotTargetSelf"))
	}
	target := ctx.Game.Player(t.TargetSeat)
	if target == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.targetedTrick.noSuchSeat", rerr.WithDetail("seat", t.TargetSeat)))
	}
	if !target.Alive {
		return engine.Fail(rerr.New(rerr.KindTargetNotAlive, "resolution.targetedTrick.targetNotAlive", rerr.WithDetail("seat", t.TargetSeat)))
	}
	if ctx.RuleService != nil {
		if limit := rules.MaxDistance(t.SubType); limit >= 0 {
			if d := rules.Distance(ctx.Game, t.SourceSeat, t.TargetSeat); d > limit {
				return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.targetedTrick.targetTooFar", rerr.WithDetail("distance", d)))
			}
		}
	}

	var candidates []string
	for _, z := range target.Zones() {
		for _, c := range z.Cards() {
			candidates = append(candidates, c.ID)
		}
	}
	if len(candidates) == 0 {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.targetedTrick.noCandidateCards", rerr.WithDetail("seat", t.TargetSeat)))
	}

	if ctx.ChoiceCallback == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.targetedTrick.missingChoiceCallback"))
	}
	choiceResult, err := ctx.ChoiceCallback.RequestChoice(choice.Request{
		PlayerSeat:     t.SourceSeat,
		ChoiceType:     choice.TypeSelectCards,
		AllowedCardIDs: candidates,
		TargetConstraints: &choice.TargetConstraints{MinCount: 1, MaxCount: 1},
	})
	if err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.targetedTrick.choiceFailed", err))
	}
	if !choiceResult.Confirmed || len(choiceResult.SelectedCardIDs) == 0 {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.targetedTrick.noCardSelected"))
	}
	chosenID := choiceResult.SelectedCardIDs[0]

	effect := nullify.Effect{
		IsNullifiable: true,
		EffectKey:     t.EffectKey,
		TargetSeat:    t.TargetSeat,
		CausingCardID: chosenID,
	}

	// Pushed in this order so the nullification protocol (pushed last,
	// popped first) resolves before the handler reads its result.
	ctx.Stack.Push(TargetedTrickHandler{
		SourceSeat:  t.SourceSeat,
		TargetSeat:  t.TargetSeat,
		CardID:      chosenID,
		EffectKey:   t.EffectKey,
		Destination: t.Destination,
	}, ctx)
	ctx.Stack.Push(nullify.Protocol{Effect: effect, SourceSeat: t.SourceSeat, MaxDepth: ctx.MaxNullificationDepth()}, ctx)

	return engine.Success()
}

// TargetedTrickHandler performs the final move once the nullification
// protocol beneath it has resolved.
type TargetedTrickHandler struct {
	SourceSeat  int
	TargetSeat  int
	CardID      string
	EffectKey   string
	Destination Destination
}

// Kind implements engine.Resolver.
func (TargetedTrickHandler) Kind() string { return "TargetedTrickHandler" }

// Resolve implements engine.Resolver.
func (h TargetedTrickHandler) Resolve(ctx *engine.Context) engine.Result {
	key := engine.NullificationKey(h.EffectKey, h.TargetSeat)
	nr, _ := engine.ScratchpadGet[engine.NullificationResult](ctx.Scratchpad, key)
	if nr.Nullified {
		ctx.Log(logsink.LogEntry{EventType: "TargetedTrickHandler", Level: logsink.LevelInfo, Message: "effect nullified"})
		return engine.Success()
	}

	target := ctx.Game.Player(h.TargetSeat)
	if target == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.targetedTrick.noSuchSeat", rerr.WithDetail("seat", h.TargetSeat)))
	}
	_, zone := target.FindCard(h.CardID)
	if zone == nil {
		// The card left the target's zones between solicitation and
		// resolution (e.g. it was itself stolen first) — recoverable.
		ctx.Log(logsink.LogEntry{EventType: "TargetedTrickHandler", Level: logsink.LevelInfo, Message: "chosen card no longer present, skipping"})
		return engine.Success()
	}
	if ctx.MoveService == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.targetedTrick.missingMoveService"))
	}

	var dest *card.Zone
	var reason moveservice.Reason
	switch h.Destination {
	case DestinationSourceHand:
		source := ctx.Game.Player(h.SourceSeat)
		if source == nil {
			return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.targetedTrick.noSuchSeat", rerr.WithDetail("seat", h.SourceSeat)))
		}
		dest = source.Hand
		reason = moveservice.ReasonSteal
	default:
		dest = ctx.Game.DiscardPile
		reason = moveservice.ReasonDiscard
	}

	if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
		Source:  zone,
		Target:  dest,
		CardIDs: []string{h.CardID},
		Reason:  reason,
	}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.targetedTrick.moveFailed", err))
	}
	return engine.Success()
}
