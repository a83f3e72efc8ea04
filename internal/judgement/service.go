package judgement

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/rerr"
)

// Modifier lets a "peek/swap" skill substitute the drawn card before a
// judgement is evaluated (spec.md §4.G step 2). Modify returns the
// replacement card's ID and true if it wants to substitute; ok=false
// leaves the current card untouched, letting the service check the next
// modifier.
type Modifier interface {
	Modify(ctx *engine.Context, req engine.JudgementRequest, current *card.Card) (replacementCardID string, ok bool)
}

// Service implements engine.JudgementService (spec.md §4.G
// JudgementResolver flow).
type Service struct {
	Modifiers []Modifier
}

// NewService creates a judgement service with the given modify-judgement
// skills, consulted in order.
func NewService(modifiers ...Modifier) *Service {
	return &Service{Modifiers: modifiers}
}

// RequestJudgement implements engine.JudgementService.
func (s *Service) RequestJudgement(ctx *engine.Context, req engine.JudgementRequest) (engine.JudgementResult, *rerr.Error) {
	owner := ctx.Game.Player(req.JudgeOwnerSeat)
	if owner == nil {
		return engine.JudgementResult{}, rerr.New(rerr.KindInvalidTarget, "resolution.judgement.noSuchSeat", rerr.WithDetail("seat", req.JudgeOwnerSeat))
	}

	top := ctx.Game.DrawPile.Top()
	if top == nil {
		// Recoverable local failure per spec.md §7: draw pile exhausted
		// succeeds with a log entry, no JudgementResult is produced.
		ctx.Log(logsink.LogEntry{EventType: "JudgementResolver", Level: logsink.LevelWarn, Message: "draw pile exhausted, judgement skipped"})
		return engine.JudgementResult{}, nil
	}

	if ctx.MoveService == nil {
		return engine.JudgementResult{}, rerr.New(rerr.KindInvalidState, "resolution.judgement.missingMoveService")
	}
	initial := top
	if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
		Source:   ctx.Game.DrawPile,
		Target:   owner.Judgement,
		CardIDs:  []string{initial.ID},
		Reason:   moveservice.ReasonJudgement,
		Ordering: card.ToTop,
	}); err != nil {
		return engine.JudgementResult{}, rerr.FromCollaborator("resolution.judgement.drawMoveFailed", err)
	}

	if err := ctx.Publish(bus.JudgementEvent{
		Kind:           bus.KindBeforeJudgement,
		JudgeOwnerSeat: req.JudgeOwnerSeat,
		InitialCardID:  initial.ID,
	}); err != nil {
		return engine.JudgementResult{}, rerr.FromCollaborator("resolution.judgement.beforePublishFailed", err)
	}

	final := initial
	if req.AllowModify {
		for _, m := range s.Modifiers {
			replacementID, ok := m.Modify(ctx, req, final)
			if !ok {
				continue
			}
			replacement, replacementZone := ctx.Game.FindCard(replacementID)
			if replacement == nil {
				return engine.JudgementResult{}, rerr.New(rerr.KindCardNotFound, "resolution.judgement.replacementNotFound", rerr.WithDetail("cardId", replacementID))
			}
			if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
				Source:   owner.Judgement,
				Target:   ctx.Game.DiscardPile,
				CardIDs:  []string{final.ID},
				Reason:   moveservice.ReasonDiscard,
			}); err != nil {
				return engine.JudgementResult{}, rerr.FromCollaborator("resolution.judgement.displacedCardMoveFailed", err)
			}
			if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
				Source:   replacementZone,
				Target:   owner.Judgement,
				CardIDs:  []string{replacement.ID},
				Reason:   moveservice.ReasonJudgement,
			}); err != nil {
				return engine.JudgementResult{}, rerr.FromCollaborator("resolution.judgement.replacementMoveFailed", err)
			}
			final = replacement
			break
		}
	}

	success := req.Rule == nil || req.Rule.Evaluate(final)
	result := engine.JudgementResult{InitialCard: initial, FinalCard: final, Success: success}
	ctx.Scratchpad.Set(engine.KeyJudgementResult, result)

	if err := ctx.Publish(bus.JudgementEvent{
		Kind:           bus.KindAfterJudgement,
		JudgeOwnerSeat: req.JudgeOwnerSeat,
		InitialCardID:  initial.ID,
		FinalCardID:    final.ID,
		Success:        success,
	}); err != nil {
		return result, rerr.FromCollaborator("resolution.judgement.afterPublishFailed", err)
	}

	if !req.SkipFinalDiscard {
		if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
			Source:  owner.Judgement,
			Target:  ctx.Game.DiscardPile,
			CardIDs: []string{final.ID},
			Reason:  moveservice.ReasonDiscard,
		}); err != nil {
			return result, rerr.FromCollaborator("resolution.judgement.finalMoveFailed", err)
		}
	}

	return result, nil
}
