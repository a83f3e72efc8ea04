package resolvers

import (
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/judgement"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/rerr"
)

// LuoshenLoop is the skill-loop resolver from spec.md §4.K: while the
// player elects to continue and the draw pile is non-empty, judge a card;
// black moves it to hand and offers another judgement, red discards it and
// stops. Iteration counts the re-push depth so a misbehaving
// continuation predicate can't re-push forever; config.ResolutionConfig.
// MaxLoopIterations is the cap (spec.md never bounds this itself, since a
// well-behaved player always runs out of draw pile or declines first).
type LuoshenLoop struct {
	OwnerSeat int
	Iteration int
}

// Kind implements engine.Resolver.
func (LuoshenLoop) Kind() string { return "LuoshenLoop" }

// Resolve implements engine.Resolver.
func (l LuoshenLoop) Resolve(ctx *engine.Context) engine.Result {
	if l.Iteration >= ctx.MaxLoopIterations() {
		ctx.Log(logsink.LogEntry{EventType: "LuoshenLoop", Level: logsink.LevelWarn, Message: "iteration cap reached, loop ends", Data: map[string]any{"iteration": l.Iteration}})
		return engine.Success()
	}
	if ctx.Game.DrawPile.Len() == 0 {
		ctx.Log(logsink.LogEntry{EventType: "LuoshenLoop", Level: logsink.LevelInfo, Message: "draw pile exhausted, loop ends"})
		return engine.Success()
	}
	if ctx.Judgement == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.luoshen.missingJudgementService"))
	}

	ctx.Stack.Push(LuoshenResultHandler{OwnerSeat: l.OwnerSeat, Iteration: l.Iteration}, ctx)
	return engine.Success()
}

// LuoshenResultHandler requests the judgement itself (SkipFinalDiscard so
// it can move the black-suit card to hand instead of letting the
// judgement service discard it), inspects the result, and re-pushes
// LuoshenLoop if the player elects to continue.
type LuoshenResultHandler struct {
	OwnerSeat int
	Iteration int
}

// Kind implements engine.Resolver.
func (LuoshenResultHandler) Kind() string { return "LuoshenResultHandler" }

// Resolve implements engine.Resolver.
func (h LuoshenResultHandler) Resolve(ctx *engine.Context) engine.Result {
	result, rerrErr := ctx.Judgement.RequestJudgement(ctx, engine.JudgementRequest{
		JudgeOwnerSeat:   h.OwnerSeat,
		Reason:           engine.JudgementReasonSkill,
		Source:           "Luoshen",
		Rule:             judgement.BlackRule{},
		AllowModify:      true,
		SkipFinalDiscard: true,
	})
	if rerrErr != nil {
		return engine.Fail(rerrErr)
	}
	if result.FinalCard == nil {
		return engine.Success()
	}

	owner := ctx.Game.Player(h.OwnerSeat)
	if owner == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.luoshen.noSuchSeat", rerr.WithDetail("seat", h.OwnerSeat)))
	}
	if ctx.MoveService == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.luoshen.missingMoveService"))
	}

	if !result.Success {
		if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
			Source:  owner.Judgement,
			Target:  ctx.Game.DiscardPile,
			CardIDs: []string{result.FinalCard.ID},
			Reason:  moveservice.ReasonDiscard,
		}); err != nil {
			return engine.Fail(rerr.FromCollaborator("resolution.luoshen.discardFailed", err))
		}
		return engine.Success()
	}

	if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
		Source:  owner.Judgement,
		Target:  owner.Hand,
		CardIDs: []string{result.FinalCard.ID},
		Reason:  moveservice.ReasonJudgement,
	}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.luoshen.handMoveFailed", err))
	}

	if ctx.ChoiceCallback == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.luoshen.missingChoiceCallback"))
	}
	continueResult, err := ctx.ChoiceCallback.RequestChoice(choice.Request{
		PlayerSeat: h.OwnerSeat,
		ChoiceType: choice.TypeConfirm,
		CanPass:    true,
	})
	if err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.luoshen.continueChoiceFailed", err))
	}
	if continueResult.Confirmed {
		ctx.Stack.Push(LuoshenLoop{OwnerSeat: h.OwnerSeat, Iteration: h.Iteration + 1}, ctx)
	}
	return engine.Success()
}
