// Package response implements the response window and response-assistance
// protocols from spec.md §4.E/§4.F: soliciting a specific card type from a
// player, with at-most-one third-party assistant allowed to answer on the
// original responder's behalf.
//
// Grounded on the teacher's internal/game/effect_resolution.go
// ChooseYesNo/chain-ordering pattern (ask a player, branch on the answer,
// queue follow-up work) and chain.go's LIFO push-handler-then-producer
// idiom, since spec.md §4.F explicitly calls for that same push order:
// "the handler resolver for each assistant is pushed before its response
// window, so when LIFO resolves the window, the handler observes its
// result."
package response

import (
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/rerr"
)

// Status is a response window's terminal state (spec.md §4.E).
type Status string

// Statuses.
const (
	StatusSuccess Status = "ResponseSuccess"
	StatusFailed  Status = "ResponseFailed"
	StatusPassed  Status = "ResponsePassed"
)

// Result is deposited under engine.KeyLastResponseResult when a window
// concludes.
type Result struct {
	Status           Status
	ResponseCardID   string
	ConverterSkillID string
}

// EligibleCards returns a responder's hand cards matching subType, the
// default AllowedCards source for a Window.
func EligibleCards(p *card.Player, subType card.SubType) []string {
	var ids []string
	for _, c := range p.Hand.Cards() {
		if c.SubType() == subType {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Window is the ResponseWindowResolver from spec.md §4.E: solicits
// RequestedSubType from ResponderSeat via the choice callback, moving the
// chosen card to discard before reporting Success.
type Window struct {
	ResponderSeat   int
	RequestedSubType card.SubType
	EffectName      string
	CanPass         bool

	// AllowedCardIDs overrides the default eligible-card computation
	// (EligibleCards against the responder's hand). Set by callers whose
	// eligibility also admits converted cards.
	AllowedCardIDs []string
}

// Kind implements engine.Resolver.
func (Window) Kind() string { return "ResponseWindowResolver" }

// Resolve implements engine.Resolver.
func (w Window) Resolve(ctx *engine.Context) engine.Result {
	responder := ctx.Game.Player(w.ResponderSeat)
	if responder == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidTarget, "resolution.response.noSuchSeat", rerr.WithDetail("seat", w.ResponderSeat)))
	}

	allowed := w.AllowedCardIDs
	if allowed == nil {
		allowed = EligibleCards(responder, w.RequestedSubType)
	}

	if ctx.ChoiceCallback == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.response.missingChoiceCallback"))
	}

	result, err := ctx.ChoiceCallback.RequestChoice(choice.Request{
		PlayerSeat:     w.ResponderSeat,
		ChoiceType:     choice.TypeSelectCards,
		AllowedCardIDs: allowed,
		CanPass:        w.CanPass,
	})
	if err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.response.choiceCallbackFailed", err))
	}

	if !result.Confirmed || len(result.SelectedCardIDs) == 0 {
		ctx.Scratchpad.Set(engine.KeyLastResponseResult, Result{Status: StatusPassed})
		ctx.Log(logsink.LogEntry{EventType: w.EffectName, Level: logsink.LevelInfo, Message: "response window passed"})
		return engine.Success()
	}

	cardID := result.SelectedCardIDs[0]
	c, zone := responder.FindCard(cardID)
	if c == nil {
		return engine.Fail(rerr.New(rerr.KindCardNotFound, "resolution.response.cardNotFound", rerr.WithDetail("cardId", cardID)))
	}

	if ctx.MoveService == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.response.missingMoveService"))
	}
	if err := ctx.MoveService.MoveSingle(moveservice.Descriptor{
		Source:   zone,
		Target:   ctx.Game.DiscardPile,
		CardIDs:  []string{cardID},
		Reason:   moveservice.ReasonDiscard,
		Ordering: card.ToTop,
	}); err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.response.moveFailed", err))
	}

	ctx.Scratchpad.Set(engine.KeyLastResponseResult, Result{
		Status:           StatusSuccess,
		ResponseCardID:   cardID,
		ConverterSkillID: result.ConverterSkillID,
	})
	return engine.Success()
}

// ResolveAssistedWindow runs the response-assistance protocol (spec.md
// §4.F) synchronously and returns the terminal Result directly, instead of
// depositing it in the scratchpad for a later handler to read. Offer and
// ResultHandler are for callers that need the assistance offer to
// interleave with other pushed resolvers; this is for a caller like
// Damage's DodgeWindow hook that needs an immediate answer within a single
// Resolve call.
func ResolveAssistedWindow(ctx *engine.Context, beneficiarySeat int, subType card.SubType, effectName string, candidates []int) (Result, *rerr.Error) {
	if ctx.ChoiceCallback == nil {
		return Result{}, rerr.New(rerr.KindInvalidState, "resolution.assistance.missingChoiceCallback")
	}

	for _, assistant := range candidates {
		confirm, err := ctx.ChoiceCallback.RequestChoice(choice.Request{
			PlayerSeat: assistant,
			ChoiceType: choice.TypeConfirm,
			CanPass:    true,
		})
		if err != nil {
			return Result{}, rerr.FromCollaborator("resolution.assistance.choiceCallbackFailed", err)
		}
		if !confirm.Confirmed {
			continue
		}

		result, rerrErr := resolveWindowDirect(ctx, Window{ResponderSeat: assistant, RequestedSubType: subType, EffectName: effectName, CanPass: true})
		if rerrErr != nil {
			return Result{}, rerrErr
		}
		if result.Status == StatusSuccess {
			return result, nil
		}
	}

	return resolveWindowDirect(ctx, Window{ResponderSeat: beneficiarySeat, RequestedSubType: subType, EffectName: effectName, CanPass: true})
}

// resolveWindowDirect runs w.Resolve and reads back the Result it deposits,
// rather than pushing w onto the stack for a later resolver to read.
func resolveWindowDirect(ctx *engine.Context, w Window) (Result, *rerr.Error) {
	if res := w.Resolve(ctx); !res.Ok() {
		return Result{}, res.Err
	}
	result, _ := engine.ScratchpadGet[Result](ctx.Scratchpad, engine.KeyLastResponseResult)
	return result, nil
}
