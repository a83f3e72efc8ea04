package response

import (
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/rerr"
)

// Offer is one step of the response-assistance protocol from spec.md §4.F
// (Hujia-style): ask the next eligible assistant whether they want to
// answer on the beneficiary's behalf. Remaining holds the not-yet-asked
// assistants in order; Offer re-pushes itself with the tail when an
// assistant declines, and falls back to a normal Window targeting the
// beneficiary once the list is exhausted.
type Offer struct {
	BeneficiarySeat  int
	RequestedSubType card.SubType
	EffectName       string
	Remaining        []int
}

// Kind implements engine.Resolver.
func (Offer) Kind() string { return "ResponseAssistanceOffer" }

// Resolve implements engine.Resolver.
func (o Offer) Resolve(ctx *engine.Context) engine.Result {
	if len(o.Remaining) == 0 {
		ctx.Stack.Push(Window{
			ResponderSeat:    o.BeneficiarySeat,
			RequestedSubType: o.RequestedSubType,
			EffectName:       o.EffectName,
			CanPass:          true,
		}, ctx)
		return engine.Success()
	}

	assistant := o.Remaining[0]
	rest := o.Remaining[1:]

	if ctx.ChoiceCallback == nil {
		return engine.Fail(rerr.New(rerr.KindInvalidState, "resolution.assistance.missingChoiceCallback"))
	}
	result, err := ctx.ChoiceCallback.RequestChoice(choice.Request{
		PlayerSeat: assistant,
		ChoiceType: choice.TypeConfirm,
		CanPass:    true,
	})
	if err != nil {
		return engine.Fail(rerr.FromCollaborator("resolution.assistance.choiceCallbackFailed", err))
	}

	if !result.Confirmed {
		ctx.Stack.Push(Offer{
			BeneficiarySeat:  o.BeneficiarySeat,
			RequestedSubType: o.RequestedSubType,
			EffectName:       o.EffectName,
			Remaining:        rest,
		}, ctx)
		return engine.Success()
	}

	ctx.Stack.Push(ResultHandler{
		BeneficiarySeat:  o.BeneficiarySeat,
		AssistantSeat:    assistant,
		RequestedSubType: o.RequestedSubType,
		EffectName:       o.EffectName,
		Remaining:        rest,
	}, ctx)
	ctx.Stack.Push(Window{
		ResponderSeat:    assistant,
		RequestedSubType: o.RequestedSubType,
		EffectName:       o.EffectName,
		CanPass:          true,
	}, ctx)
	return engine.Success()
}

// ResultHandler runs after an assistant's Window resolves (pushed below it,
// per spec.md §4.F's required push order). On success it records the
// assistance in the scratchpad and stops the iteration — "at most one
// assistant... provides the card" (spec.md §8 law 8). On anything else it
// continues offering the remaining candidates.
type ResultHandler struct {
	BeneficiarySeat  int
	AssistantSeat    int
	RequestedSubType card.SubType
	EffectName       string
	Remaining        []int
}

// Kind implements engine.Resolver.
func (ResultHandler) Kind() string { return "ResponseAssistanceResultHandler" }

// Resolve implements engine.Resolver.
func (h ResultHandler) Resolve(ctx *engine.Context) engine.Result {
	res, ok := engine.ScratchpadGet[Result](ctx.Scratchpad, engine.KeyLastResponseResult)
	if ok && res.Status == StatusSuccess {
		ctx.Scratchpad.Set(engine.KeyDodgeRequestContext, engine.DodgeRequestContext{
			Resolved:     true,
			ProvidedBy:   h.AssistantSeat,
			ProvidedCard: res.ResponseCardID,
		})
		ctx.Scratchpad.Set(engine.KeyResponseAssistanceUsed, true)
		ctx.Scratchpad.Set(engine.KeyResponseAssistantSeat, h.AssistantSeat)
		return engine.Success()
	}

	ctx.Stack.Push(Offer{
		BeneficiarySeat:  h.BeneficiarySeat,
		RequestedSubType: h.RequestedSubType,
		EffectName:       h.EffectName,
		Remaining:        h.Remaining,
	}, ctx)
	return engine.Success()
}
