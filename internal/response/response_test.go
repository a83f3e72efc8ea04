package response_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/response"
	"github.com/sanguosha/resolve/internal/testutil"
)

func newCtx(numPlayers int) (*engine.Context, *card.Game) {
	g := card.NewGame(numPlayers, 4)
	ctx := engine.NewRootContext(g, g.Player(0))
	ctx.Stack = engine.NewStack()
	ctx.Bus = bus.New()
	ctx.MoveService = moveservice.New(ctx.Bus, nil)
	return ctx, g
}

func TestWindow_PlayedCardMovesToDiscardAndRecordsSuccess(t *testing.T) {
	ctx, g := newCtx(2)
	dodge := &card.Card{ID: "d1", Def: &card.Definition{ID: "dodge", Type: card.TypeBasic, SubType: card.SubTypeDodge}}
	g.Player(1).Hand.AddCard(dodge, card.ToTop)
	ctx.ChoiceCallback = testutil.NewScriptedCallback(choice.Result{Confirmed: true, SelectedCardIDs: []string{"d1"}})

	ctx.Stack.Push(response.Window{ResponderSeat: 1, RequestedSubType: card.SubTypeDodge, CanPass: true}, ctx)
	result := ctx.Stack.Run()

	require.True(t, result.Ok())
	assert.False(t, g.Player(1).Hand.Contains("d1"))
	assert.True(t, g.DiscardPile.Contains("d1"))

	res, ok := engine.ScratchpadGet[response.Result](ctx.Scratchpad, engine.KeyLastResponseResult)
	require.True(t, ok)
	assert.Equal(t, response.StatusSuccess, res.Status)
	assert.Equal(t, "d1", res.ResponseCardID)
}

func TestWindow_PassRecordsPassedAndMovesNothing(t *testing.T) {
	ctx, g := newCtx(2)
	ctx.ChoiceCallback = testutil.NewScriptedCallback(choice.Result{Confirmed: false})

	ctx.Stack.Push(response.Window{ResponderSeat: 1, RequestedSubType: card.SubTypeDodge, CanPass: true}, ctx)
	result := ctx.Stack.Run()

	require.True(t, result.Ok())
	res, ok := engine.ScratchpadGet[response.Result](ctx.Scratchpad, engine.KeyLastResponseResult)
	require.True(t, ok)
	assert.Equal(t, response.StatusPassed, res.Status)
	assert.Equal(t, 0, g.DiscardPile.Len())
}

func TestOffer_FirstAssistantAcceptsAndSucceeds(t *testing.T) {
	ctx, g := newCtx(3)
	dodge := &card.Card{ID: "d1", Def: &card.Definition{ID: "dodge", Type: card.TypeBasic, SubType: card.SubTypeDodge}}
	g.Player(2).Hand.AddCard(dodge, card.ToTop)

	ctx.ChoiceCallback = testutil.NewScriptedCallback(
		choice.Result{Confirmed: true},                               // assistant 2 agrees to help
		choice.Result{Confirmed: true, SelectedCardIDs: []string{"d1"}}, // assistant 2's window
	)

	ctx.Stack.Push(response.Offer{
		BeneficiarySeat:  0,
		RequestedSubType: card.SubTypeDodge,
		EffectName:       "SlashEffect",
		Remaining:        []int{2},
	}, ctx)
	result := ctx.Stack.Run()

	require.True(t, result.Ok())
	dc, ok := engine.ScratchpadGet[engine.DodgeRequestContext](ctx.Scratchpad, engine.KeyDodgeRequestContext)
	require.True(t, ok)
	assert.True(t, dc.Resolved)
	assert.Equal(t, 2, dc.ProvidedBy)
	assert.Equal(t, "d1", dc.ProvidedCard)

	used, ok := engine.ScratchpadGet[bool](ctx.Scratchpad, engine.KeyResponseAssistanceUsed)
	require.True(t, ok)
	assert.True(t, used)
}

func TestOffer_NoAssistantsFallsBackToBeneficiaryWindow(t *testing.T) {
	ctx, g := newCtx(2)
	dodge := &card.Card{ID: "d1", Def: &card.Definition{ID: "dodge", Type: card.TypeBasic, SubType: card.SubTypeDodge}}
	g.Player(0).Hand.AddCard(dodge, card.ToTop)
	ctx.ChoiceCallback = testutil.NewScriptedCallback(choice.Result{Confirmed: true, SelectedCardIDs: []string{"d1"}})

	ctx.Stack.Push(response.Offer{
		BeneficiarySeat:  0,
		RequestedSubType: card.SubTypeDodge,
		Remaining:        nil,
	}, ctx)
	result := ctx.Stack.Run()

	require.True(t, result.Ok())
	assert.True(t, g.DiscardPile.Contains("d1"))
}

func TestOffer_DecliningAssistantMovesToNextCandidate(t *testing.T) {
	ctx, g := newCtx(4)
	dodge := &card.Card{ID: "d1", Def: &card.Definition{ID: "dodge", Type: card.TypeBasic, SubType: card.SubTypeDodge}}
	g.Player(3).Hand.AddCard(dodge, card.ToTop)

	ctx.ChoiceCallback = testutil.NewScriptedCallback(
		choice.Result{Confirmed: false},                                // assistant 2 declines
		choice.Result{Confirmed: true},                                 // assistant 3 agrees
		choice.Result{Confirmed: true, SelectedCardIDs: []string{"d1"}}, // assistant 3's window
	)

	ctx.Stack.Push(response.Offer{
		BeneficiarySeat:  0,
		RequestedSubType: card.SubTypeDodge,
		Remaining:        []int{2, 3},
	}, ctx)
	result := ctx.Stack.Run()

	require.True(t, result.Ok())
	dc, ok := engine.ScratchpadGet[engine.DodgeRequestContext](ctx.Scratchpad, engine.KeyDodgeRequestContext)
	require.True(t, ok)
	assert.Equal(t, 3, dc.ProvidedBy)
}
