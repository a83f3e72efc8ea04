package resolvers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/engine/resolvers"
	"github.com/sanguosha/resolve/internal/judgement"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/testutil"
)

func newLuoshenCtx(cb choice.Callback) (*engine.Context, *card.Game) {
	g := card.NewGame(2, 4)
	ctx := engine.NewRootContext(g, g.Player(0))
	ctx.Bus = bus.New()
	ctx.MoveService = moveservice.New(ctx.Bus, nil)
	ctx.Judgement = judgement.NewService()
	ctx.ChoiceCallback = cb
	ctx.Stack = engine.NewStack()
	return ctx, g
}

func TestLuoshenLoop_BlackCardMovesToHandAndOffersContinuation(t *testing.T) {
	cb := testutil.NewScriptedCallback(choice.Result{Confirmed: false})
	ctx, g := newLuoshenCtx(cb)
	g.DrawPile.AddCard(&card.Card{ID: "c1", Suit: card.SuitSpade, Rank: 4}, card.ToTop)

	result := resolvers.LuoshenLoop{OwnerSeat: 0}.Resolve(ctx)
	require.True(t, result.Ok())
	require.True(t, ctx.Stack.Run().Ok())

	assert.True(t, g.Player(0).Hand.Contains("c1"))
	assert.False(t, g.Player(0).Judgement.Contains("c1"))
}

func TestLuoshenLoop_RedCardDiscardsAndStopsWithoutPrompt(t *testing.T) {
	cb := testutil.NewScriptedCallback()
	ctx, g := newLuoshenCtx(cb)
	g.DrawPile.AddCard(&card.Card{ID: "c1", Suit: card.SuitHeart, Rank: 4}, card.ToTop)

	result := resolvers.LuoshenLoop{OwnerSeat: 0}.Resolve(ctx)
	require.True(t, result.Ok())
	require.True(t, ctx.Stack.Run().Ok())

	assert.True(t, g.DiscardPile.Contains("c1"))
	assert.False(t, g.Player(0).Hand.Contains("c1"))
}

func TestLuoshenLoop_ConfirmingContinuationDrawsAgain(t *testing.T) {
	cb := testutil.NewScriptedCallback(
		choice.Result{Confirmed: true},
		choice.Result{Confirmed: false},
	)
	ctx, g := newLuoshenCtx(cb)
	g.DrawPile.AddCard(&card.Card{ID: "c2", Suit: card.SuitHeart, Rank: 4}, card.ToTop)
	g.DrawPile.AddCard(&card.Card{ID: "c1", Suit: card.SuitSpade, Rank: 4}, card.ToTop)

	result := resolvers.LuoshenLoop{OwnerSeat: 0}.Resolve(ctx)
	require.True(t, result.Ok())
	require.True(t, ctx.Stack.Run().Ok())

	assert.True(t, g.Player(0).Hand.Contains("c1"))
	assert.True(t, g.DiscardPile.Contains("c2"))
}

func TestLuoshenLoop_EmptyDrawPileEndsLoopImmediately(t *testing.T) {
	cb := testutil.NewScriptedCallback()
	ctx, _ := newLuoshenCtx(cb)

	result := resolvers.LuoshenLoop{OwnerSeat: 0}.Resolve(ctx)
	require.True(t, result.Ok())
	assert.True(t, ctx.Stack.Run().Ok())
}
