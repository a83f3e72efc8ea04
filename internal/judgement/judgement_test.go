package judgement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/engine"
	"github.com/sanguosha/resolve/internal/judgement"
	"github.com/sanguosha/resolve/internal/moveservice"
)

func newCtx() (*engine.Context, *card.Game) {
	g := card.NewGame(2, 4)
	ctx := engine.NewRootContext(g, g.Player(0))
	ctx.Bus = bus.New()
	ctx.MoveService = moveservice.New(ctx.Bus, nil)
	ctx.Stack = engine.NewStack()
	return ctx, g
}

func TestRules_SuitAndRankRangeAndBlackRed(t *testing.T) {
	spade5 := &card.Card{Suit: card.SuitSpade, Rank: 5}
	heartK := &card.Card{Suit: card.SuitHeart, Rank: 13}

	assert.True(t, judgement.SuitRule{Suit: card.SuitSpade}.Evaluate(spade5))
	assert.False(t, judgement.SuitRule{Suit: card.SuitSpade}.Evaluate(heartK))

	assert.True(t, judgement.RankRangeRule{Lo: 1, Hi: 9}.Evaluate(spade5))
	assert.False(t, judgement.RankRangeRule{Lo: 1, Hi: 9}.Evaluate(heartK))

	assert.True(t, judgement.BlackRule{}.Evaluate(spade5))
	assert.False(t, judgement.BlackRule{}.Evaluate(heartK))
	assert.True(t, judgement.RedRule{}.Evaluate(heartK))
}

func TestRules_CompositeAndOr(t *testing.T) {
	spade5 := &card.Card{Suit: card.SuitSpade, Rank: 5}
	and := judgement.NewComposite(judgement.OpAnd, judgement.BlackRule{}, judgement.RankRangeRule{Lo: 1, Hi: 9})
	assert.True(t, and.Evaluate(spade5))

	or := judgement.NewComposite(judgement.OpOr, judgement.RedRule{}, judgement.RankRangeRule{Lo: 1, Hi: 9})
	assert.True(t, or.Evaluate(spade5))

	andFail := judgement.NewComposite(judgement.OpAnd, judgement.RedRule{}, judgement.RankRangeRule{Lo: 1, Hi: 9})
	assert.False(t, andFail.Evaluate(spade5))
}

func TestService_RequestJudgement_MovesDrawnCardAndEvaluates(t *testing.T) {
	ctx, g := newCtx()
	top := &card.Card{ID: "top1", Suit: card.SuitSpade, Rank: 5}
	g.DrawPile.AddCard(top, card.ToTop)

	svc := judgement.NewService()
	result, rerrErr := svc.RequestJudgement(ctx, engine.JudgementRequest{
		JudgeOwnerSeat: 1,
		Reason:         engine.JudgementReasonDelayedTrick,
		Rule:           judgement.BlackRule{},
		AllowModify:    true,
	})
	require.Nil(t, rerrErr)
	assert.True(t, result.Success)
	assert.Equal(t, "top1", result.FinalCard.ID)
	assert.True(t, g.DiscardPile.Contains("top1"), "default flow discards the final card")
	assert.False(t, g.Player(1).Judgement.Contains("top1"))

	stored, ok := engine.ScratchpadGet[engine.JudgementResult](ctx.Scratchpad, engine.KeyJudgementResult)
	require.True(t, ok)
	assert.True(t, stored.Success)
}

func TestService_RequestJudgement_EmptyDrawPileSucceedsWithoutResult(t *testing.T) {
	ctx, _ := newCtx()
	svc := judgement.NewService()
	result, rerrErr := svc.RequestJudgement(ctx, engine.JudgementRequest{JudgeOwnerSeat: 0, Rule: judgement.BlackRule{}})
	require.Nil(t, rerrErr)
	assert.Nil(t, result.FinalCard)
}

func TestService_RequestJudgement_SkipFinalDiscardLeavesCardInJudgementZone(t *testing.T) {
	ctx, g := newCtx()
	top := &card.Card{ID: "top1", Suit: card.SuitClub, Rank: 7}
	g.DrawPile.AddCard(top, card.ToTop)

	svc := judgement.NewService()
	_, rerrErr := svc.RequestJudgement(ctx, engine.JudgementRequest{
		JudgeOwnerSeat:   0,
		Rule:             judgement.BlackRule{},
		SkipFinalDiscard: true,
	})
	require.Nil(t, rerrErr)
	assert.True(t, g.Player(0).Judgement.Contains("top1"))
	assert.False(t, g.DiscardPile.Contains("top1"))
}

type alwaysSwap struct {
	replacementID string
}

func (s alwaysSwap) Modify(ctx *engine.Context, req engine.JudgementRequest, current *card.Card) (string, bool) {
	return s.replacementID, true
}

func TestService_RequestJudgement_ModifierSubstitutesCard(t *testing.T) {
	ctx, g := newCtx()
	top := &card.Card{ID: "top1", Suit: card.SuitHeart, Rank: 2}
	replacement := &card.Card{ID: "swap1", Suit: card.SuitSpade, Rank: 9}
	g.DrawPile.AddCard(top, card.ToTop)
	g.Player(0).Hand.AddCard(replacement, card.ToTop)

	svc := judgement.NewService(alwaysSwap{replacementID: "swap1"})
	result, rerrErr := svc.RequestJudgement(ctx, engine.JudgementRequest{
		JudgeOwnerSeat: 0,
		Rule:           judgement.BlackRule{},
		AllowModify:    true,
	})
	require.Nil(t, rerrErr)
	assert.Equal(t, "swap1", result.FinalCard.ID)
	assert.True(t, result.Success)
	assert.True(t, g.DiscardPile.Contains("top1"), "displaced original card is discarded")
}
