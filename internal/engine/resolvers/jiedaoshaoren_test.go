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
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/rules"
	"github.com/sanguosha/resolve/internal/skill"
	"github.com/sanguosha/resolve/internal/testutil"
)

func newJieDaoShaRenCtx(numPlayers int, cb choice.Callback) (*engine.Context, *card.Game) {
	g := card.NewGame(numPlayers, 4)
	ctx := engine.NewRootContext(g, g.Player(0))
	ctx.Bus = bus.New()
	ctx.SkillRegistry = skill.NewRegistry()
	ctx.MoveService = moveservice.New(ctx.Bus, ctx.SkillRegistry)
	ctx.RuleService = rules.New()
	ctx.ChoiceCallback = cb
	ctx.Stack = engine.NewStack()
	return ctx, g
}

func TestJieDaoShaRen_ASuccessfullyPlaysSlashDamagesB(t *testing.T) {
	// Responses, in order: A plays slash1 into the forced-Slash window;
	// the two other seats (0, 2's remaining co-players) decline to dodge
	// on B's behalf; B has nothing to dodge with either.
	cb := testutil.NewScriptedCallback(
		choice.Result{Confirmed: true, SelectedCardIDs: []string{"slash1"}},
		choice.Result{Confirmed: false},
		choice.Result{Confirmed: false},
		choice.Result{Confirmed: false},
	)
	ctx, g := newJieDaoShaRenCtx(3, cb)
	g.Player(1).Hand.AddCard(&card.Card{ID: "slash1", Def: &card.Definition{SubType: card.SubTypeSlash}}, card.ToTop)
	g.Player(2).Health = 4

	result := resolvers.JieDaoShaRen{SourceSeat: 0, ASeat: 1, BSeat: 2, CardID: "weapon1"}.Resolve(ctx)
	require.True(t, result.Ok())
	require.True(t, ctx.Stack.Run().Ok())

	assert.Equal(t, 3, g.Player(2).Health)
	assert.True(t, g.DiscardPile.Contains("slash1"))
}

func TestJieDaoShaRen_ARefusesSlashTransfersWeaponInstead(t *testing.T) {
	cb := testutil.NewScriptedCallback(choice.Result{Confirmed: false})
	ctx, g := newJieDaoShaRenCtx(3, cb)
	g.Player(1).Equipment.AddCard(&card.Card{ID: "weapon1"}, card.ToTop)
	g.Player(2).Health = 4

	result := resolvers.JieDaoShaRen{SourceSeat: 0, ASeat: 1, BSeat: 2, CardID: "weapon1"}.Resolve(ctx)
	require.True(t, result.Ok())
	require.True(t, ctx.Stack.Run().Ok())

	assert.Equal(t, 4, g.Player(2).Health, "no damage to B")
	assert.True(t, g.Player(0).Hand.Contains("weapon1"))
	assert.False(t, g.Player(1).Equipment.Contains("weapon1"))
}

func TestJieDaoShaRen_BNotLegalTargetTransfersWeaponDirectly(t *testing.T) {
	cb := testutil.NewScriptedCallback()
	ctx, g := newJieDaoShaRenCtx(3, cb)
	g.Player(1).Equipment.AddCard(&card.Card{ID: "weapon1"}, card.ToTop)
	g.Player(2).Alive = false

	result := resolvers.JieDaoShaRen{SourceSeat: 0, ASeat: 1, BSeat: 2, CardID: "weapon1"}.Resolve(ctx)
	require.True(t, result.Ok())
	require.True(t, ctx.Stack.Run().Ok())

	assert.True(t, g.Player(0).Hand.Contains("weapon1"))
}

func TestJieDaoShaRen_NoWeaponToTransferRecoversSuccessfully(t *testing.T) {
	cb := testutil.NewScriptedCallback()
	ctx, g := newJieDaoShaRenCtx(3, cb)
	g.Player(2).Alive = false

	result := resolvers.JieDaoShaRen{SourceSeat: 0, ASeat: 1, BSeat: 2, CardID: "weapon1"}.Resolve(ctx)
	require.True(t, result.Ok())
	assert.True(t, ctx.Stack.Run().Ok())
}
