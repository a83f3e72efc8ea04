package moveservice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/moveservice"
)

func TestMoveSingle_RelocatesCardAndPublishesEvent(t *testing.T) {
	b := bus.New()
	svc := moveservice.New(b, nil)

	hand := card.NewZone(card.ZoneKindHand, 0)
	discard := card.NewZone(card.ZoneKindDiscardPile, -1)
	c := &card.Card{ID: "c1", Def: &card.Definition{ID: "slash", Type: card.TypeBasic, SubType: card.SubTypeSlash}}
	hand.AddCard(c, card.ToTop)

	var got bus.CardMovedEvent
	b.Subscribe(bus.KindCardMoved, func(e bus.Event) error {
		got = e.(bus.CardMovedEvent)
		return nil
	})

	err := svc.MoveSingle(moveservice.Descriptor{
		Source:   hand,
		Target:   discard,
		CardIDs:  []string{"c1"},
		Reason:   moveservice.ReasonPlay,
		Ordering: card.ToTop,
	})
	require.NoError(t, err)

	assert.False(t, hand.Contains("c1"))
	assert.True(t, discard.Contains("c1"))
	assert.Equal(t, "c1", got.CardID)
	assert.Equal(t, string(card.ZoneKindHand), got.FromZoneKind)
	assert.Equal(t, string(card.ZoneKindDiscardPile), got.ToZoneKind)
	assert.Equal(t, string(moveservice.ReasonPlay), got.Reason)
}

func TestMoveSingle_MissingCardFailsAtomically(t *testing.T) {
	svc := moveservice.New(bus.New(), nil)

	hand := card.NewZone(card.ZoneKindHand, 0)
	discard := card.NewZone(card.ZoneKindDiscardPile, -1)
	present := &card.Card{ID: "present", Def: &card.Definition{ID: "slash", Type: card.TypeBasic}}
	hand.AddCard(present, card.ToTop)

	err := svc.MoveSingle(moveservice.Descriptor{
		Source:  hand,
		Target:  discard,
		CardIDs: []string{"present", "missing"},
	})
	require.Error(t, err)
	assert.True(t, hand.Contains("present"), "successful-looking prefix must not move when a later card is missing")
	assert.Equal(t, 0, discard.Len())
}

type recordingDetacher struct {
	calls []string
}

func (r *recordingDetacher) DetachEquipmentSkill(c *card.Card, ownerSeat int) {
	r.calls = append(r.calls, c.ID)
}

func TestMoveSingle_DetachesEquipmentSkillBeforeLeavingEquipmentZone(t *testing.T) {
	detacher := &recordingDetacher{}
	svc := moveservice.New(bus.New(), detacher)

	equip := card.NewZone(card.ZoneKindEquipment, 0)
	discard := card.NewZone(card.ZoneKindDiscardPile, -1)
	weapon := &card.Card{ID: "weapon1", Def: &card.Definition{ID: "zhuge", Type: card.TypeEquipment}}
	equip.AddCard(weapon, card.ToTop)

	err := svc.MoveSingle(moveservice.Descriptor{
		Source:  equip,
		Target:  discard,
		CardIDs: []string{"weapon1"},
		Reason:  moveservice.ReasonDiscard,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"weapon1"}, detacher.calls)
}

func TestMoveSingle_NoDetachWhenSourceIsNotEquipment(t *testing.T) {
	detacher := &recordingDetacher{}
	svc := moveservice.New(bus.New(), detacher)

	hand := card.NewZone(card.ZoneKindHand, 0)
	discard := card.NewZone(card.ZoneKindDiscardPile, -1)
	c := &card.Card{ID: "c1", Def: &card.Definition{ID: "peach", Type: card.TypeBasic}}
	hand.AddCard(c, card.ToTop)

	require.NoError(t, svc.MoveSingle(moveservice.Descriptor{
		Source:  hand,
		Target:  discard,
		CardIDs: []string{"c1"},
	}))
	assert.Empty(t, detacher.calls)
}
