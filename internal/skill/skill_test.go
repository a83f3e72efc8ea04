package skill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/skill"
)

type recordingSkill struct {
	detached []int
}

func (r *recordingSkill) OnDetach(c *card.Card, ownerSeat int) {
	r.detached = append(r.detached, ownerSeat)
}

func TestRegistry_AttachThenDetachBySubType(t *testing.T) {
	reg := skill.NewRegistry()
	s := &recordingSkill{}
	reg.RegisterBySubType(card.SubTypeJieDaoShaRen, s)

	weapon := &card.Card{ID: "w1", Def: &card.Definition{ID: "zhuge", Type: card.TypeEquipment, SubType: card.SubTypeJieDaoShaRen}}
	reg.Attach(weapon, 2)
	reg.DetachEquipmentSkill(weapon, 2)

	assert.Equal(t, []int{2}, s.detached)
}

func TestRegistry_DefinitionIDTakesPriorityOverSubType(t *testing.T) {
	reg := skill.NewRegistry()
	generic := &recordingSkill{}
	specific := &recordingSkill{}
	reg.RegisterBySubType(card.SubTypeJieDaoShaRen, generic)
	reg.RegisterByDefinitionID("zhuge", specific)

	weapon := &card.Card{ID: "w1", Def: &card.Definition{ID: "zhuge", Type: card.TypeEquipment, SubType: card.SubTypeJieDaoShaRen}}
	reg.Attach(weapon, 0)
	reg.DetachEquipmentSkill(weapon, 0)

	assert.Empty(t, generic.detached)
	assert.Equal(t, []int{0}, specific.detached)
}

func TestRegistry_DetachWithoutAttachIsNoop(t *testing.T) {
	reg := skill.NewRegistry()
	c := &card.Card{ID: "c1", Def: &card.Definition{ID: "unregistered", Type: card.TypeEquipment}}
	assert.NotPanics(t, func() { reg.DetachEquipmentSkill(c, 0) })
}

func TestNoAssistance_ReturnsNoEligibleAssistants(t *testing.T) {
	var p skill.AssistanceProvider = skill.NoAssistance{}
	assert.Empty(t, p.EligibleAssistants(1))
}
