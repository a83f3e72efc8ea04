// Package skill provides the SkillManager / EquipmentSkillRegistry external
// collaborator (spec.md §6): equipment cards carry a skill hook that the
// registry attaches on equip and detaches on unequip, and response
// assistance (Hujia-style) — an ordered, at-most-one-use list of players
// able to help answer a response window on someone else's behalf.
//
// Grounded on the teacher's internal/game/equip.go attachEquip/detachEquip
// pair and effect.go's OnLeaveField hook field, generalized from "modifier
// applied to a CardInstance" to "a skill keyed by equipment card ID,
// invoked through a narrow interface instead of a raw func field" so the
// registry can be mocked from tests without constructing real card effects.
package skill

import (
	"github.com/sanguosha/resolve/internal/card"
)

// EquipmentSkill is a skill hook attached to an equipment card while it sits
// in a player's Equipment zone.
type EquipmentSkill interface {
	// OnDetach runs just before the equipment leaves ownerSeat's Equipment
	// zone, mirroring the teacher's OnLeaveField hook.
	OnDetach(c *card.Card, ownerSeat int)
}

// Registry is the EquipmentSkillRegistry collaborator: skills are looked up
// by card definition ID (spec.md §6), attached on equip, detached on
// unequip or move-out.
type Registry struct {
	bySubType map[card.SubType]EquipmentSkill
	byDefID   map[string]EquipmentSkill
	attached  map[string]EquipmentSkill // cardID -> currently-attached skill
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bySubType: make(map[card.SubType]EquipmentSkill),
		byDefID:   make(map[string]EquipmentSkill),
		attached:  make(map[string]EquipmentSkill),
	}
}

// RegisterBySubType binds a skill to every equipment card of the given
// sub-type, for catalogs that key skills by sub-type rather than by
// individual definition ID.
func (r *Registry) RegisterBySubType(subType card.SubType, s EquipmentSkill) {
	r.bySubType[subType] = s
}

// RegisterByDefinitionID binds a skill to one specific card definition ID.
// Checked before sub-type bindings.
func (r *Registry) RegisterByDefinitionID(defID string, s EquipmentSkill) {
	r.byDefID[defID] = s
}

func (r *Registry) lookup(c *card.Card) EquipmentSkill {
	if c == nil || c.Def == nil {
		return nil
	}
	if s, ok := r.byDefID[c.Def.ID]; ok {
		return s
	}
	if s, ok := r.bySubType[c.Def.SubType]; ok {
		return s
	}
	return nil
}

// Attach registers the card's skill (if any) as active for ownerSeat. Called
// when an equipment card enters a player's Equipment zone.
func (r *Registry) Attach(c *card.Card, ownerSeat int) {
	if s := r.lookup(c); s != nil {
		r.attached[c.ID] = s
	}
}

// DetachEquipmentSkill implements moveservice.HookDetacher: it fires
// OnDetach for the card's currently-attached skill, if any, and forgets it.
func (r *Registry) DetachEquipmentSkill(c *card.Card, ownerSeat int) {
	s, ok := r.attached[c.ID]
	if !ok {
		return
	}
	delete(r.attached, c.ID)
	s.OnDetach(c, ownerSeat)
}

// AssistanceProvider answers "who can help answer a response window on
// beneficiarySeat's behalf, and in what order" (spec.md §4.F, e.g. Hujia).
// Implementations outside this package decide eligibility (usually "holds
// the assistance skill and is alive"); this engine only needs the ordered
// seat list.
type AssistanceProvider interface {
	EligibleAssistants(beneficiarySeat int) []int
}

// NoAssistance is the zero-assistant AssistanceProvider, used when a game
// has no assistance-capable skill in play.
type NoAssistance struct{}

// EligibleAssistants implements AssistanceProvider.
func (NoAssistance) EligibleAssistants(int) []int { return nil }
