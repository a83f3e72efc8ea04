// Package moveservice provides CardMoveService, the sole mutator of zone
// membership in the engine (spec.md §6). Every resolver that relocates a
// card — discard, draw, equip, judgement-zone placement, Steal/Dismantle's
// destination pile — goes through MoveSingle so that a CardMoved event and
// skill-hook detachment happen exactly once, in one place, regardless of
// which resolver triggered the move.
//
// Grounded on the teacher's internal/game/equip.go detachEquip/
// triggerOnLeaveField pair and internal/game/state.go's zone-mutation
// methods (SendToScrapheap, RemoveFromHand, PlaceAgent), generalized from
// "agent leaves the field" to "any card leaves any zone".
package moveservice

import (
	"fmt"

	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
)

// HookDetacher is the minimal collaborator moveservice needs from
// internal/skill: notice that an equipment card is leaving a zone so its
// attached skill can be unregistered before the move completes. Declared
// here (rather than importing internal/skill) to keep moveservice
// dependency-free of the skill package; internal/skill's registry satisfies
// this interface structurally.
type HookDetacher interface {
	DetachEquipmentSkill(c *card.Card, ownerSeat int)
}

// Reason names why a card is moving. spec.md §9 DESIGN NOTES flags the
// open question of whether "Play" should stand in for steal-like moves;
// this engine resolves it by giving Steal, Transfer, and
// DelayedTrickMigration their own reasons rather than overloading Play.
type Reason string

// Reasons.
const (
	ReasonDraw                 Reason = "Draw"
	ReasonPlay                 Reason = "Play"
	ReasonDiscard              Reason = "Discard"
	ReasonJudgement            Reason = "Judgement"
	ReasonSteal                Reason = "Steal"
	ReasonTransfer             Reason = "Transfer"
	ReasonDelayedTrickMigration Reason = "DelayedTrickMigration"
)

// Descriptor describes one atomic relocation of one or more cards between
// two zones (spec.md §6 CardMoveDescriptor).
type Descriptor struct {
	Source   *card.Zone
	Target   *card.Zone
	CardIDs  []string
	Reason   Reason
	Ordering card.Ordering
}

// Service is the CardMoveService external collaborator.
type Service struct {
	bus      *bus.Bus
	detacher HookDetacher
}

// New creates a CardMoveService publishing CardMoved events on the given
// bus. detacher may be nil if the caller has no equipment-skill concept yet
// (e.g. early-stage tests); production wiring always supplies one so
// equipment leaving a zone detaches its skill hook (spec.md §9 DESIGN NOTES).
func New(b *bus.Bus, detacher HookDetacher) *Service {
	return &Service{bus: b, detacher: detacher}
}

// MoveSingle moves every card named in the descriptor from Source to
// Target, atomically: either every card moves or none do. Returns an error
// without mutating anything if any named card is absent from Source.
func (s *Service) MoveSingle(d Descriptor) error {
	if d.Source == nil || d.Target == nil {
		return fmt.Errorf("moveservice: source and target zones are required")
	}
	for _, id := range d.CardIDs {
		if !d.Source.Contains(id) {
			return fmt.Errorf("moveservice: card %s not present in source zone %s", id, d.Source.Kind)
		}
	}

	for _, id := range d.CardIDs {
		c := d.Source.Find(id)

		// Detach equipment skill hooks before the card actually leaves,
		// mirroring triggerOnLeaveField's ordering requirement: the hook
		// must still see the card's pre-move zone/owner state.
		if d.Source.Kind == card.ZoneKindEquipment && s.detacher != nil {
			s.detacher.DetachEquipmentSkill(c, d.Source.OwnerSeat)
		}

		d.Source.RemoveCard(id)
		d.Target.AddCard(c, d.Ordering)

		if s.bus != nil {
			if err := s.bus.Publish(bus.CardMovedEvent{
				CardID:       id,
				FromZoneKind: string(d.Source.Kind),
				ToZoneKind:   string(d.Target.Kind),
				Reason:       string(d.Reason),
			}); err != nil {
				return fmt.Errorf("moveservice: CardMoved handler failed: %w", err)
			}
		}
	}
	return nil
}
