package card

// ZoneKind names the kind of zone a Zone represents, for logging and for
// resolvers that branch on where a card lives (e.g. targeted-trick
// candidate enumeration across Hand+Equipment+Judgement).
type ZoneKind string

// Zone kinds. "side" flags from spec.md §3 (e.g. a player's delayed-trick
// judgement area) are modeled as the Judgement zone.
const (
	ZoneKindDrawPile    ZoneKind = "DrawPile"
	ZoneKindDiscardPile ZoneKind = "DiscardPile"
	ZoneKindHand        ZoneKind = "Hand"
	ZoneKindEquipment   ZoneKind = "Equipment"
	ZoneKindJudgement   ZoneKind = "Judgement"
)

// Ordering controls where a card is inserted by Zone.Add.
type Ordering int

// Ordering values.
const (
	ToTop Ordering = iota
	ToBottom
)

// Zone is an ordered sequence of cards owned by a player or by the game
// itself (draw/discard piles). The zero value is an empty zone; always
// construct with NewZone so Kind and OwnerSeat are set.
//
// Zone never mutates a Card's fields — it only tracks which cards are
// present and in what order. Cards keep no zone bookkeeping of their own;
// to find a card's zone, search the zones (Player.FindCard, Game.FindCard).
type Zone struct {
	Kind ZoneKind
	// OwnerSeat is the owning player's seat, or -1 for a game-owned zone
	// (draw pile, discard pile).
	OwnerSeat int
	cards     []*Card
}

// NewZone creates an empty zone of the given kind for the given owner.
// Pass ownerSeat -1 for a game-owned zone.
func NewZone(kind ZoneKind, ownerSeat int) *Zone {
	return &Zone{Kind: kind, OwnerSeat: ownerSeat}
}

// Len returns the number of cards in the zone.
func (z *Zone) Len() int {
	if z == nil {
		return 0
	}
	return len(z.cards)
}

// Cards returns the zone's cards in order, top first. The returned slice is
// a copy; mutating it does not affect the zone.
func (z *Zone) Cards() []*Card {
	if z == nil {
		return nil
	}
	out := make([]*Card, len(z.cards))
	copy(out, z.cards)
	return out
}

// Contains reports whether a card with the given ID is in the zone.
func (z *Zone) Contains(cardID string) bool {
	_, ok := z.indexOf(cardID)
	return ok
}

// Find returns the card with the given ID, or nil if absent.
func (z *Zone) Find(cardID string) *Card {
	if i, ok := z.indexOf(cardID); ok {
		return z.cards[i]
	}
	return nil
}

func (z *Zone) indexOf(cardID string) (int, bool) {
	if z == nil {
		return 0, false
	}
	for i, c := range z.cards {
		if c.ID == cardID {
			return i, true
		}
	}
	return 0, false
}

// AddCard inserts a card per the given ordering. Exported only for
// internal/moveservice: every other caller goes through
// CardMoveService.MoveSingle so that a relocation always pairs with a
// CardMoved event and skill-hook detachment.
func (z *Zone) AddCard(c *Card, ordering Ordering) {
	switch ordering {
	case ToBottom:
		z.cards = append(z.cards, c)
	default: // ToTop
		z.cards = append([]*Card{c}, z.cards...)
	}
}

// RemoveCard deletes the card with the given ID and returns it, or returns
// nil if not present. Exported for the same reason as AddCard.
func (z *Zone) RemoveCard(cardID string) *Card {
	i, ok := z.indexOf(cardID)
	if !ok {
		return nil
	}
	c := z.cards[i]
	z.cards = append(z.cards[:i], z.cards[i+1:]...)
	return c
}

// Top returns the top card without removing it, or nil if the zone is empty.
func (z *Zone) Top() *Card {
	if z.Len() == 0 {
		return nil
	}
	return z.cards[0]
}
