package card

// Player is one seat at the table. Seat numbers are assigned at game
// creation and never change; seat order defines adjacency for distance
// rules (see internal/rules).
type Player struct {
	Seat      int
	Alive     bool
	Health    int
	MaxHealth int

	Hand      *Zone
	Equipment *Zone
	Judgement *Zone

	// Flags is the open-ended per-player flag map from spec.md §3
	// (e.g. "SkipPlayPhase"). Engine code only ever sets/reads flags by the
	// string keys it names explicitly — it is not a dumping ground for
	// resolver-internal state (that's the scratchpad, see internal/engine).
	Flags map[string]bool
}

// NewPlayer creates a player at the given seat with empty zones.
func NewPlayer(seat, maxHealth int) *Player {
	return &Player{
		Seat:      seat,
		Alive:     true,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Hand:      NewZone(ZoneKindHand, seat),
		Equipment: NewZone(ZoneKindEquipment, seat),
		Judgement: NewZone(ZoneKindJudgement, seat),
		Flags:     make(map[string]bool),
	}
}

// SetFlag sets a named flag on the player.
func (p *Player) SetFlag(name string, value bool) {
	if p.Flags == nil {
		p.Flags = make(map[string]bool)
	}
	p.Flags[name] = value
}

// Flag reports a named flag's value (false if unset).
func (p *Player) Flag(name string) bool {
	return p.Flags[name]
}

// Zones returns the player's three owned zones, in the fixed order
// Hand, Equipment, Judgement — the order spec.md §4.I uses when enumerating
// targeted-trick candidates.
func (p *Player) Zones() []*Zone {
	return []*Zone{p.Hand, p.Equipment, p.Judgement}
}

// FindCard looks for a card by ID across all of the player's zones and
// returns the card and the zone it was found in, or (nil, nil) if absent.
func (p *Player) FindCard(cardID string) (*Card, *Zone) {
	for _, z := range p.Zones() {
		if c := z.Find(cardID); c != nil {
			return c, z
		}
	}
	return nil, nil
}
