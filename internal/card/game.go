package card

// Game is an ordered sequence of Players (seat order defines adjacency), a
// shared DrawPile and DiscardPile, and turn/phase state. Turn/phase
// advancement itself is the action entry point's concern (out of scope,
// spec.md §2); Game only carries the state resolvers read.
type Game struct {
	Players    []*Player
	DrawPile   *Zone
	DiscardPile *Zone

	Turn  int
	Phase string
}

// NewGame creates a game with the given number of players (seats 0..n-1),
// each starting at the given max health, and empty shared piles.
func NewGame(numPlayers, maxHealth int) *Game {
	g := &Game{
		DrawPile:    NewZone(ZoneKindDrawPile, -1),
		DiscardPile: NewZone(ZoneKindDiscardPile, -1),
	}
	for i := 0; i < numPlayers; i++ {
		g.Players = append(g.Players, NewPlayer(i, maxHealth))
	}
	return g
}

// Player returns the player at the given seat, or nil if out of range.
func (g *Game) Player(seat int) *Player {
	if seat < 0 || seat >= len(g.Players) {
		return nil
	}
	return g.Players[seat]
}

// NextAliveSeat returns the next alive player's seat after `from`, walking
// seat order and wrapping around. Returns -1 if no other player is alive.
// Used by the delayed-trick dispatcher's Shandian migration (spec.md §4.H).
func (g *Game) NextAliveSeat(from int) int {
	n := len(g.Players)
	if n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if seat == from {
			break
		}
		if p := g.Player(seat); p != nil && p.Alive {
			return seat
		}
	}
	return -1
}

// FindCard looks for a card by ID across every player's zones and the
// shared draw/discard piles.
func (g *Game) FindCard(cardID string) (*Card, *Zone) {
	for _, p := range g.Players {
		if c, z := p.FindCard(cardID); c != nil {
			return c, z
		}
	}
	if c := g.DrawPile.Find(cardID); c != nil {
		return c, g.DrawPile
	}
	if c := g.DiscardPile.Find(cardID); c != nil {
		return c, g.DiscardPile
	}
	return nil, nil
}
