// Package bus provides the synchronous event bus external collaborator from
// spec.md §6: publish(event) is synchronous, subscribers run before publish
// returns. Adapted from KirkDiggler-rpg-toolkit/events.Bus, simplified from
// that package's reflection-based handler dispatch (it supports arbitrary
// handler signatures for a whole rulebook ecosystem; this engine has one
// closed Event interface, so a plain func(Event) error is enough) while
// keeping its publish-depth guard against runaway event cascades.
package bus

import (
	"fmt"
	"sync"
)

// Kind names an event type (e.g. "BeforeDamage", "CardMoved").
type Kind string

// Event kinds named in spec.md §6. Domain packages may publish additional
// kinds (e.g. skill-specific notifications); these are the ones the core
// resolvers themselves fire.
const (
	KindBeforeDamage           Kind = "BeforeDamage"
	KindDamage                 Kind = "Damage"
	KindAfterDamage            Kind = "AfterDamage"
	KindHpLost                 Kind = "HpLost"
	KindAfterHpLost            Kind = "AfterHpLost"
	KindCardMoved              Kind = "CardMoved"
	KindBeforeJudgement        Kind = "BeforeJudgement"
	KindAfterJudgement         Kind = "AfterJudgement"
	KindWeaponTransferred      Kind = "WeaponTransferred"
	KindBeforeJieDaoShaRen     Kind = "BeforeJieDaoShaRenEffect"
	KindPlayerDying            Kind = "PlayerDying"
	KindPlayerDied             Kind = "PlayerDied"
)

// Event is the interface every published event implements.
type Event interface {
	EventKind() Kind
}

// Handler reacts to a published event. Handlers run their side effects
// directly and return an error to abort publication; a handler may call
// Publish itself, bounded by the bus's max depth. See DESIGN NOTES in
// spec.md §9 ("a subscriber must not directly mutate zones except through
// the move service").
type Handler func(Event) error

// DefaultMaxDepth bounds re-entrant Publish calls (a handler that itself
// publishes) to guard against runaway cascades, mirroring
// KirkDiggler-rpg-toolkit/events.DefaultMaxDepth.
const DefaultMaxDepth = 16

// Bus is the synchronous, in-process event bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]subscription
	nextID   int
	depth    int
	maxDepth int
}

type subscription struct {
	id      string
	handler Handler
}

// New creates an empty bus with the default recursion guard.
func New() *Bus {
	return NewWithMaxDepth(DefaultMaxDepth)
}

// NewWithMaxDepth creates an empty bus with a caller-supplied recursion
// guard, for a deployment that wants to raise or lower
// config.ResolutionConfig.MaxBusDepth from the engine default without a
// code change. maxDepth <= 0 falls back to DefaultMaxDepth.
func NewWithMaxDepth(maxDepth int) *Bus {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Bus{handlers: make(map[Kind][]subscription), maxDepth: maxDepth}
}

// Subscribe registers a handler for the given event kind and returns a
// subscription ID usable with Unsubscribe.
func (b *Bus) Subscribe(kind Kind, h Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := fmt.Sprintf("sub-%d", b.nextID)
	b.handlers[kind] = append(b.handlers[kind], subscription{id: id, handler: h})
	return id
}

// Unsubscribe removes a previously registered handler by ID. Returns false
// if the ID was not found.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for kind, subs := range b.handlers {
		for i, s := range subs {
			if s.id == id {
				b.handlers[kind] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish sends an event synchronously to every handler registered for its
// kind, in registration order. Handlers run before Publish returns (spec.md
// §6). Returns the first handler error encountered, if any.
func (b *Bus) Publish(event Event) error {
	b.mu.Lock()
	b.depth++
	depth := b.depth
	subs := append([]subscription(nil), b.handlers[event.EventKind()]...)
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.depth--
		b.mu.Unlock()
	}()

	if depth > b.maxDepth {
		return fmt.Errorf("event cascade depth exceeded: max=%d, event=%s", b.maxDepth, event.EventKind())
	}

	for _, s := range subs {
		if err := s.handler(event); err != nil {
			return fmt.Errorf("handler %s failed on %s: %w", s.id, event.EventKind(), err)
		}
	}
	return nil
}

// Clear removes every subscription. Useful for tests.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[Kind][]subscription)
}
