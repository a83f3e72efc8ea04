// Package engine provides the resolution engine's core: the stack,
// resolution context, scratchpad, and the shared data contracts
// (Rule/JudgementService) that let internal/nullify, internal/response,
// internal/judgement, and internal/delayedtrick compose without importing
// each other.
//
// Grounded on the teacher's internal/game/chain.go (ChainLink, LIFO
// resolveChain) for the stack's execution-order semantics, and on
// KirkDiggler-rpg-toolkit/pipeline's drive-until-done executor loop and
// gamectx.Context for the "bag of collaborator handles passed down through
// a resolution tree" shape — generalized from the teacher's static,
// pre-built chain of links to a dynamic stack resolvers push onto while
// they run, since spec.md §4.A requires mid-resolution pushes the
// teacher's fixed chain never needed.
package engine

import (
	"github.com/sanguosha/resolve/internal/bus"
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/choice"
	"github.com/sanguosha/resolve/internal/config"
	"github.com/sanguosha/resolve/internal/logsink"
	"github.com/sanguosha/resolve/internal/moveservice"
	"github.com/sanguosha/resolve/internal/rules"
	"github.com/sanguosha/resolve/internal/skill"
)

// Context is the ResolutionContext from spec.md §3: immutable per push in
// spirit (resolvers derive a new Context via the With* methods rather than
// mutating one in place), but the Scratchpad, Stack, Bus, and service
// handles are shared by reference across an entire resolution tree so
// children can publish results their ancestors read back.
type Context struct {
	Game   *card.Game
	Source *card.Player

	// Action is the optional triggering player action (spec.md §3).
	Action *Action

	Stack          *Stack
	MoveService    *moveservice.Service
	RuleService    *rules.Service
	ChoiceCallback choice.Callback
	Bus            *bus.Bus
	LogSink        logsink.Sink
	SkillRegistry  *skill.Registry
	Assistance     skill.AssistanceProvider
	Judgement      JudgementService
	Config         *config.Config

	// PendingDamage is set on contexts pushed for a DamageResolver
	// (spec.md §4.C).
	PendingDamage *bus.DamageEvent

	Scratchpad *Scratchpad
}

// NewRootContext builds the root ResolutionContext an action entry point
// (out of scope) constructs before pushing the first resolver.
func NewRootContext(g *card.Game, source *card.Player) *Context {
	return &Context{
		Game:       g,
		Source:     source,
		Scratchpad: NewScratchpad(),
		LogSink:    logsink.NopSink{},
		Assistance: skill.NoAssistance{},
		Config:     config.Defaults(),
	}
}

// MaxNullificationDepth returns the configured nullification chain depth
// cap, falling back to the engine default when no Config is wired (e.g. a
// Context built by hand in a test).
func (c *Context) MaxNullificationDepth() int {
	if c.Config == nil {
		return 16
	}
	return c.Config.Resolution.MaxNullificationDepth
}

// MaxLoopIterations returns the configured loop-resolver iteration cap,
// falling back to the engine default when no Config is wired.
func (c *Context) MaxLoopIterations() int {
	if c.Config == nil {
		return 64
	}
	return c.Config.Resolution.MaxLoopIterations
}

// clone returns a shallow copy sharing the same Scratchpad, Stack, and
// service handles — the "cheap with- style derivation" spec.md §3 calls
// for, since a ResolutionContext lives only for the duration of one push.
func (c *Context) clone() *Context {
	cp := *c
	return &cp
}

// WithSource returns a derived context with Source rebound, e.g. when a
// handler resolver runs on behalf of a different player than its parent
// (an assistant answering a response window on a beneficiary's behalf).
func (c *Context) WithSource(p *card.Player) *Context {
	cp := c.clone()
	cp.Source = p
	return cp
}

// WithAction returns a derived context carrying a (possibly new) triggering
// action.
func (c *Context) WithAction(a *Action) *Context {
	cp := c.clone()
	cp.Action = a
	return cp
}

// WithPendingDamage returns a derived context carrying a pending damage
// descriptor for a DamageResolver to consume.
func (c *Context) WithPendingDamage(d *bus.DamageEvent) *Context {
	cp := c.clone()
	cp.PendingDamage = d
	return cp
}

// Log is a convenience wrapper that no-ops when LogSink is unset.
func (c *Context) Log(entry logsink.LogEntry) {
	if c.LogSink == nil {
		return
	}
	c.LogSink.Log(entry)
}

// Publish is a convenience wrapper around Bus.Publish that no-ops (returns
// nil) when no bus is wired, so tests that don't care about events don't
// need to stub one.
func (c *Context) Publish(event bus.Event) error {
	if c.Bus == nil {
		return nil
	}
	return c.Bus.Publish(event)
}
