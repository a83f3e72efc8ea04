package engine

// Resolver is one atomic step of the rules: "every resolver implements a
// single resolve(ctx) → ResolutionResult" (spec.md §4.B). Kind names the
// resolver for history/logging (e.g. "DamageResolver", "StealHandler").
type Resolver interface {
	Kind() string
	Resolve(ctx *Context) Result
}

// HistoryEntry records one executed step (spec.md §4.A: "record
// {resolver-kind, context snapshot, result} in history"). ContextSnapshot
// is the pushed context itself — resolvers never mutate a Context in
// place, so the pointer recorded here reflects exactly what Resolve saw.
type HistoryEntry struct {
	ResolverKind    string
	ContextSnapshot *Context
	Result          Result
}

type frame struct {
	resolver Resolver
	ctx      *Context
}

// Stack is the resolution stack from spec.md §4.A: a LIFO sequence of
// pending resolvers. Push schedules a resolver against a context; Pop
// executes the top one. A resolver that wants step X to run after step Y
// finishes pushes X, then pushes Y on top of it.
type Stack struct {
	frames  []frame
	history []HistoryEntry
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push schedules resolver for execution against ctx. The context's Stack
// field is set to this stack so resolvers pushed with a freshly-derived
// context can themselves push further resolvers.
func (s *Stack) Push(r Resolver, ctx *Context) {
	ctx.Stack = s
	s.frames = append(s.frames, frame{resolver: r, ctx: ctx})
}

// IsEmpty reports whether the stack has no pending resolvers.
func (s *Stack) IsEmpty() bool {
	return len(s.frames) == 0
}

// Pop executes the top resolver and records it in history. A Failure
// result aborts neither the stack nor the game (spec.md §4.A "error
// policy") — it is simply recorded and returned to the caller.
func (s *Stack) Pop() Result {
	if s.IsEmpty() {
		return Success()
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	result := top.resolver.Resolve(top.ctx)
	s.history = append(s.history, HistoryEntry{
		ResolverKind:    top.resolver.Kind(),
		ContextSnapshot: top.ctx,
		Result:          result,
	})
	return result
}

// History returns the read-only execution trace so far, in execution
// order.
func (s *Stack) History() []HistoryEntry {
	return append([]HistoryEntry(nil), s.history...)
}

// Run drives the stack until empty — "the engine's outer loop repeatedly
// pops until empty" (spec.md §4.A). A Failure does not stop the loop; Run
// returns the first Failure popped, or Success if every popped resolver
// succeeded (or the stack was already empty).
func (s *Stack) Run() Result {
	result := Success()
	for !s.IsEmpty() {
		if r := s.Pop(); !r.Ok() && result.Ok() {
			result = r
		}
	}
	return result
}
