package engine

// Action is the minimal description of the triggering player action a
// ResolutionContext carries, when one exists (spec.md §3: "the optional
// triggering action"). The action entry point that constructs it is out of
// scope (spec.md §2); resolvers only ever read it, never advance it.
type Action struct {
	CardID      string
	SourceSeat  int
	TargetSeats []int
}
