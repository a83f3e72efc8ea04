package engine

import (
	"github.com/sanguosha/resolve/internal/card"
	"github.com/sanguosha/resolve/internal/rerr"
)

// JudgementReason categorizes why a judgement draw was requested (spec.md
// §4.G JudgementRequest).
type JudgementReason string

// Reasons.
const (
	JudgementReasonDelayedTrick JudgementReason = "DelayedTrick"
	JudgementReasonSkill        JudgementReason = "Skill"
	JudgementReasonOther        JudgementReason = "Other"
)

// Rule evaluates a final judgement card and reports success. Concrete rules
// (Suit, RankRange, Black, Red, Composite) live in internal/judgement; this
// interface lets engine, resolvers, and delayedtrick reference "a rule"
// without importing that package.
type Rule interface {
	Evaluate(c *card.Card) bool
	String() string
}

// JudgementRequest describes one judgement draw (spec.md §4.G).
type JudgementRequest struct {
	ID             string
	JudgeOwnerSeat int
	Reason         JudgementReason
	Source         string
	Rule           Rule
	Tags           []string
	AllowModify    bool

	// SkipFinalDiscard lets a caller retain the final card instead of the
	// service's default "move to discard" step (spec.md §4.G step 5: "caller
	// may override if it needs the card, as Luoshen does").
	SkipFinalDiscard bool
}

// JudgementResult is the outcome of a resolved judgement draw.
type JudgementResult struct {
	InitialCard *card.Card
	FinalCard   *card.Card
	Success     bool
}

// JudgementService requests and resolves a judgement draw, depositing the
// JudgementResult under KeyJudgementResult before returning it (spec.md
// §4.G steps 1-4). Callers that need the final card for something other
// than discard (Luoshen moving it to hand) read JudgementResult.FinalCard
// themselves rather than relying on the service's default discard step.
type JudgementService interface {
	RequestJudgement(ctx *Context, req JudgementRequest) (JudgementResult, *rerr.Error)
}
