// Package judgement implements the judgement subsystem from spec.md §4.G:
// composable rule types evaluated against a forced draw, with a hook for
// modify-judgement skills to substitute the drawn card before evaluation.
//
// Grounded on the teacher's internal/game/effect.go CardEffect/Resolve
// shape (a small predicate-carrying struct with an Evaluate-equivalent
// method) for the rule types, and effect_resolution.go's Before/After event
// bracketing for the resolver flow.
package judgement

import (
	"fmt"

	"github.com/sanguosha/resolve/internal/card"
)

// BoolOp combines CompositeRule's sub-rules.
type BoolOp int

// Operators.
const (
	OpAnd BoolOp = iota
	OpOr
)

// SuitRule succeeds if the card's suit matches exactly.
type SuitRule struct {
	Suit card.Suit
}

// Evaluate implements engine.Rule.
func (r SuitRule) Evaluate(c *card.Card) bool { return c != nil && c.Suit == r.Suit }

// String implements engine.Rule.
func (r SuitRule) String() string { return fmt.Sprintf("Suit(%s)", r.Suit) }

// RankRangeRule succeeds if the card's rank falls in [Lo, Hi] inclusive.
type RankRangeRule struct {
	Lo, Hi card.Rank
}

// Evaluate implements engine.Rule.
func (r RankRangeRule) Evaluate(c *card.Card) bool {
	return c != nil && c.Rank >= r.Lo && c.Rank <= r.Hi
}

// String implements engine.Rule.
func (r RankRangeRule) String() string { return fmt.Sprintf("RankRange(%d-%d)", r.Lo, r.Hi) }

// BlackRule succeeds if the card's suit is Spade or Club.
type BlackRule struct{}

// Evaluate implements engine.Rule.
func (BlackRule) Evaluate(c *card.Card) bool { return c != nil && c.Suit.IsBlack() }

// String implements engine.Rule.
func (BlackRule) String() string { return "Black" }

// RedRule succeeds if the card's suit is Heart or Diamond.
type RedRule struct{}

// Evaluate implements engine.Rule.
func (RedRule) Evaluate(c *card.Card) bool { return c != nil && c.Suit.IsRed() }

// String implements engine.Rule.
func (RedRule) String() string { return "Red" }

// CompositeRule combines sub-rules with And/Or.
type CompositeRule struct {
	Rules []ruleEvaluator
	Op    BoolOp
}

// ruleEvaluator is the minimal shape CompositeRule needs, matching
// engine.Rule without importing it (judgement's rule types are consumed
// as engine.Rule by callers, but CompositeRule itself only needs
// Evaluate/String from its children).
type ruleEvaluator interface {
	Evaluate(c *card.Card) bool
	String() string
}

// NewComposite builds a CompositeRule. Panics are never thrown for an empty
// rule set; And on an empty set is vacuously true, Or is vacuously false.
func NewComposite(op BoolOp, rules ...ruleEvaluator) CompositeRule {
	return CompositeRule{Rules: rules, Op: op}
}

// Evaluate implements engine.Rule.
func (r CompositeRule) Evaluate(c *card.Card) bool {
	if r.Op == OpOr {
		for _, sub := range r.Rules {
			if sub.Evaluate(c) {
				return true
			}
		}
		return false
	}
	for _, sub := range r.Rules {
		if !sub.Evaluate(c) {
			return false
		}
	}
	return true
}

// String implements engine.Rule.
func (r CompositeRule) String() string {
	op := "And"
	if r.Op == OpOr {
		op = "Or"
	}
	return fmt.Sprintf("Composite(%s, %d rules)", op, len(r.Rules))
}
