// Package testutil provides shared test doubles for the resolution engine's
// external collaborators, grounded on the teacher's
// internal/game/testutil_test.go ScriptedController: a queue of canned
// answers consumed in order, with an error once the queue is empty.
// Kept as an importable (non _test.go) package since many engine
// sub-packages' tests need the same scripted ChoiceCallback.
package testutil

import (
	"fmt"

	"github.com/sanguosha/resolve/internal/choice"
)

// ScriptedCallback answers ChoiceCallback.RequestChoice from a pre-loaded
// queue of responses, one per call. Calling RequestChoice past the end of
// the queue returns an error rather than a default — tests should script
// every choice they expect to be asked for, matching the teacher's
// ScriptedController habit of surfacing under-scripted tests immediately.
type ScriptedCallback struct {
	responses []choice.Result
	pos       int
	requests  []choice.Request
}

// NewScriptedCallback creates a callback that answers with responses, in
// order.
func NewScriptedCallback(responses ...choice.Result) *ScriptedCallback {
	return &ScriptedCallback{responses: responses}
}

// RequestChoice implements choice.Callback.
func (s *ScriptedCallback) RequestChoice(req choice.Request) (choice.Result, error) {
	s.requests = append(s.requests, req)
	if s.pos >= len(s.responses) {
		return choice.Result{}, fmt.Errorf("testutil: ScriptedCallback exhausted at request %d (type=%s, seat=%d)", s.pos, req.ChoiceType, req.PlayerSeat)
	}
	r := s.responses[s.pos]
	s.pos++
	return r, nil
}

// Requests returns every request seen so far, in order — useful for
// asserting a resolver asked the right seat the right kind of question.
func (s *ScriptedCallback) Requests() []choice.Request {
	return append([]choice.Request(nil), s.requests...)
}
