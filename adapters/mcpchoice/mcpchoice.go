// Package mcpchoice adapts choice.Callback onto an MCP server so a
// connected LLM client can answer the engine's ChoiceRequest prompts as
// tool calls, one at a time.
//
// Grounded on the teacher's (now-removed) internal/mcp package: a single
// in-flight PendingDecision pushed to a channel and a blocking response
// channel the tool handlers satisfy (controller.go's MCPController,
// tools.go's RegisterTools/handle* pair). Generalized from the teacher's
// five fixed decision kinds to the engine's three choice.Type values.
package mcpchoice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sanguosha/resolve/internal/choice"
)

// Adapter implements choice.Callback by surfacing exactly one pending
// choice.Request at a time and blocking RequestChoice until an MCP tool
// call answers it.
type Adapter struct {
	mu         sync.Mutex
	pending    *choice.Request
	responseCh chan choice.Result
}

// New creates an adapter with no pending choice.
func New() *Adapter {
	return &Adapter{}
}

// RequestChoice implements choice.Callback. Only one request may be
// in-flight at a time; the engine's cooperative single-threaded scheduling
// model (spec.md §5) guarantees this holds.
func (a *Adapter) RequestChoice(req choice.Request) (choice.Result, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	a.mu.Lock()
	if a.pending != nil {
		a.mu.Unlock()
		return choice.Result{}, fmt.Errorf("mcpchoice: a choice is already pending (request %s)", a.pending.RequestID)
	}
	a.pending = &req
	a.responseCh = make(chan choice.Result, 1)
	a.mu.Unlock()

	result := <-a.responseCh

	a.mu.Lock()
	a.pending = nil
	a.responseCh = nil
	a.mu.Unlock()

	return result, nil
}

// Pending returns the current outstanding request, or nil if none.
func (a *Adapter) Pending() *choice.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return nil
	}
	cp := *a.pending
	return &cp
}

// Answer delivers a response for the currently pending request. Returns an
// error if requestID does not match, or if no choice is pending.
func (a *Adapter) Answer(requestID string, result choice.Result) error {
	a.mu.Lock()
	if a.pending == nil {
		a.mu.Unlock()
		return fmt.Errorf("no choice is pending")
	}
	if a.pending.RequestID != requestID {
		a.mu.Unlock()
		return fmt.Errorf("request_id %q does not match the pending request %q", requestID, a.pending.RequestID)
	}
	ch := a.responseCh
	a.mu.Unlock()

	ch <- result
	return nil
}

// RegisterTools adds the get_pending_choice and answer_choice tools to an
// MCP server backed by this adapter.
func RegisterTools(s *server.MCPServer, a *Adapter) {
	s.AddTool(getPendingChoiceTool(), a.handleGetPendingChoice)
	s.AddTool(answerChoiceTool(), a.handleAnswerChoice)
}

func getPendingChoiceTool() mcp.Tool {
	return mcp.NewTool("get_pending_choice",
		mcp.WithDescription("Get the resolution engine's current pending ChoiceRequest, if any. Read-only."),
	)
}

func answerChoiceTool() mcp.Tool {
	return mcp.NewTool("answer_choice",
		mcp.WithDescription("Answer the current pending ChoiceRequest from get_pending_choice."),
		mcp.WithString("request_id", mcp.Required(), mcp.Description("request_id from the pending ChoiceRequest")),
		mcp.WithBoolean("confirmed", mcp.Required(), mcp.Description("false to pass/decline, true to confirm")),
		mcp.WithString("selected_card_ids", mcp.Description("space-separated card IDs, for SelectCards choices")),
		mcp.WithString("selected_target_seats", mcp.Description("space-separated seat numbers, for SelectTargets choices")),
		mcp.WithString("converter_skill_id", mcp.Description("optional skill ID converting a card into the requested sub-type")),
	)
}

func (a *Adapter) handleGetPendingChoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pending := a.Pending()
	if pending == nil {
		return mcp.NewToolResultText("no choice is currently pending"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"request_id=%s player_seat=%d choice_type=%s can_pass=%t allowed_card_ids=%s",
		pending.RequestID, pending.PlayerSeat, pending.ChoiceType, pending.CanPass, strings.Join(pending.AllowedCardIDs, ","),
	)), nil
}

func (a *Adapter) handleAnswerChoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := request.GetString("request_id", "")
	confirmed := request.GetBool("confirmed", false)

	var cardIDs []string
	if s := strings.TrimSpace(request.GetString("selected_card_ids", "")); s != "" {
		cardIDs = strings.Fields(s)
	}

	var seats []int
	if s := strings.TrimSpace(request.GetString("selected_target_seats", "")); s != "" {
		for _, part := range strings.Fields(s) {
			seat, err := strconv.Atoi(part)
			if err != nil {
				return mcp.NewToolResultErrorf("invalid seat %q: must be an integer", part), nil
			}
			seats = append(seats, seat)
		}
	}

	result := choice.Result{
		Confirmed:           confirmed,
		SelectedCardIDs:     cardIDs,
		SelectedTargetSeats: seats,
		ConverterSkillID:    request.GetString("converter_skill_id", ""),
	}

	if err := a.Answer(requestID, result); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText("answer accepted"), nil
}
