// FILE: pkg/store/conversation.go
// PURPOSE: In-memory conversation state for one chat view.

package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trupilot-gateway/pkg/assistant"
)

const (
	TurnSenderUser = "user"
	TurnSenderBot  = "bot"

	// Conversation request lifecycle
	StateIdle           = "IDLE"
	StateAwaitingAnswer = "AWAITING_ANSWER"
)

// Turn is one entry in the conversation log. User turns never carry
// metadata or sources; only bot turns may.
type Turn struct {
	Id        uuid.UUID           `json:"id"`
	Sender    string              `json:"sender"`
	Text      string              `json:"text"`
	CreatedAt time.Time           `json:"created_at"`
	Metadata  *assistant.Metadata `json:"metadata,omitempty"`
	Sources   []assistant.Source  `json:"sources,omitempty"`
}

// Stats are running totals derived from the turn log. They are never
// stored; recomputing from the full log must equal any incremental
// accumulation.
type Stats struct {
	HighestTokens int     `json:"highest_tokens"`
	TotalTokens   int     `json:"total_tokens"`
	TotalCost     float64 `json:"total_cost"`
	MetadataCount int     `json:"metadata_count"`
}

// Conversation is the per-view chat state: session token, append-only
// turn log, and the request lifecycle flags. One instance exists per
// page view and is never shared between views.
type Conversation struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	FlowActive bool      `json:"flow_active"`
	Turns      []Turn    `json:"turns"`
	CreatedAt  time.Time `json:"created_at"`

	mu sync.Mutex
}

// NewConversation starts an empty Idle conversation for the given
// session token.
func NewConversation(sessionID string) *Conversation {
	return &Conversation{
		ID:        sessionID,
		State:     StateIdle,
		Turns:     []Turn{},
		CreatedAt: time.Now(),
	}
}

// BeginAsk guards a submission. Empty or whitespace-only text is a
// no-op: no state change, no turn appended. On success the user turn
// is appended immediately (shown before the answer arrives) and the
// conversation enters AwaitingAnswer.
func (c *Conversation) BeginAsk(text string) (Turn, bool) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	turn := Turn{
		Id:        uuid.New(),
		Sender:    TurnSenderUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
	c.Turns = append(c.Turns, turn)
	c.State = StateAwaitingAnswer
	return turn, true
}

// CompleteAsk appends the bot turn for the in-flight request and
// returns the conversation to Idle. Failure is not a separate path:
// the caller passes the error message as text with nil metadata.
func (c *Conversation) CompleteAsk(text string, metadata *assistant.Metadata, sources []assistant.Source) Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	turn := Turn{
		Id:        uuid.New(),
		Sender:    TurnSenderBot,
		Text:      text,
		CreatedAt: time.Now(),
		Metadata:  metadata,
		Sources:   sources,
	}
	c.Turns = append(c.Turns, turn)
	c.State = StateIdle
	return turn
}

// StartFlow marks a guided flow as running. Returns false if one is
// already active; two flows never interleave on the same session.
func (c *Conversation) StartFlow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FlowActive {
		return false
	}
	c.FlowActive = true
	return true
}

// FinishFlow clears the guided-flow flag.
func (c *Conversation) FinishFlow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FlowActive = false
}

// IsFlowActive reports whether a guided flow currently owns the
// conversation.
func (c *Conversation) IsFlowActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.FlowActive
}

// Snapshot returns a copy of the turn log safe to render while the
// conversation keeps moving.
func (c *Conversation) Snapshot() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.Turns))
	copy(out, c.Turns)
	return out
}

// CurrentState returns the request lifecycle state.
func (c *Conversation) CurrentState() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.State
}

// ComputeStats recomputes the running totals from the full log.
func (c *Conversation) ComputeStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return AccumulateStats(Stats{}, c.Turns...)
}

// AccumulateStats folds turns into an existing Stats value. Turns
// without metadata contribute nothing; partial metadata (no token
// usage, no cost estimate) must not break the aggregation.
func AccumulateStats(acc Stats, turns ...Turn) Stats {
	for _, turn := range turns {
		md := turn.Metadata
		if md == nil {
			continue
		}
		acc.MetadataCount++
		if md.TokenUsage != nil {
			acc.TotalTokens += md.TokenUsage.TotalTokens
			if md.TokenUsage.TotalTokens > acc.HighestTokens {
				acc.HighestTokens = md.TokenUsage.TotalTokens
			}
		}
		if md.CostEstimateUSD != nil {
			acc.TotalCost += md.CostEstimateUSD.TotalCost
		}
	}
	return acc
}
