package dto

import (
	"time"

	"github.com/google/uuid"

	"trupilot-gateway/pkg/assistant"
)

type CreateSessionResponse struct {
	SessionId       string   `json:"session_id"`
	SuggestionChips []string `json:"suggestion_chips"`
	GuidedQuestions int      `json:"guided_questions"`
}

// CitationDTO is one numbered source reference. Numbers are 1-based
// and stable for a given turn: the same source list always yields the
// same numbering.
type CitationDTO struct {
	Number int    `json:"number"`
	File   string `json:"file"`
	Link   string `json:"link"`
}

type TurnDTO struct {
	Id        uuid.UUID           `json:"id"`
	Sender    string              `json:"sender"`
	Text      string              `json:"text"`
	CreatedAt time.Time           `json:"created_at"`
	Metadata  *assistant.Metadata `json:"metadata,omitempty"`
	Citations []CitationDTO       `json:"citations,omitempty"`
}

type AskRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Query     string `json:"query"`
}

type AskResponse struct {
	SessionId string   `json:"session_id"`
	Sent      *TurnDTO `json:"sent"`
	Reply     *TurnDTO `json:"reply"`
	Stats     StatsDTO `json:"stats"`
}

type HistoryResponse struct {
	SessionId  string    `json:"session_id"`
	State      string    `json:"state"`
	FlowActive bool      `json:"flow_active"`
	Turns      []TurnDTO `json:"turns"`
}

type StatsDTO struct {
	SessionId     string  `json:"session_id"`
	HighestTokens int     `json:"highest_tokens"`
	TotalTokens   int     `json:"total_tokens"`
	TotalCost     float64 `json:"total_cost"`
	MetadataCount int     `json:"metadata_count"`
}

type StartFlowRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type StartFlowResponse struct {
	SessionId string `json:"session_id"`
	Questions int    `json:"questions"`
}
