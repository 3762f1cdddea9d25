package mapper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"trupilot-gateway/internal/dto"
	"trupilot-gateway/pkg/assistant"
	"trupilot-gateway/pkg/store"
)

func TestToTurnDTOCitationNumbering(t *testing.T) {
	turn := store.Turn{
		Id:     uuid.New(),
		Sender: store.TurnSenderBot,
		Text:   "answer",
		Sources: []assistant.Source{
			{File: "policy.pdf", Link: "http://files/policy.pdf"},
			{File: "terms.pdf", Link: "http://files/terms.pdf"},
			{File: "faq.pdf", Link: "http://files/faq.pdf"},
		},
	}

	first := ToTurnDTO(turn)
	second := ToTurnDTO(turn)

	assert.Equal(t, []dto.CitationDTO{
		{Number: 1, File: "policy.pdf", Link: "http://files/policy.pdf"},
		{Number: 2, File: "terms.pdf", Link: "http://files/terms.pdf"},
		{Number: 3, File: "faq.pdf", Link: "http://files/faq.pdf"},
	}, first.Citations)

	// Numbering is a pure function of source order.
	assert.Equal(t, first.Citations, second.Citations)
}

func TestToTurnDTOWithoutSources(t *testing.T) {
	turn := store.Turn{
		Id:     uuid.New(),
		Sender: store.TurnSenderUser,
		Text:   "question",
	}

	out := ToTurnDTO(turn)
	assert.Empty(t, out.Citations)
	assert.Nil(t, out.Metadata)
	assert.Equal(t, "question", out.Text)
}

func TestToStatsDTO(t *testing.T) {
	out := ToStatsDTO("user_abc12345", store.Stats{
		HighestTokens: 100,
		TotalTokens:   142,
		TotalCost:     0.0071,
		MetadataCount: 2,
	})

	assert.Equal(t, "user_abc12345", out.SessionId)
	assert.Equal(t, 100, out.HighestTokens)
	assert.Equal(t, 142, out.TotalTokens)
	assert.InDelta(t, 0.0071, out.TotalCost, 1e-9)
	assert.Equal(t, 2, out.MetadataCount)
}

func TestToDashboardResponse(t *testing.T) {
	view := store.Dashboard{
		ID:            "user_abc12345",
		State:         store.DashboardLoaded,
		Files:         []string{"a.pdf", "b.pdf"},
		Count:         2,
		PendingDelete: "a.pdf",
	}

	out := ToDashboardResponse(view)
	assert.Equal(t, "user_abc12345", out.SessionId)
	assert.Equal(t, store.DashboardLoaded, out.State)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, out.Files)
	assert.Equal(t, "a.pdf", out.PendingDelete)
}
