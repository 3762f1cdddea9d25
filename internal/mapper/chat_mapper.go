package mapper

import (
	"trupilot-gateway/internal/dto"
	"trupilot-gateway/pkg/store"
)

// Turn Mappers

// ToTurnDTO renders one log entry. Citation numbers are assigned from
// source order, 1-based, so the same source list always produces the
// same numbering.
func ToTurnDTO(turn store.Turn) *dto.TurnDTO {
	out := &dto.TurnDTO{
		Id:        turn.Id,
		Sender:    turn.Sender,
		Text:      turn.Text,
		CreatedAt: turn.CreatedAt,
		Metadata:  turn.Metadata,
	}
	for i, source := range turn.Sources {
		out.Citations = append(out.Citations, dto.CitationDTO{
			Number: i + 1,
			File:   source.File,
			Link:   source.Link,
		})
	}
	return out
}

// Stats Mappers

func ToStatsDTO(sessionID string, stats store.Stats) dto.StatsDTO {
	return dto.StatsDTO{
		SessionId:     sessionID,
		HighestTokens: stats.HighestTokens,
		TotalTokens:   stats.TotalTokens,
		TotalCost:     stats.TotalCost,
		MetadataCount: stats.MetadataCount,
	}
}

// Dashboard Mappers

func ToDashboardResponse(view store.Dashboard) *dto.DashboardResponse {
	return &dto.DashboardResponse{
		SessionId:     view.ID,
		State:         view.State,
		Files:         view.Files,
		Count:         view.Count,
		PendingDelete: view.PendingDelete,
		DeletingFile:  view.DeletingFile,
		LastError:     view.LastError,
	}
}
