package contract

import (
	"context"

	"trupilot-gateway/pkg/store"
)

// ISessionRepository holds the per-view conversation and dashboard
// state for the lifetime of a page view. Entries expire on TTL; the
// protocol has no renewal or logout.
type ISessionRepository interface {
	SaveConversation(ctx context.Context, conv *store.Conversation) error
	GetConversation(ctx context.Context, sessionID string) (*store.Conversation, bool)

	SaveDashboard(ctx context.Context, dash *store.Dashboard) error
	GetDashboard(ctx context.Context, sessionID string) (*store.Dashboard, bool)
}
