package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"trupilot-gateway/pkg/store"
)

type SessionRepository struct {
	conversations *cache.Cache
	dashboards    *cache.Cache
}

// NewSessionRepository builds the default in-process store. Entries
// live for one page view; expired views are purged in the background.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{
		conversations: cache.New(ttl, 10*time.Minute),
		dashboards:    cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) SaveConversation(_ context.Context, conv *store.Conversation) error {
	r.conversations.Set(conv.ID, conv, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) GetConversation(_ context.Context, sessionID string) (*store.Conversation, bool) {
	if x, found := r.conversations.Get(sessionID); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *SessionRepository) SaveDashboard(_ context.Context, dash *store.Dashboard) error {
	r.dashboards.Set(dash.ID, dash, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) GetDashboard(_ context.Context, sessionID string) (*store.Dashboard, bool) {
	if x, found := r.dashboards.Get(sessionID); found {
		return x.(*store.Dashboard), true
	}
	return nil, false
}
