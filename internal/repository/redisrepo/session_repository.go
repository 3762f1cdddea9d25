// FILE: internal/repository/redisrepo/session_repository.go
// PURPOSE: Redis-backed session store for multi-instance deployments.
// NOTE: Entries are TTL'd view state, not durable chat history. The
//       in-memory repository stays the default; this one is selected
//       when REDIS_URL is configured.

package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"trupilot-gateway/pkg/store"
)

const (
	conversationKeyPrefix = "trupilot:conversation:"
	dashboardKeyPrefix    = "trupilot:dashboard:"
)

type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(redisURL string, ttl time.Duration) (*SessionRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &SessionRepository{rdb: rdb, ttl: ttl}, nil
}

func (r *SessionRepository) SaveConversation(ctx context.Context, conv *store.Conversation) error {
	return r.save(ctx, conversationKeyPrefix+conv.ID, conv)
}

func (r *SessionRepository) GetConversation(ctx context.Context, sessionID string) (*store.Conversation, bool) {
	var conv store.Conversation
	if !r.load(ctx, conversationKeyPrefix+sessionID, &conv) {
		return nil, false
	}
	return &conv, true
}

func (r *SessionRepository) SaveDashboard(ctx context.Context, dash *store.Dashboard) error {
	view := dash.View()
	return r.save(ctx, dashboardKeyPrefix+dash.ID, &view)
}

func (r *SessionRepository) GetDashboard(ctx context.Context, sessionID string) (*store.Dashboard, bool) {
	var dash store.Dashboard
	if !r.load(ctx, dashboardKeyPrefix+sessionID, &dash) {
		return nil, false
	}
	return &dash, true
}

func (r *SessionRepository) save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, payload, r.ttl).Err()
}

func (r *SessionRepository) load(ctx context.Context, key string, out any) bool {
	payload, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}
