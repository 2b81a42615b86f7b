package tenancyinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/maprecruit/platform/pkg/kernel"
)

// RedisSessionStore implements tenancy.SessionStore on redis. Active context
// is session-scoped state; it dies with the session, so redis with a TTL is
// the natural home rather than the users table.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a new redis-backed session store
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

type activeContext struct {
	CompanyID string `json:"company_id"`
	ClientID  string `json:"client_id"`
}

func sessionKey(sessionID kernel.SessionID) string {
	return "session:context:" + sessionID.String()
}

// SetActiveContext records the active company/client for a session
func (s *RedisSessionStore) SetActiveContext(ctx context.Context, sessionID kernel.SessionID, companyID kernel.CompanyID, clientID kernel.ClientID) error {
	data, err := json.Marshal(activeContext{
		CompanyID: companyID.String(),
		ClientID:  clientID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal active context: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store active context for session %s: %w", sessionID, err)
	}
	return nil
}

// GetActiveContext retrieves the active company/client for a session
func (s *RedisSessionStore) GetActiveContext(ctx context.Context, sessionID kernel.SessionID) (kernel.CompanyID, kernel.ClientID, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return "", "", nil
		}
		return "", "", fmt.Errorf("load active context for session %s: %w", sessionID, err)
	}

	var stored activeContext
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", "", fmt.Errorf("decode active context for session %s: %w", sessionID, err)
	}

	return kernel.CompanyID(stored.CompanyID), kernel.ClientID(stored.ClientID), nil
}
