package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// basicInfoTTL bounds how long a cached invitation-landing lookup may lag
// behind a rename. The joiner's own entry is invalidated explicitly on join.
const basicInfoTTL = 30 * time.Second

// BasicInfoCache caches GetWorkspaceBasicInfo results in Redis. The lookup
// backs the invitation landing page, which is hit repeatedly while a user
// decides whether to join. A nil cache is a no-op.
type BasicInfoCache struct {
	client redis.UniversalClient
}

// NewBasicInfoCache creates a new basic-info cache.
func NewBasicInfoCache(client redis.UniversalClient) *BasicInfoCache {
	if client == nil {
		return nil
	}
	return &BasicInfoCache{client: client}
}

func basicInfoKey(workspaceID, userID uuid.UUID) string {
	return fmt.Sprintf("workspace:info:%s:%s", workspaceID, userID)
}

// Get returns the cached basic info, or (nil, nil) on a miss.
func (c *BasicInfoCache) Get(ctx context.Context, workspaceID, userID uuid.UUID) (*BasicInfo, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, basicInfoKey(workspaceID, userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var info BasicInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Set stores the basic info with a short TTL.
func (c *BasicInfoCache) Set(ctx context.Context, workspaceID, userID uuid.UUID, info *BasicInfo) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, basicInfoKey(workspaceID, userID), data, basicInfoTTL).Err()
}

// Invalidate drops the cached entry for a (workspace, user) pair.
func (c *BasicInfoCache) Invalidate(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, basicInfoKey(workspaceID, userID)).Err()
}
