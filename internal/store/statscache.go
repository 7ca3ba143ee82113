package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"worklog/internal/attendance"
)

// StatsCache keeps the day's dashboard stats in Redis so the admin view can
// skip recomputation. Postgres stays the source of truth; a miss just means
// the caller computes and refills.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a cache with a 24h entry lifetime.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client, ttl: 24 * time.Hour}
}

func statsKey(day time.Time) string {
	return "dashboard:stats:" + day.Format("2006-01-02")
}

// Get returns the cached stats for the given day, or false on a miss or any
// redis error.
func (c *StatsCache) Get(ctx context.Context, day time.Time) (attendance.DashboardStats, bool) {
	payload, err := c.client.Get(ctx, statsKey(day)).Bytes()
	if err != nil {
		return attendance.DashboardStats{}, false
	}
	var stats attendance.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return attendance.DashboardStats{}, false
	}
	return stats, true
}

// Set stores the stats for the given day.
func (c *StatsCache) Set(ctx context.Context, day time.Time, stats attendance.DashboardStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(day), payload, c.ttl).Err()
}
