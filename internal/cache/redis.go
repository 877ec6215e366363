package cache

import (
	"context"
	"fmt"
	"time"

	"hostel-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache keys for room listings. Allocation writes invalidate both.
const (
	AvailableRoomsKey   = "rooms:available"
	AllRoomsKey         = "rooms:all"
	OccupancySummaryKey = "rooms:occupancy"
)

const roomsTTL = 5 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. The cache degrades gracefully:
// when Redis is unreachable every lookup misses and every write is a no-op.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetRooms returns a cached room listing (marshalled JSON) if present.
func GetRooms(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetRooms caches a marshalled room listing.
func SetRooms(ctx context.Context, key string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, roomsTTL)
}

// InvalidateRooms drops the room listing caches. Called after every
// allocate/end/recompute so readers never see stale occupancy for longer
// than the write itself.
func InvalidateRooms(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, AvailableRoomsKey, AllRoomsKey, OccupancySummaryKey)
}
