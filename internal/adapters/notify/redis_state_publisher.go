package notify

import (
	"context"
	"elevator-sim-service/internal/api/dto"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStatePublisher pushes every state change to a pub/sub channel and keeps the
// latest one under "<channel>:latest" for clients that connect mid-run.
type RedisStatePublisher struct {
	Client      *redis.Client
	Channel     string
	MaxCapacity int
}

func NewRedisStatePublisher(client *redis.Client, channel string, maxCapacity int) *RedisStatePublisher {
	return &RedisStatePublisher{Client: client, Channel: channel, MaxCapacity: maxCapacity}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("dial redis %s: %w", addr, err)
	}
	return client, nil
}

func (p *RedisStatePublisher) LatestKey() string {
	return p.Channel + ":latest"
}

func (p *RedisStatePublisher) Publish(ctx context.Context, snap domain.Snapshot) (err error) {
	defer obs.Time(ctx, "state.redis.Publish")(&err)

	if p.Client == nil {
		return errors.New("redis state publisher: client is nil")
	}

	payload, err := json.Marshal(dto.FromSnapshot(snap, p.MaxCapacity))
	if err != nil {
		return fmt.Errorf("publish state version=%d: encode: %w", snap.Version, err)
	}

	pipe := p.Client.TxPipeline()
	pipe.Set(ctx, p.LatestKey(), payload, 0)
	pipe.Publish(ctx, p.Channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish state version=%d: %w", snap.Version, err)
	}
	return nil
}
