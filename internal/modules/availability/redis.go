// README: Availability index backed by Redis sets.
package availability

import (
	"context"

	"github.com/redis/go-redis/v9"

	"fleetflow/internal/types"
)

const (
	vehicleSetKey = "availability:vehicles"
	driverSetKey  = "availability:drivers"
)

type RedisIndex struct {
	redis *redis.Client
}

func NewRedisIndex(client *redis.Client) *RedisIndex {
	return &RedisIndex{redis: client}
}

func (i *RedisIndex) HideVehicle(ctx context.Context, id types.ID) error {
	return i.redis.SRem(ctx, vehicleSetKey, string(id)).Err()
}

func (i *RedisIndex) RestoreVehicle(ctx context.Context, id types.ID) error {
	return i.redis.SAdd(ctx, vehicleSetKey, string(id)).Err()
}

func (i *RedisIndex) HideDriver(ctx context.Context, id types.ID) error {
	return i.redis.SRem(ctx, driverSetKey, string(id)).Err()
}

func (i *RedisIndex) RestoreDriver(ctx context.Context, id types.ID) error {
	return i.redis.SAdd(ctx, driverSetKey, string(id)).Err()
}

func (i *RedisIndex) VehicleIDs(ctx context.Context) ([]types.ID, error) {
	return i.members(ctx, vehicleSetKey)
}

func (i *RedisIndex) DriverIDs(ctx context.Context) ([]types.ID, error) {
	return i.members(ctx, driverSetKey)
}

func (i *RedisIndex) ResetVehicles(ctx context.Context, ids []types.ID) error {
	return i.reset(ctx, vehicleSetKey, ids)
}

func (i *RedisIndex) ResetDrivers(ctx context.Context, ids []types.ID) error {
	return i.reset(ctx, driverSetKey, ids)
}

func (i *RedisIndex) members(ctx context.Context, key string) ([]types.ID, error) {
	vals, err := i.redis.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(vals))
	for n, v := range vals {
		ids[n] = types.ID(v)
	}
	return ids, nil
}

func (i *RedisIndex) reset(ctx context.Context, key string, ids []types.ID) error {
	pipe := i.redis.TxPipeline()
	pipe.Del(ctx, key)
	if len(ids) > 0 {
		members := make([]interface{}, len(ids))
		for n, id := range ids {
			members[n] = string(id)
		}
		pipe.SAdd(ctx, key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
