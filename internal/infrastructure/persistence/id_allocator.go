package persistence

import (
	"context"

	"github.com/redis/go-redis/v9"

	"crm_bot/internal/domain"
	"crm_bot/internal/domain/entity"
	service "crm_bot/internal/domain/service/crm"
	"crm_bot/pkg/errcodes"
)

const dealIDKey = "crm:deal-id"

// RedisIDAllocator — единственная точка сериализации перед созданием сделки:
// атомарный INCR вместо read-max, так что два одновременных создания не
// получат один номер. Счётчик при первом обращении сажается на max(id) уже
// существующих записей.
type RedisIDAllocator struct {
	client *redis.Client
}

func NewRedisIDAllocator(client *redis.Client) *RedisIDAllocator {
	return &RedisIDAllocator{client: client}
}

func (a *RedisIDAllocator) NextID(ctx context.Context, existing []entity.Deal) (int, error) {
	if err := a.client.SetNX(ctx, dealIDKey, service.MaxID(existing), 0).Err(); err != nil {
		return 0, domain.WrapError(err, errcodes.StoreUnavailable, "failed to seed deal counter")
	}

	id, err := a.client.Incr(ctx, dealIDKey).Result()
	if err != nil {
		return 0, domain.WrapError(err, errcodes.StoreUnavailable, "failed to increment deal counter")
	}

	return int(id), nil
}
