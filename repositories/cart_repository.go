package repositories

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"storefront/cart"
	"storefront/config"
)

// CartRepository persists cart lines in redis, one key per customer.
// When redis is down the process shares a single in-memory fallback so
// carts keep working for the lifetime of the instance.
type CartRepository struct {
	client *redis.Client
}

var memoryFallback = cart.NewMemoryStorage()

func NewCartRepository() *CartRepository {
	return &CartRepository{client: config.RedisClient}
}

func CartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}

func (r *CartRepository) Load(key string) ([]byte, error) {
	if r.client == nil {
		return memoryFallback.Load(key)
	}

	data, err := r.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *CartRepository) Save(key string, data []byte) error {
	if r.client == nil {
		return memoryFallback.Save(key, data)
	}
	return r.client.Set(context.Background(), key, data, 0).Err()
}
