package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	domproduct "example.com/fastshop/internal/domain/product"
	"example.com/fastshop/internal/infra/cache"
)

const keyPrefix = "product:"

type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient accepts a redis:// URL or a bare host:port address.
func NewClient(addr string) *redis.Client {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			PoolSize:     10,
		}
	}
	return redis.NewClient(opts)
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func (c *ProductCache) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(pingCtx).Err()
}

func (c *ProductCache) Get(ctx context.Context, id int64) (*domproduct.Product, error) {
	val, err := c.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, cache.ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}

	var p domproduct.Product
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, errors.Wrapf(err, "decode cached product %d", id)
	}
	return &p, nil
}

func (c *ProductCache) Set(ctx context.Context, p *domproduct.Product) error {
	val, err := json.Marshal(p)
	if err != nil {
		return errors.Wrapf(err, "encode product %d", p.ID)
	}
	if err := c.client.Set(ctx, key(p.ID), val, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}
