package cache

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	domproduct "example.com/fastshop/internal/domain/product"
)

var ErrCacheMiss = errors.New("cache miss")

type ProductCache interface {
	Get(ctx context.Context, id int64) (*domproduct.Product, error)
	Set(ctx context.Context, p *domproduct.Product) error
}

type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
}

// CachedProductReader serves product point lookups from a cache and reads
// through to the store on a miss. A failing cache degrades to the store.
type CachedProductReader struct {
	next  ProductReader
	cache ProductCache
	log   logrus.FieldLogger
}

func NewCachedProductReader(next ProductReader, cache ProductCache, log logrus.FieldLogger) *CachedProductReader {
	return &CachedProductReader{next: next, cache: cache, log: log}
}

func (r *CachedProductReader) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	p, err := r.cache.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		r.log.WithError(err).WithField("product_id", id).Warn("product cache read failed")
	}

	p, err = r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, p); err != nil {
		r.log.WithError(err).WithField("product_id", id).Warn("product cache write failed")
	}
	return p, nil
}
