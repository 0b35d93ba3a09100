package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"nft_aggregator/internal/app/port"
	"nft_aggregator/internal/domain/entity"
	"nft_aggregator/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cachingServiceImpl is a read-through cache in front of another port.NFTDataService.
// Degraded results and errors are never stored.
type cachingServiceImpl struct {
	next   port.NFTDataService
	cache  port.ResponseCache
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewCachingService wraps next with cache. Concurrent misses for the same key share one upstream call.
func NewCachingService(next port.NFTDataService, cache port.ResponseCache, ttl time.Duration, logger *zap.Logger) port.NFTDataService {
	return &cachingServiceImpl{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("CachingService"),
	}
}

func cached[T any](ctx context.Context, s *cachingServiceImpl, key string, load func(ctx context.Context) (entity.Result[T], error)) (entity.Result[T], error) {
	var hit entity.Result[T]
	found, err := s.cache.Get(ctx, key, &hit)
	if err != nil {
		s.logger.Warn("Response cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
	}
	if found && err == nil {
		metrics.ObserveCache(true)
		return hit, nil
	}
	metrics.ObserveCache(false)

	v, err, shared := s.group.Do(key, func() (any, error) {
		res, err := load(ctx)
		if err != nil {
			return res, err
		}
		if !res.Degraded {
			if err := s.cache.Set(ctx, key, res, s.ttl); err != nil {
				s.logger.Warn("Response cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return res, nil
	})
	if shared {
		s.logger.Debug("Collapsed concurrent cache miss", zap.String("key", key))
	}
	res, _ := v.(entity.Result[T])
	return res, err
}

// GetCollections implements port.NFTDataService.
func (s *cachingServiceImpl) GetCollections(ctx context.Context, params entity.CollectionsParams) (entity.Result[[]entity.Collection], error) {
	key := fmt.Sprintf("collections:%d:%d", entity.PageLimit(params.Limit), params.Offset)
	return cached(ctx, s, key, func(ctx context.Context) (entity.Result[[]entity.Collection], error) {
		return s.next.GetCollections(ctx, params)
	})
}

// GetItems implements port.NFTDataService.
func (s *cachingServiceImpl) GetItems(ctx context.Context, params entity.ItemsParams) (entity.Result[entity.ItemPage], error) {
	key := fmt.Sprintf("items:%s:%d:%s", params.CollectionID, entity.PageLimit(params.Limit), url.QueryEscape(params.Cursor))
	return cached(ctx, s, key, func(ctx context.Context) (entity.Result[entity.ItemPage], error) {
		return s.next.GetItems(ctx, params)
	})
}

// GetCollectionByID implements port.NFTDataService.
func (s *cachingServiceImpl) GetCollectionByID(ctx context.Context, id string) (entity.Result[entity.Collection], error) {
	return cached(ctx, s, "collection:"+id, func(ctx context.Context) (entity.Result[entity.Collection], error) {
		return s.next.GetCollectionByID(ctx, id)
	})
}

// GetItem implements port.NFTDataService.
func (s *cachingServiceImpl) GetItem(ctx context.Context, address string) (entity.Result[entity.Item], error) {
	return cached(ctx, s, "item:"+address, func(ctx context.Context) (entity.Result[entity.Item], error) {
		return s.next.GetItem(ctx, address)
	})
}

// GetTraits implements port.NFTDataService.
func (s *cachingServiceImpl) GetTraits(ctx context.Context, collectionID string) (entity.Result[[]entity.TraitBucket], error) {
	return cached(ctx, s, "traits:"+collectionID, func(ctx context.Context) (entity.Result[[]entity.TraitBucket], error) {
		return s.next.GetTraits(ctx, collectionID)
	})
}

// GetStats implements port.NFTDataService.
func (s *cachingServiceImpl) GetStats(ctx context.Context, params entity.StatsParams) (entity.Result[entity.Stats], error) {
	return cached(ctx, s, "stats:"+params.CollectionID, func(ctx context.Context) (entity.Result[entity.Stats], error) {
		return s.next.GetStats(ctx, params)
	})
}

// GetActivity implements port.NFTDataService.
func (s *cachingServiceImpl) GetActivity(ctx context.Context, params entity.ActivityParams) (entity.Result[entity.ItemPage], error) {
	key := fmt.Sprintf("activity:%s:%d:%s", params.CollectionID, entity.PageLimit(params.Limit), url.QueryEscape(params.Cursor))
	return cached(ctx, s, key, func(ctx context.Context) (entity.Result[entity.ItemPage], error) {
		return s.next.GetActivity(ctx, params)
	})
}

// Search implements port.NFTDataService.
func (s *cachingServiceImpl) Search(ctx context.Context, params entity.SearchParams) (entity.Result[entity.ItemPage], error) {
	key := fmt.Sprintf("search:%s:%d", url.QueryEscape(params.Query), entity.PageLimit(params.Limit))
	return cached(ctx, s, key, func(ctx context.Context) (entity.Result[entity.ItemPage], error) {
		return s.next.Search(ctx, params)
	})
}

// GetCollectionOverview implements port.NFTDataService.
func (s *cachingServiceImpl) GetCollectionOverview(ctx context.Context, id string) (entity.Result[entity.CollectionOverview], error) {
	return cached(ctx, s, "overview:"+id, func(ctx context.Context) (entity.Result[entity.CollectionOverview], error) {
		return s.next.GetCollectionOverview(ctx, id)
	})
}
