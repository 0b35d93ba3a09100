package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nft_aggregator/internal/app/port"
	"nft_aggregator/internal/domain/entity"
	"nft_aggregator/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	HeaderSource       = "X-Source"
	HeaderDegraded     = "X-Degraded"
	HeaderCacheControl = "Cache-Control"
	CacheControlValue  = "public, max-age=30"
)

// ResponseHeaders returns the headers describing one aggregator answer.
func ResponseHeaders(source entity.Source, degraded bool) map[string]string {
	d := "false"
	if degraded {
		d = "true"
	}
	return map[string]string{
		HeaderSource:       string(source),
		HeaderCacheControl: CacheControlValue,
		HeaderDegraded:     d,
	}
}

// aggregatorServiceImpl tries the primary upstream, then the secondary once.
// It keeps no per-call state; the answering source travels in each Result.
type aggregatorServiceImpl struct {
	primary             port.UpstreamClient
	secondary           port.UpstreamClient
	logger              *zap.Logger
	overviewConcurrency int
}

// NewAggregatorService creates the fallback aggregator. secondary may be nil.
func NewAggregatorService(primary, secondary port.UpstreamClient, logger *zap.Logger, overviewConcurrency int) port.NFTDataService {
	if overviewConcurrency <= 0 {
		overviewConcurrency = 3
	}
	return &aggregatorServiceImpl{
		primary:             primary,
		secondary:           secondary,
		logger:              logger.Named("AggregatorService"),
		overviewConcurrency: overviewConcurrency,
	}
}

var errNoUpstream = errors.New("no upstream configured")

// fallback runs call against primary and then secondary. When both fail it returns a degraded
// Result with the zero value of T and the joined upstream errors.
func fallback[T any](ctx context.Context, s *aggregatorServiceImpl, op string, call func(ctx context.Context, c port.UpstreamClient) (T, error)) (entity.Result[T], error) {
	attempts := []struct {
		source entity.Source
		client port.UpstreamClient
	}{
		{entity.SourcePrimary, s.primary},
		{entity.SourceSecondary, s.secondary},
	}

	var errs []error
	for _, a := range attempts {
		if a.client == nil {
			continue
		}
		data, err := call(ctx, a.client)
		if err == nil {
			metrics.ObserveResponse(op, string(a.source), false)
			return entity.Result[T]{Data: data, Source: a.source}, nil
		}
		errs = append(errs, err)

		if errors.Is(err, entity.ErrCapabilityUnsupported) {
			metrics.ObserveUpstream(a.client.Name(), op, metrics.OutcomeUnsupported, time.Now())
			s.logger.Debug("Upstream does not support operation",
				zap.String("operation", op), zap.String("upstream", a.client.Name()))
			continue
		}
		s.logger.Warn("Upstream call failed",
			zap.String("operation", op),
			zap.String("upstream", a.client.Name()),
			zap.String("source", string(a.source)),
			zap.Error(err))
	}

	if len(errs) == 0 {
		errs = append(errs, errNoUpstream)
	}
	metrics.ObserveResponse(op, string(entity.SourceNone), true)
	return entity.Result[T]{Source: entity.SourceNone, Degraded: true}, errors.Join(errs...)
}

// withDefault absorbs the failure of a list operation into a degraded default value.
func withDefault[T any](s *aggregatorServiceImpl, op string, res entity.Result[T], err error, def T) entity.Result[T] {
	if err == nil {
		return res
	}
	s.logger.Error("All upstreams failed, serving default", zap.String("operation", op), zap.Error(err))
	res.Data = def
	return res
}

// GetCollections implements port.NFTDataService.
func (s *aggregatorServiceImpl) GetCollections(ctx context.Context, params entity.CollectionsParams) (entity.Result[[]entity.Collection], error) {
	const op = "GetCollections"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) ([]entity.Collection, error) {
		return c.GetCollections(ctx, params)
	})
	return withDefault(s, op, res, err, []entity.Collection{}), nil
}

// GetItems implements port.NFTDataService.
func (s *aggregatorServiceImpl) GetItems(ctx context.Context, params entity.ItemsParams) (entity.Result[entity.ItemPage], error) {
	const op = "GetItems"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) (entity.ItemPage, error) {
		return c.GetItems(ctx, params)
	})
	return withDefault(s, op, res, err, entity.EmptyItemPage()), nil
}

// GetCollectionByID implements port.NFTDataService.
func (s *aggregatorServiceImpl) GetCollectionByID(ctx context.Context, id string) (entity.Result[entity.Collection], error) {
	const op = "GetCollectionByID"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) (entity.Collection, error) {
		return c.GetCollectionByID(ctx, id)
	})
	if err != nil {
		s.logger.Info("Collection could not be resolved", zap.String("id", id), zap.Error(err))
		return res, entity.NewNotFoundError("collection", id)
	}
	return res, nil
}

// GetItem implements port.NFTDataService. Upstreams without port.ItemGetter count as failed attempts.
func (s *aggregatorServiceImpl) GetItem(ctx context.Context, address string) (entity.Result[entity.Item], error) {
	const op = "GetItem"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) (entity.Item, error) {
		getter, ok := c.(port.ItemGetter)
		if !ok {
			return entity.Item{}, fmt.Errorf("%s: %w", c.Name(), entity.ErrCapabilityUnsupported)
		}
		return getter.GetItem(ctx, address)
	})
	if err != nil {
		s.logger.Info("Item could not be resolved", zap.String("address", address), zap.Error(err))
		return res, entity.NewNotFoundError("item", address)
	}
	return res, nil
}

// GetTraits implements port.NFTDataService.
func (s *aggregatorServiceImpl) GetTraits(ctx context.Context, collectionID string) (entity.Result[[]entity.TraitBucket], error) {
	const op = "GetTraits"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) ([]entity.TraitBucket, error) {
		return c.GetTraits(ctx, collectionID)
	})
	return withDefault(s, op, res, err, []entity.TraitBucket{}), nil
}

// GetStats implements port.NFTDataService.
func (s *aggregatorServiceImpl) GetStats(ctx context.Context, params entity.StatsParams) (entity.Result[entity.Stats], error) {
	const op = "GetStats"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) (entity.Stats, error) {
		return c.GetStats(ctx, params)
	})
	return withDefault(s, op, res, err, entity.Stats{}), nil
}

// GetActivity implements port.NFTDataService. Upstreams without port.ActivityGetter count as failed attempts.
func (s *aggregatorServiceImpl) GetActivity(ctx context.Context, params entity.ActivityParams) (entity.Result[entity.ItemPage], error) {
	const op = "GetActivity"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) (entity.ItemPage, error) {
		getter, ok := c.(port.ActivityGetter)
		if !ok {
			return entity.ItemPage{}, fmt.Errorf("%s: %w", c.Name(), entity.ErrCapabilityUnsupported)
		}
		return getter.GetActivity(ctx, params)
	})
	return withDefault(s, op, res, err, entity.EmptyItemPage()), nil
}

// Search implements port.NFTDataService.
func (s *aggregatorServiceImpl) Search(ctx context.Context, params entity.SearchParams) (entity.Result[entity.ItemPage], error) {
	const op = "Search"
	res, err := fallback(ctx, s, op, func(ctx context.Context, c port.UpstreamClient) (entity.ItemPage, error) {
		return c.Search(ctx, params)
	})
	return withDefault(s, op, res, err, entity.EmptyItemPage()), nil
}

// GetCollectionOverview fetches the collection, its stats and its traits concurrently.
// NotFound of the collection fails the whole overview.
func (s *aggregatorServiceImpl) GetCollectionOverview(ctx context.Context, id string) (entity.Result[entity.CollectionOverview], error) {
	var (
		col    entity.Result[entity.Collection]
		stats  entity.Result[entity.Stats]
		traits entity.Result[[]entity.TraitBucket]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.overviewConcurrency)
	g.Go(func() error {
		var err error
		col, err = s.GetCollectionByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.GetStats(gctx, entity.StatsParams{CollectionID: id})
		return err
	})
	g.Go(func() error {
		var err error
		traits, err = s.GetTraits(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return entity.Result[entity.CollectionOverview]{Source: entity.SourceNone, Degraded: true}, err
	}

	res := entity.Result[entity.CollectionOverview]{
		Data: entity.CollectionOverview{
			Collection: col.Data,
			Stats:      stats.Data,
			Traits:     traits.Data,
		},
		Source:   combineSources(col.Source, stats.Source, traits.Source),
		Degraded: col.Degraded || stats.Degraded || traits.Degraded,
	}
	metrics.ObserveResponse("GetCollectionOverview", string(res.Source), res.Degraded)
	return res, nil
}

// combineSources reports primary only when every part came from primary and none when every part failed.
func combineSources(sources ...entity.Source) entity.Source {
	allPrimary, allNone := true, true
	for _, src := range sources {
		if src != entity.SourcePrimary {
			allPrimary = false
		}
		if src != entity.SourceNone {
			allNone = false
		}
	}
	switch {
	case allPrimary:
		return entity.SourcePrimary
	case allNone:
		return entity.SourceNone
	default:
		return entity.SourceSecondary
	}
}
