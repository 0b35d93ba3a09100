package port

import (
	"context"

	"nft_aggregator/internal/domain/entity"
)

// NFTDataService is the read API served to HTTP handlers.
// List operations never fail because of upstreams; they report Degraded instead.
// GetCollectionByID, GetItem and GetCollectionOverview return entity.ErrNotFound when nothing resolves.
type NFTDataService interface {
	GetCollections(ctx context.Context, params entity.CollectionsParams) (entity.Result[[]entity.Collection], error)
	GetItems(ctx context.Context, params entity.ItemsParams) (entity.Result[entity.ItemPage], error)
	GetCollectionByID(ctx context.Context, id string) (entity.Result[entity.Collection], error)
	GetItem(ctx context.Context, address string) (entity.Result[entity.Item], error)
	GetTraits(ctx context.Context, collectionID string) (entity.Result[[]entity.TraitBucket], error)
	GetStats(ctx context.Context, params entity.StatsParams) (entity.Result[entity.Stats], error)
	GetActivity(ctx context.Context, params entity.ActivityParams) (entity.Result[entity.ItemPage], error)
	Search(ctx context.Context, params entity.SearchParams) (entity.Result[entity.ItemPage], error)
	GetCollectionOverview(ctx context.Context, id string) (entity.Result[entity.CollectionOverview], error)
}
