package port

import (
	"context"

	"nft_aggregator/internal/domain/entity"
)

// UpstreamClient is the contract every NFT data vendor client satisfies.
type UpstreamClient interface {
	Name() string
	GetCollections(ctx context.Context, params entity.CollectionsParams) ([]entity.Collection, error)
	GetItems(ctx context.Context, params entity.ItemsParams) (entity.ItemPage, error)
	GetCollectionByID(ctx context.Context, id string) (entity.Collection, error)
	GetTraits(ctx context.Context, collectionID string) ([]entity.TraitBucket, error)
	GetStats(ctx context.Context, params entity.StatsParams) (entity.Stats, error)
	Search(ctx context.Context, params entity.SearchParams) (entity.ItemPage, error)
}

// ItemGetter is implemented by upstreams that can resolve a single item by address.
type ItemGetter interface {
	GetItem(ctx context.Context, address string) (entity.Item, error)
}

// ActivityGetter is implemented by upstreams that expose collection activity.
type ActivityGetter interface {
	GetActivity(ctx context.Context, params entity.ActivityParams) (entity.ItemPage, error)
}
