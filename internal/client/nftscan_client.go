package client

import (
	"context"
	"net/url"
	"strconv"

	"nft_aggregator/internal/app/port"
	"nft_aggregator/internal/domain/entity"
	"nft_aggregator/internal/normalize"

	"go.uber.org/zap"
)

// nftScanClientImpl is the secondary upstream. NFTScan has no single-item or activity
// endpoint for TON, so it implements neither port.ItemGetter nor port.ActivityGetter.
type nftScanClientImpl struct {
	*httpUpstream
}

// NewNFTScanClient creates an NFTScan TON client authenticating with the X-API-KEY header.
func NewNFTScanClient(opts Options, logger *zap.Logger) port.UpstreamClient {
	return &nftScanClientImpl{
		httpUpstream: newHTTPUpstream(opts, &normalize.NFTScan, "X-API-KEY", opts.APIKey, logger.Named("NFTScanClient")),
	}
}

// GetCollections implements port.UpstreamClient.
func (c *nftScanClientImpl) GetCollections(ctx context.Context, params entity.CollectionsParams) ([]entity.Collection, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(entity.PageLimit(params.Limit)))
	q.Set("offset", strconv.Itoa(max(params.Offset, 0)))
	return c.collections(ctx, "GetCollections", "/api/ton/collections/rankings", q)
}

// GetItems implements port.UpstreamClient. The cursor is opaque and comes from the previous page.
func (c *nftScanClientImpl) GetItems(ctx context.Context, params entity.ItemsParams) (entity.ItemPage, error) {
	limit := entity.PageLimit(params.Limit)
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}
	path := "/api/ton/assets/collection/" + url.PathEscape(params.CollectionID)
	return c.itemPage(ctx, "GetItems", path, q, c.mapping.Items, 0, limit, params.CollectionID)
}

// GetCollectionByID implements port.UpstreamClient.
func (c *nftScanClientImpl) GetCollectionByID(ctx context.Context, id string) (entity.Collection, error) {
	return c.collection(ctx, "GetCollectionByID", "/api/ton/collections/"+url.PathEscape(id), id)
}

// GetTraits implements port.UpstreamClient.
func (c *nftScanClientImpl) GetTraits(ctx context.Context, collectionID string) ([]entity.TraitBucket, error) {
	return c.traits(ctx, "GetTraits", "/api/ton/collections/"+url.PathEscape(collectionID)+"/attributes")
}

// GetStats implements port.UpstreamClient.
func (c *nftScanClientImpl) GetStats(ctx context.Context, params entity.StatsParams) (entity.Stats, error) {
	return c.stats(ctx, "GetStats", "/api/ton/statistics/collection/"+url.PathEscape(params.CollectionID))
}

// Search implements port.UpstreamClient.
func (c *nftScanClientImpl) Search(ctx context.Context, params entity.SearchParams) (entity.ItemPage, error) {
	limit := entity.PageLimit(params.Limit)
	q := url.Values{}
	q.Set("keyword", params.Query)
	q.Set("limit", strconv.Itoa(limit))
	return c.itemPage(ctx, "Search", "/api/ton/assets/search", q, c.mapping.Search, 0, limit, "")
}
