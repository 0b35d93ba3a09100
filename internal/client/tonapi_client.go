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

// TonAPIClient is the primary upstream. Unlike NFTScan it resolves single items and collection activity.
type TonAPIClient interface {
	port.UpstreamClient
	port.ItemGetter
	port.ActivityGetter
}

// tonAPIClientImpl is the implementation of TonAPIClient.
type tonAPIClientImpl struct {
	*httpUpstream
}

// NewTonAPIClient creates a TonAPI client authenticating with a bearer token.
func NewTonAPIClient(opts Options, logger *zap.Logger) TonAPIClient {
	auth := ""
	if opts.APIKey != "" {
		auth = "Bearer " + opts.APIKey
	}
	return &tonAPIClientImpl{
		httpUpstream: newHTTPUpstream(opts, &normalize.TonAPI, "Authorization", auth, logger.Named("TonAPIClient")),
	}
}

// GetCollections implements port.UpstreamClient.
func (c *tonAPIClientImpl) GetCollections(ctx context.Context, params entity.CollectionsParams) ([]entity.Collection, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(entity.PageLimit(params.Limit)))
	q.Set("offset", strconv.Itoa(max(params.Offset, 0)))
	return c.collections(ctx, "GetCollections", "/v2/nfts/collections", q)
}

// GetItems implements port.UpstreamClient. The cursor is the offset of the next page.
func (c *tonAPIClientImpl) GetItems(ctx context.Context, params entity.ItemsParams) (entity.ItemPage, error) {
	limit := entity.PageLimit(params.Limit)
	offset, err := c.offsetFromCursor("GetItems", params.Cursor)
	if err != nil {
		return entity.ItemPage{}, err
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	path := "/v2/nfts/collections/" + url.PathEscape(params.CollectionID) + "/items"
	return c.itemPage(ctx, "GetItems", path, q, c.mapping.Items, offset, limit, params.CollectionID)
}

// GetCollectionByID implements port.UpstreamClient.
func (c *tonAPIClientImpl) GetCollectionByID(ctx context.Context, id string) (entity.Collection, error) {
	return c.collection(ctx, "GetCollectionByID", "/v2/nfts/collections/"+url.PathEscape(id), id)
}

// GetItem implements port.ItemGetter.
func (c *tonAPIClientImpl) GetItem(ctx context.Context, address string) (entity.Item, error) {
	return c.item(ctx, "GetItem", "/v2/nfts/"+url.PathEscape(address), address)
}

// GetTraits implements port.UpstreamClient.
func (c *tonAPIClientImpl) GetTraits(ctx context.Context, collectionID string) ([]entity.TraitBucket, error) {
	return c.traits(ctx, "GetTraits", "/v2/nfts/collections/"+url.PathEscape(collectionID)+"/traits")
}

// GetStats implements port.UpstreamClient.
func (c *tonAPIClientImpl) GetStats(ctx context.Context, params entity.StatsParams) (entity.Stats, error) {
	return c.stats(ctx, "GetStats", "/v2/nfts/collections/"+url.PathEscape(params.CollectionID)+"/stats")
}

// GetActivity implements port.ActivityGetter.
func (c *tonAPIClientImpl) GetActivity(ctx context.Context, params entity.ActivityParams) (entity.ItemPage, error) {
	limit := entity.PageLimit(params.Limit)
	offset, err := c.offsetFromCursor("GetActivity", params.Cursor)
	if err != nil {
		return entity.ItemPage{}, err
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	path := "/v2/nfts/collections/" + url.PathEscape(params.CollectionID) + "/history"
	return c.itemPage(ctx, "GetActivity", path, q, c.mapping.Activity, offset, limit, params.CollectionID)
}

// Search implements port.UpstreamClient.
func (c *tonAPIClientImpl) Search(ctx context.Context, params entity.SearchParams) (entity.ItemPage, error) {
	limit := entity.PageLimit(params.Limit)
	q := url.Values{}
	q.Set("query", params.Query)
	q.Set("limit", strconv.Itoa(limit))
	return c.itemPage(ctx, "Search", "/v2/nfts/search", q, c.mapping.Search, 0, limit, "")
}
