package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nft_aggregator/internal/domain/entity"
	"nft_aggregator/internal/normalize"
	"nft_aggregator/internal/pkg/metrics"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures one upstream client.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// Limiter bounds outbound calls; nil disables limiting.
	Limiter *rate.Limiter
}

// httpUpstream holds the request plumbing shared by the vendor clients.
type httpUpstream struct {
	client     *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
	mapping    *normalize.Mapping
	authHeader string
	authValue  string
}

func newHTTPUpstream(opts Options, mapping *normalize.Mapping, authHeader, authValue string, logger *zap.Logger) *httpUpstream {
	return &httpUpstream{
		client:     &fasthttp.Client{},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		timeout:    opts.Timeout,
		limiter:    opts.Limiter,
		logger:     logger,
		mapping:    mapping,
		authHeader: authHeader,
		authValue:  authValue,
	}
}

// Name returns the vendor name used in logs, metrics and errors.
func (u *httpUpstream) Name() string {
	return u.mapping.Vendor
}

// get performs one GET and returns the decoded body.
// Every failure is an *entity.UpstreamError; a 404 keeps its status code so lookups can report NotFound.
func (u *httpUpstream) get(ctx context.Context, op, path string, query url.Values) (any, error) {
	started := time.Now()

	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeError, started)
			return nil, entity.NewUpstreamError(u.Name(), op, 0, fmt.Errorf("rate limiter: %w", err))
		}
	}

	requestURL := u.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	u.logger.Debug("Requesting upstream", zap.String("operation", op), zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if u.authValue != "" {
		req.Header.Set(u.authHeader, u.authValue)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := ctx.Err(); err != nil {
		metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeError, started)
		return nil, entity.NewUpstreamError(u.Name(), op, 0, err)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = u.client.DoDeadline(req, resp, deadline)
	} else {
		err = u.client.DoTimeout(req, resp, u.timeout)
	}
	if err != nil {
		metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeError, started)
		u.logger.Error("Failed to execute upstream request", zap.String("operation", op), zap.String("url", requestURL), zap.Error(err))
		return nil, entity.NewUpstreamError(u.Name(), op, 0, fmt.Errorf("failed to execute request to %s: %w", requestURL, err))
	}

	// fasthttp cannot abort on cancellation; a reply that arrives after it is discarded.
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeError, started)
		return nil, entity.NewUpstreamError(u.Name(), op, 0, ctxErr)
	}

	rawBody := resp.Body()
	status := resp.StatusCode()

	if status == fasthttp.StatusNotFound {
		metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeNotFound, started)
		u.logger.Debug("Upstream returned 404", zap.String("operation", op), zap.String("url", requestURL))
		return nil, entity.NewUpstreamError(u.Name(), op, status, errors.New("not found"))
	}
	if status < 200 || status >= 300 {
		metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeError, started)
		u.logger.Error("Upstream request failed",
			zap.String("operation", op),
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", truncate(rawBody, 512)),
		)
		return nil, entity.NewUpstreamError(u.Name(), op, status, fmt.Errorf("unexpected status: %s", truncate(rawBody, 256)))
	}

	body, err := normalize.Decode(rawBody)
	if err != nil {
		metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeError, started)
		u.logger.Error("Failed to decode upstream response", zap.String("operation", op), zap.String("url", requestURL), zap.Error(err))
		return nil, entity.NewUpstreamError(u.Name(), op, status, err)
	}
	if err := normalize.CheckStatus(u.mapping, body); err != nil {
		metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeError, started)
		u.logger.Error("Upstream reported failure in body", zap.String("operation", op), zap.String("url", requestURL), zap.Error(err))
		return nil, entity.NewUpstreamError(u.Name(), op, status, err)
	}

	metrics.ObserveUpstream(u.Name(), op, metrics.OutcomeSuccess, started)
	return body, nil
}

func (u *httpUpstream) collections(ctx context.Context, op, path string, query url.Values) ([]entity.Collection, error) {
	body, err := u.get(ctx, op, path, query)
	if err != nil {
		return nil, err
	}
	return normalize.Collections(u.mapping, body), nil
}

func (u *httpUpstream) itemPage(ctx context.Context, op, path string, query url.Values, shape normalize.ListShape, offset, limit int, collectionID string) (entity.ItemPage, error) {
	body, err := u.get(ctx, op, path, query)
	if err != nil {
		return entity.ItemPage{}, err
	}
	page := normalize.ItemPage(u.mapping, shape, body, offset, limit)
	for i := range page.Items {
		if page.Items[i].CollectionID == "" {
			page.Items[i].CollectionID = collectionID
		}
	}
	return page, nil
}

// record fetches a single entity and unwraps its envelope. A 404 or an empty record is NotFound.
func (u *httpUpstream) record(ctx context.Context, op, path, envelope, resource, id string) (any, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.NewNotFoundError(resource, id)
	}
	body, err := u.get(ctx, op, path, nil)
	if err != nil {
		var upErr *entity.UpstreamError
		if errors.As(err, &upErr) && upErr.StatusCode == fasthttp.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", u.Name(), entity.NewNotFoundError(resource, id))
		}
		return nil, err
	}
	rec, ok := normalize.Envelope(body, envelope)
	if !ok {
		return nil, fmt.Errorf("%s: %w", u.Name(), entity.NewNotFoundError(resource, id))
	}
	return rec, nil
}

func (u *httpUpstream) collection(ctx context.Context, op, path, id string) (entity.Collection, error) {
	rec, err := u.record(ctx, op, path, u.mapping.CollectionEnvelope, "collection", id)
	if err != nil {
		return entity.Collection{}, err
	}
	c := normalize.Collection(u.mapping, rec)
	if c.ID == "" {
		c.ID = id
	}
	return c, nil
}

func (u *httpUpstream) item(ctx context.Context, op, path, address string) (entity.Item, error) {
	rec, err := u.record(ctx, op, path, u.mapping.ItemEnvelope, "item", address)
	if err != nil {
		return entity.Item{}, err
	}
	it := normalize.Item(u.mapping, rec)
	if it.Address == "" {
		it.Address = address
	}
	return it, nil
}

func (u *httpUpstream) traits(ctx context.Context, op, path string) ([]entity.TraitBucket, error) {
	body, err := u.get(ctx, op, path, nil)
	if err != nil {
		return nil, err
	}
	return normalize.Traits(u.mapping, body), nil
}

func (u *httpUpstream) stats(ctx context.Context, op, path string) (entity.Stats, error) {
	body, err := u.get(ctx, op, path, nil)
	if err != nil {
		return entity.Stats{}, err
	}
	rec, ok := normalize.Envelope(body, u.mapping.StatsEnvelope)
	if !ok {
		u.logger.Warn("Upstream returned no stats record", zap.String("operation", op))
		return entity.Stats{}, entity.NewUpstreamError(u.Name(), op, 0, errors.New("empty stats record"))
	}
	return normalize.Stats(u.mapping, rec), nil
}

// offsetFromCursor reads an offset cursor. An empty cursor is the first page.
// A cursor that is not a non-negative integer was issued by another upstream and is rejected.
func (u *httpUpstream) offsetFromCursor(op, cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cursor)
	if err != nil || n < 0 {
		u.logger.Debug("Rejecting foreign cursor", zap.String("operation", op), zap.String("cursor", cursor))
		return 0, entity.NewUpstreamError(u.Name(), op, 0, fmt.Errorf("invalid offset cursor %q", cursor))
	}
	return n, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
