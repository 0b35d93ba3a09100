package restapi

import (
	"net/http"

	"nft_aggregator/internal/app/port"
	"nft_aggregator/internal/app/service"
	"nft_aggregator/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIError описывает тело ответа при ошибке.
type APIError struct {
	Error string `json:"error"`
}

type pageQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Cursor string `form:"cursor"`
}

type searchQuery struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// NFTHandler обрабатывает HTTP запросы к агрегатору NFT данных.
type NFTHandler struct {
	svc    port.NFTDataService
	logger port.Logger
}

// NewNFTHandler создает новый экземпляр NFTHandler.
func NewNFTHandler(svc port.NFTDataService, logger port.Logger) *NFTHandler {
	return &NFTHandler{svc: svc, logger: logger}
}

// respond writes the result with the headers describing its origin.
func respond[T any](c *gin.Context, res entity.Result[T]) {
	for k, v := range service.ResponseHeaders(res.Source, res.Degraded) {
		c.Header(k, v)
	}
	c.JSON(http.StatusOK, res)
}

func (h *NFTHandler) fail(c *gin.Context, err error) {
	switch {
	case entity.IsNotFound(err):
		c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
	default:
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, APIError{Error: "internal error"})
	}
}

func (h *NFTHandler) badRequest(c *gin.Context, err error) {
	h.logger.Debug("Rejected request parameters", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, APIError{Error: err.Error()})
}

// GetCollections обрабатывает GET /collections.
func (h *NFTHandler) GetCollections(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.svc.GetCollections(c.Request.Context(), entity.CollectionsParams{Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// GetCollection обрабатывает GET /collections/:id.
func (h *NFTHandler) GetCollection(c *gin.Context) {
	res, err := h.svc.GetCollectionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// GetItems обрабатывает GET /collections/:id/items.
func (h *NFTHandler) GetItems(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.svc.GetItems(c.Request.Context(), entity.ItemsParams{
		CollectionID: c.Param("id"),
		Limit:        q.Limit,
		Cursor:       q.Cursor,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// GetTraits обрабатывает GET /collections/:id/traits.
func (h *NFTHandler) GetTraits(c *gin.Context) {
	res, err := h.svc.GetTraits(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// GetStats обрабатывает GET /collections/:id/stats.
func (h *NFTHandler) GetStats(c *gin.Context) {
	res, err := h.svc.GetStats(c.Request.Context(), entity.StatsParams{CollectionID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// GetActivity обрабатывает GET /collections/:id/activity.
func (h *NFTHandler) GetActivity(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.svc.GetActivity(c.Request.Context(), entity.ActivityParams{
		CollectionID: c.Param("id"),
		Limit:        q.Limit,
		Cursor:       q.Cursor,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// GetOverview обрабатывает GET /collections/:id/overview.
func (h *NFTHandler) GetOverview(c *gin.Context) {
	res, err := h.svc.GetCollectionOverview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// GetItem обрабатывает GET /items/:address.
func (h *NFTHandler) GetItem(c *gin.Context) {
	res, err := h.svc.GetItem(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}

// Search обрабатывает GET /search.
func (h *NFTHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.svc.Search(c.Request.Context(), entity.SearchParams{Query: q.Q, Limit: q.Limit})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, res)
}
