package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradingplaces/internal/models"
	"tradingplaces/internal/repository"
)

type ExecutionHandler struct {
	Repo repository.StrategyRepository
}

func (h *ExecutionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/executions")
	group.GET("", h.listExecutions)
}

// @Summary List executed strategies
// @Tags executions
// @Param ticker query string false "filter by ticker"
// @Param side query string false "filter by side (BUY/SELL)"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /api/v1/executions [get]
func (h *ExecutionHandler) listExecutions(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	var ticker *string
	if v := strings.TrimSpace(c.Query("ticker")); v != "" {
		ticker = &v
	}
	var side *models.Side
	if v := strings.ToUpper(strings.TrimSpace(c.Query("side"))); v != "" {
		s := models.Side(v)
		if !s.Valid() {
			Error(c, http.StatusBadRequest, "side must be BUY or SELL", nil)
			return
		}
		side = &s
	}
	params := repository.ListExecutionsParams{
		Ticker: ticker,
		Side:   side,
		Limit:  limit,
		Offset: offset,
	}
	items, err := h.Repo.ListExecutions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountExecutions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}
