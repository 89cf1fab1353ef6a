package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradingplaces/internal/models"
	"tradingplaces/internal/repository"
	"tradingplaces/internal/service"
	"tradingplaces/internal/strategy"
)

type StrategyHandler struct {
	Service *service.StrategyService
	Repo    repository.StrategyRepository
	Logger  *zap.Logger
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/strategies")
	group.POST("", h.registerStrategy)
	group.DELETE("/:id", h.unregisterStrategy)
	group.GET("", h.listStrategies)
	group.GET("/:id", h.getStrategy)
}

type registerStrategyRequest struct {
	Ticker               string          `json:"ticker" binding:"required"`
	Side                 string          `json:"side" binding:"required"`
	PriceMovementPercent decimal.Decimal `json:"price_movement_percent"`
	Quantity             int             `json:"quantity"`
}

// @Summary Register a strategy
// @Tags strategies
// @Accept json
// @Param request body handler.registerStrategyRequest true "strategy"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/v1/strategies [post]
func (h *StrategyHandler) registerStrategy(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req registerStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	item, err := h.Service.Register(c.Request.Context(), service.RegisterStrategyRequest{
		Ticker:               req.Ticker,
		Side:                 models.Side(strings.ToUpper(strings.TrimSpace(req.Side))),
		PriceMovementPercent: req.PriceMovementPercent,
		Quantity:             req.Quantity,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("strategy registration rejected", zap.Error(err))
		}
		Error(c, registerStatus(err), err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Cancel a strategy
// @Tags strategies
// @Param id path string true "strategy id"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/v1/strategies/{id} [delete]
func (h *StrategyHandler) unregisterStrategy(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		Error(c, http.StatusBadRequest, "id required", nil)
		return
	}
	// Unknown ids and store failures share one error channel here; callers
	// only see the message.
	if err := h.Service.Cancel(c.Request.Context(), id); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("strategy cancel failed", zap.String("strategy_id", id), zap.Error(err))
		}
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, map[string]any{"id": strings.ToUpper(id)}, nil)
}

// @Summary List strategies
// @Tags strategies
// @Success 200 {object} map[string]any
// @Router /api/v1/strategies [get]
func (h *StrategyHandler) listStrategies(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListStrategies(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Get a strategy
// @Tags strategies
// @Param id path string true "strategy id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/strategies/{id} [get]
func (h *StrategyHandler) getStrategy(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := strings.ToUpper(strings.TrimSpace(c.Param("id")))
	if id == "" {
		Error(c, http.StatusBadRequest, "id required", nil)
		return
	}
	item, err := h.Repo.GetStrategyByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "strategy not found", nil)
		return
	}
	Ok(c, item, nil)
}

func registerStatus(err error) int {
	var (
		verr *strategy.ValidationError
		derr *strategy.DuplicateError
		perr *strategy.ProviderError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &derr):
		return http.StatusConflict
	case errors.As(err, &perr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
