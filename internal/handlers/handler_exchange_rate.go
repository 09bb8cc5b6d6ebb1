package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/core/services"
	"github.com/SscSPs/wallet_fx_engine/internal/dto"
	"github.com/SscSPs/wallet_fx_engine/internal/middleware"
	"github.com/SscSPs/wallet_fx_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
	syncService portssvc.RateSyncSvc
	posthog     *utils.PosthogClientWrapper
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade, sync portssvc.RateSyncSvc, ph *utils.PosthogClientWrapper) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
		syncService: sync,
		posthog:     ph,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rs portssvc.ExchangeRateSvcFacade, sync portssvc.RateSyncSvc, ph *utils.PosthogClientWrapper) {
	h := newExchangeRateHandler(rs, sync, ph)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listActiveRates)
		rates.GET("/history", h.getHistory)
		rates.GET("/statistics", h.getStatistics)
		rates.GET("/:from/:to", h.getActiveRate)
		rates.PUT("/:from/:to", middleware.RequireAdmin(), h.setRate)
		rates.POST("/batch", middleware.RequireAdmin(), h.setManyRates)
		rates.POST("/sync", middleware.RequireAdmin(), h.syncRates)
	}
}

// listActiveRates godoc
// @Summary List active exchange rates
// @Tags exchange-rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listActiveRates(c *gin.Context) {
	rates, err := h.rateService.ListActiveRates(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to list exchange rates")
		return
	}
	res := make([]dto.ExchangeRateResponse, len(rates))
	for i, r := range rates {
		res[i] = dto.ToExchangeRateResponse(r, services.FormatRate(r.Rate, r.FromCurrencyCode, r.ToCurrencyCode))
	}
	c.JSON(http.StatusOK, res)
}

// getActiveRate godoc
// @Summary Get the active rate of a currency pair
// @Description Returns RateNotFound when the pair has no active rate. No default rate is ever substituted.
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "Source currency"
// @Param   to path string true "Target currency"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid pair"
// @Failure 404 {object} dto.ErrorResponse "Rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getActiveRate(c *gin.Context) {
	rate, err := h.rateService.GetActiveRate(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		writeError(c, err, "Failed to get exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(*rate, services.FormatRate(rate.Rate, rate.FromCurrencyCode, rate.ToCurrencyCode)))
}

// setRate godoc
// @Summary Override the active rate of a currency pair
// @Description Deactivates the current rate, activates the new one and records history atomically.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   from path string true "Source currency"
// @Param   to path string true "Target currency"
// @Param   rate body dto.SetRateRequest true "New rate"
// @Success 200 {object} dto.SetRateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [put]
func (h *exchangeRateHandler) setRate(c *gin.Context) {
	actor, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.rateService.SetRate(c.Request.Context(), c.Param("from"), c.Param("to"), req.Rate, actor, req.Reason)
	if err != nil {
		writeError(c, err, "Failed to set exchange rate")
		return
	}

	res := dto.SetRateResponse{
		OldRate: result.OldRate,
		Rate:    dto.ToExchangeRateResponse(result.Rate, services.FormatRate(result.Rate.Rate, result.Rate.FromCurrencyCode, result.Rate.ToCurrencyCode)),
	}
	if result.OldRate != nil {
		change := services.CalculateRateChange(*result.OldRate, result.Rate.Rate)
		res.Change = &dto.RateChangeResponse{Percentage: change.Percentage, Direction: change.Direction}
	}

	middleware.PosthogEvent(c, h.posthog, "fx_rate_overridden", map[string]any{
		"from": result.Rate.FromCurrencyCode,
		"to":   result.Rate.ToCurrencyCode,
	})
	c.JSON(http.StatusOK, res)
}

// setManyRates godoc
// @Summary Override many rates
// @Description Items succeed or fail independently; the response reports each one.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   updates body dto.BatchRateRequest true "Rate updates"
// @Success 200 {object} domain.BatchRateUpdateResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/batch [post]
func (h *exchangeRateHandler) setManyRates(c *gin.Context) {
	actor, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.BatchRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.rateService.SetManyRates(c.Request.Context(), req.ToDomainRateUpdates(), actor, req.Reason)
	if err != nil {
		writeError(c, err, "Failed to apply rate batch")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Rate batch applied",
		slog.Int("requested", len(req.Updates)), slog.Int("updated", result.UpdatedCount))
	c.JSON(http.StatusOK, result)
}

// getHistory godoc
// @Summary Rate override history
// @Description Newest first. Pass nextPageToken back as pageToken for the next page.
// @Tags exchange-rates
// @Produce  json
// @Param   from query string false "Source currency"
// @Param   to query string false "Target currency"
// @Param   limit query int false "Page size (default 50, max 500)"
// @Param   pageToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/history [get]
func (h *exchangeRateHandler) getHistory(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	entries, next, err := h.rateService.GetHistory(c.Request.Context(), q.From, q.To, q.Limit, q.PageToken)
	if err != nil {
		writeError(c, err, "Failed to get rate history")
		return
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{Entries: entries, NextPageToken: next})
}

// getStatistics godoc
// @Summary Statistics over the active rate table
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} domain.RateStatistics
// @Security BearerAuth
// @Router /exchange-rates/statistics [get]
func (h *exchangeRateHandler) getStatistics(c *gin.Context) {
	stats, err := h.rateService.GetRateStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to compute rate statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// syncRates godoc
// @Summary Refresh rates from the configured providers
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} domain.RateSyncReport
// @Failure 502 {object} dto.ErrorResponse "Every provider failed"
// @Security BearerAuth
// @Router /exchange-rates/sync [post]
func (h *exchangeRateHandler) syncRates(c *gin.Context) {
	report, err := h.syncService.SyncRates(c.Request.Context())
	if err != nil {
		writeError(c, err, "Rate sync failed")
		return
	}
	c.JSON(http.StatusOK, report)
}
