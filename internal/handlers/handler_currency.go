package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/dto"
	"github.com/SscSPs/wallet_fx_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
		currencies.POST("/sync", middleware.RequireAdmin(), h.syncCurrencies)
		currencies.POST("/:code/deactivate", middleware.RequireAdmin(), h.deactivateCurrency)
	}
}

// listCurrencies godoc
// @Summary List or search currencies
// @Description Case-insensitive substring search over name, code and country. An empty query returns the whole catalog.
// @Tags currencies
// @Produce  json
// @Param   q query string false "Search text"
// @Param   active query bool false "Only active currencies"
// @Success 200 {array} dto.CurrencyResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	var q dto.ListCurrenciesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	currencies, err := h.currencyService.SearchCurrencies(c.Request.Context(), q.Q)
	if err != nil {
		writeError(c, err, "Failed to list currencies")
		return
	}

	res := dto.ToListCurrencyResponse(currencies)
	if q.Active {
		filtered := res[:0]
		for _, cur := range res {
			if cur.IsActive {
				filtered = append(filtered, cur)
			}
		}
		res = filtered
	}
	c.JSON(http.StatusOK, res)
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Description Retrieves details for a specific currency by its 3-letter code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err, "Failed to get currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(*currency))
}

// syncCurrencies godoc
// @Summary Sync the reference catalog into the store
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.SyncCurrenciesResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /currencies/sync [post]
func (h *currencyHandler) syncCurrencies(c *gin.Context) {
	actor, ok := callerID(c)
	if !ok {
		return
	}
	n, err := h.currencyService.SyncCatalog(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err, "Failed to sync currency catalog")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency catalog synced", slog.Int("count", n))
	c.JSON(http.StatusOK, dto.SyncCurrenciesResponse{Synced: n})
}

// deactivateCurrency godoc
// @Summary Deactivate a currency
// @Description Currencies are never deleted, only deactivated.
// @Tags currencies
// @Param   code path string true "Currency Code"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /currencies/{code}/deactivate [post]
func (h *currencyHandler) deactivateCurrency(c *gin.Context) {
	actor, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.currencyService.DeactivateCurrency(c.Request.Context(), c.Param("code"), actor); err != nil {
		writeError(c, err, "Failed to deactivate currency")
		return
	}
	c.Status(http.StatusNoContent)
}
