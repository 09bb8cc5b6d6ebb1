package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type countryHandler struct {
	resolver portssvc.CountryResolverSvc
}

func registerCountryRoutes(rg *gin.RouterGroup, resolver portssvc.CountryResolverSvc) {
	h := &countryHandler{resolver: resolver}
	rg.GET("/country-currency", h.resolveCountryCurrency)
}

// resolveCountryCurrency godoc
// @Summary Guess the caller's default currency
// @Description Tries geo-IP then timezone. The result is a hint; resolved=false means no strategy answered.
// @Tags country
// @Produce  json
// @Param   timezone query string false "IANA timezone, also read from X-Timezone"
// @Param   ip query string false "IP to resolve, defaults to the client address"
// @Success 200 {object} dto.CountryCurrencyResponse
// @Security BearerAuth
// @Router /country-currency [get]
func (h *countryHandler) resolveCountryCurrency(c *gin.Context) {
	var q dto.CountryCurrencyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	signals := domain.LocationSignals{IP: q.IP, Timezone: q.Timezone}
	if signals.IP == "" {
		signals.IP = c.ClientIP()
	}
	if signals.Timezone == "" {
		signals.Timezone = strings.TrimSpace(c.GetHeader("X-Timezone"))
	}

	result, _ := h.resolver.ResolveCountryCurrency(c.Request.Context(), signals)
	c.JSON(http.StatusOK, dto.ToCountryCurrencyResponse(result))
}
