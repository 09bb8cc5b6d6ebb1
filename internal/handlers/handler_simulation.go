package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// simulationHandler serves transfer previews and limit checks.
type simulationHandler struct {
	simulator   portssvc.ConversionSimulatorSvc
	limits      portssvc.TransferLimitSvc
	currencySvc portssvc.CurrencyReaderSvc
}

func registerSimulationRoutes(rg *gin.RouterGroup, simulator portssvc.ConversionSimulatorSvc, limits portssvc.TransferLimitSvc, currencySvc portssvc.CurrencyReaderSvc) {
	h := &simulationHandler{simulator: simulator, limits: limits, currencySvc: currencySvc}
	rg.POST("/simulations", h.simulate)
	rg.POST("/limits/check", h.checkLimits)
}

// simulate godoc
// @Summary Preview a transfer
// @Description Deterministic for an unchanged rate. Submit the returned object unchanged as the preview of POST /transfers.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   simulation body dto.SimulationRequest true "Transfer to preview"
// @Success 200 {object} dto.SimulationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or pair"
// @Failure 404 {object} dto.ErrorResponse "Currency or rate not found"
// @Security BearerAuth
// @Router /simulations [post]
func (h *simulationHandler) simulate(c *gin.Context) {
	var req dto.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	sim, err := h.simulator.Simulate(ctx, req.FromCurrency, req.ToCurrency, req.Amount)
	if err != nil {
		writeError(c, err, "Simulation failed")
		return
	}

	c.JSON(http.StatusOK, dto.SimulationResponse{
		RateSimulation:     *sim,
		FormattedAmount:    h.currencySvc.FormatAmount(ctx, sim.Amount, sim.FromCurrency),
		FormattedConverted: h.currencySvc.FormatAmount(ctx, sim.ConvertedAmount, sim.ToCurrency),
		FormattedCharged:   h.currencySvc.FormatAmount(ctx, sim.TotalCharged, sim.FromCurrency),
	})
}

// checkLimits godoc
// @Summary Check the caller's transfer allowance
// @Description A failed check is still a 200 with canTransfer=false and the reason kind; remaining amounts are always reported.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   check body dto.LimitCheckRequest true "Amount and currency"
// @Success 200 {object} domain.LimitCheckResult
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "No limit state for the caller"
// @Security BearerAuth
// @Router /limits/check [post]
func (h *simulationHandler) checkLimits(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.LimitCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.limits.CheckUserLimits(c.Request.Context(), userID, req.Amount, req.Currency)
	if err != nil {
		writeError(c, err, "Limit check failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
