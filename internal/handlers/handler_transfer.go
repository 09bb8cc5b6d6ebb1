package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/dto"
	"github.com/SscSPs/wallet_fx_engine/internal/middleware"
	"github.com/SscSPs/wallet_fx_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvc
	posthog         *utils.PosthogClientWrapper
}

func registerTransferRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvc, ph *utils.PosthogClientWrapper) {
	h := &transferHandler{transferService: ts, posthog: ph}
	rg.POST("/transfers", h.commitTransfer)
}

// commitTransfer godoc
// @Summary Commit a confirmed preview
// @Description Re-simulates, rejects stale previews with QuoteExpired, checks limits, then calls the ledger.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Confirmed transfer"
// @Success 201 {object} domain.TransferReceipt
// @Failure 409 {object} dto.ErrorResponse "Preview is stale"
// @Failure 422 {object} dto.ErrorResponse "Limit exceeded or insufficient balance"
// @Failure 502 {object} dto.ErrorResponse "Ledger failure or trust violation"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) commitTransfer(c *gin.Context) {
	senderID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	receipt, err := h.transferService.Commit(c.Request.Context(), senderID, req.ToDomain())
	if err != nil {
		writeError(c, err, "Transfer rejected")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transfer committed",
		slog.String("reference", receipt.Reference),
		slog.String("transaction_id", receipt.TransactionID))
	middleware.PosthogEvent(c, h.posthog, "fx_transfer_committed", map[string]any{
		"from": receipt.Preview.FromCurrency,
		"to":   receipt.Preview.ToCurrency,
	})
	c.JSON(http.StatusCreated, receipt)
}
