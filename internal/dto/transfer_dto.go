package dto

import (
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SimulationRequest asks for a transfer preview.
type SimulationRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required"`
	ToCurrency   string          `json:"toCurrency" binding:"required"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"100000"`
}

// SimulationResponse is the preview plus display strings.
type SimulationResponse struct {
	domain.RateSimulation
	FormattedAmount    string `json:"formattedAmount"`
	FormattedConverted string `json:"formattedConvertedAmount"`
	FormattedCharged   string `json:"formattedTotalCharged"`
}

// LimitCheckRequest checks the caller's allowance for amount in currency.
type LimitCheckRequest struct {
	Currency string          `json:"currency" binding:"required,len=3"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string"`
}

// CreateTransferRequest submits a confirmed preview. Preview must be the object
// returned by POST /simulations, unchanged.
type CreateTransferRequest struct {
	ReceiverID   string                `json:"receiverId" binding:"required"`
	FromCurrency string                `json:"fromCurrency" binding:"required"`
	ToCurrency   string                `json:"toCurrency" binding:"required"`
	Amount       decimal.Decimal       `json:"amount" swaggertype:"string"`
	Description  string                `json:"description" binding:"omitempty,max=256"`
	Reference    string                `json:"reference" binding:"required,max=128"`
	Preview      domain.RateSimulation `json:"preview"`
}

func (r CreateTransferRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		ReceiverID:   r.ReceiverID,
		Amount:       r.Amount,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Description:  r.Description,
		Reference:    r.Reference,
		Preview:      r.Preview,
	}
}
