package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
)

type transferCoordinator struct {
	BaseService
	simulator portssvc.ConversionSimulatorSvc
	limits    portssvc.TransferLimitSvc
	ledger    gateways.LedgerClient
}

// NewTransferCoordinator creates the service that hands confirmed previews to the ledger.
func NewTransferCoordinator(simulator portssvc.ConversionSimulatorSvc, limits portssvc.TransferLimitSvc, ledger gateways.LedgerClient) portssvc.TransferSvc {
	return &transferCoordinator{
		simulator: simulator,
		limits:    limits,
		ledger:    ledger,
	}
}

// Commit re-derives the preview, rejects it if the rate version or any figure moved,
// checks limits and calls the ledger. The ledger's applied rate and fees must equal
// the confirmed preview, otherwise the result is a TrustViolation.
func (c *transferCoordinator) Commit(ctx context.Context, senderID string, req domain.TransferRequest) (*domain.TransferReceipt, error) {
	if strings.TrimSpace(senderID) == "" {
		return nil, apperrors.ErrAuthenticationRequired
	}
	if strings.TrimSpace(req.ReceiverID) == "" {
		return nil, apperrors.NewValidationError("receiver is required")
	}

	current, err := c.simulator.Simulate(ctx, req.FromCurrency, req.ToCurrency, req.Amount)
	if err != nil {
		return nil, err
	}
	if !current.SameQuote(req.Preview) {
		c.LogInfo(ctx, "Transfer preview is stale",
			slog.String("preview_rate_id", req.Preview.RateID),
			slog.String("current_rate_id", current.RateID))
		return nil, apperrors.ErrQuoteExpired
	}

	check, err := c.limits.CheckUserLimits(ctx, senderID, req.Amount, current.FromCurrency)
	if err != nil {
		return nil, err
	}
	if err := check.Err(); err != nil {
		return nil, err
	}

	if c.ledger == nil {
		return nil, apperrors.New(apperrors.KindLedgerFailure, "ledger is not configured")
	}
	applied, err := c.ledger.PerformTransfer(ctx, domain.LedgerTransfer{
		SenderID:     senderID,
		ReceiverID:   req.ReceiverID,
		Amount:       req.Amount,
		FromCurrency: current.FromCurrency,
		ToCurrency:   current.ToCurrency,
		Description:  req.Description,
		Reference:    req.Reference,
	})
	if err != nil {
		c.LogError(ctx, err, "Ledger rejected transfer", slog.String("reference", req.Reference))
		if apperrors.KindOf(err) == apperrors.KindLedgerFailure {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.KindLedgerFailure, "ledger rejected the transfer", err)
	}

	if !applied.AppliedRate.Equal(current.CurrentRate) || !applied.AppliedFees.Equal(current.TotalFees) {
		c.LogError(ctx, apperrors.ErrTrustViolation, "Ledger applied values differ from preview",
			slog.String("reference", req.Reference),
			slog.String("transaction_id", applied.TransactionID),
			slog.String("preview_rate", current.CurrentRate.String()),
			slog.String("applied_rate", applied.AppliedRate.String()),
			slog.String("preview_fees", current.TotalFees.String()),
			slog.String("applied_fees", applied.AppliedFees.String()))
		return nil, apperrors.Newf(apperrors.KindTrustViolation,
			"ledger transaction %s (reference %s) applied rate %s and fees %s, preview showed rate %s and fees %s",
			applied.TransactionID, req.Reference, applied.AppliedRate, applied.AppliedFees, current.CurrentRate, current.TotalFees)
	}

	c.LogInfo(ctx, "Transfer committed",
		slog.String("reference", req.Reference),
		slog.String("transaction_id", applied.TransactionID))
	return &domain.TransferReceipt{
		Status:           domain.TransferCommitted,
		Reference:        req.Reference,
		TransactionID:    applied.TransactionID,
		AppliedRate:      applied.AppliedRate,
		AppliedFees:      applied.AppliedFees,
		NewSenderBalance: applied.NewSenderBalance,
		Preview:          *current,
	}, nil
}
