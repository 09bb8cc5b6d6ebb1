package repositories

import (
	"context"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
)

// TransferLimitReader gives the engine read-only access to limit snapshots.
// The ledger owns the counters.
type TransferLimitReader interface {
	// FindLimitState returns apperrors.ErrLimitStateNotFound when no snapshot exists.
	FindLimitState(ctx context.Context, userID, currencyCode string) (*domain.TransferLimitState, error)
}
