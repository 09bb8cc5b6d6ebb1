package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_fx_engine/internal/models"
	"github.com/SscSPs/wallet_fx_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransferLimitRepository reads the limit snapshots the ledger maintains.
type PgxTransferLimitRepository struct {
	BaseRepository
}

func newPgxTransferLimitRepository(db *pgxpool.Pool) *PgxTransferLimitRepository {
	return &PgxTransferLimitRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.TransferLimitReader = (*PgxTransferLimitRepository)(nil)

// FindLimitState retrieves the limit snapshot of a user in one currency.
func (r *PgxTransferLimitRepository) FindLimitState(ctx context.Context, userID, currencyCode string) (*domain.TransferLimitState, error) {
	var m models.TransferLimitState
	err := r.Pool.QueryRow(ctx, `
		SELECT user_id, currency_code, balance, daily_limit, monthly_limit, daily_used, monthly_used, updated_at
		FROM transfer_limit_states
		WHERE user_id = $1 AND currency_code = $2`,
		userID, currencyCode,
	).Scan(
		&m.UserID, &m.CurrencyCode, &m.Balance, &m.DailyLimit, &m.MonthlyLimit,
		&m.DailyUsed, &m.MonthlyUsed, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.KindLimitStateNotFound, "no limit state for user %s in %s", userID, currencyCode)
		}
		return nil, apperrors.NewStoreError("failed to find limit state", err)
	}
	d := mapping.ToDomainTransferLimitState(m)
	return &d, nil
}
