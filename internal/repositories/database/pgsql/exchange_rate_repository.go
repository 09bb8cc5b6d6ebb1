package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_fx_engine/internal/models"
	"github.com/SscSPs/wallet_fx_engine/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the exchange rate ports using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const rateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, source, is_active, updated_by, updated_at`

const historyColumns = `history_id, from_currency_code, to_currency_code, old_rate, new_rate, source, updated_by, updated_at, reason`

// sequence is a bigserial, so it is read back but never inserted.
const historySelectColumns = historyColumns + `, sequence`

func scanRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate,
		&m.Source, &m.IsActive, &m.UpdatedBy, &m.UpdatedAt,
	)
	return m, err
}

func scanHistory(row pgx.Row) (models.ExchangeRateHistory, error) {
	var m models.ExchangeRateHistory
	err := row.Scan(
		&m.HistoryID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.OldRate, &m.NewRate,
		&m.Source, &m.UpdatedBy, &m.UpdatedAt, &m.Reason, &m.Sequence,
	)
	return m, err
}

// FindActiveRate retrieves the active rate of an ordered pair.
func (r *PgxExchangeRateRepository) FindActiveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_active`,
		fromCurrencyCode, toCurrencyCode,
	)
	m, err := scanRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.KindRateNotFound, "no active rate for %s to %s", fromCurrencyCode, toCurrencyCode)
		}
		return nil, apperrors.NewStoreError("failed to find exchange rate", err)
	}
	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// ListActiveRates retrieves every active rate ordered by pair.
func (r *PgxExchangeRateRepository) ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE is_active
		ORDER BY from_currency_code, to_currency_code`)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list exchange rates", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanRate(row)
	})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan exchange rates", err)
	}

	rates := make([]domain.ExchangeRate, len(modelRates))
	for i, m := range modelRates {
		rates[i] = mapping.ToDomainExchangeRate(m)
	}
	return rates, nil
}

// ListHistory retrieves history entries newest first, optionally for one pair and after a cursor.
func (r *PgxExchangeRateRepository) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRateHistoryEntry, error) {
	query := `SELECT ` + historySelectColumns + ` FROM exchange_rate_history WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.FromCurrencyCode != "" {
		query += fmt.Sprintf(" AND from_currency_code = $%d", argNum)
		args = append(args, filter.FromCurrencyCode)
		argNum++
	}
	if filter.ToCurrencyCode != "" {
		query += fmt.Sprintf(" AND to_currency_code = $%d", argNum)
		args = append(args, filter.ToCurrencyCode)
		argNum++
	}
	if filter.BeforeUpdatedAt != nil {
		query += fmt.Sprintf(" AND (updated_at, sequence) < ($%d, $%d)", argNum, argNum+1)
		args = append(args, *filter.BeforeUpdatedAt, filter.BeforeSequence)
		argNum += 2
	}
	query += " ORDER BY updated_at DESC, sequence DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list rate history", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRateHistory, error) {
		return scanHistory(row)
	})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan rate history", err)
	}

	entries := make([]domain.ExchangeRateHistoryEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainExchangeRateHistory(m)
	}
	return entries, nil
}

// ReplaceActiveRate swaps the active rate of a pair and records the change in one
// transaction. A transaction-scoped advisory lock on the pair serialises concurrent
// overrides, including the first one for a pair that has no row to lock yet.
func (r *PgxExchangeRateRepository) ReplaceActiveRate(ctx context.Context, o domain.RateOverride) (*domain.RateOverrideResult, error) {
	var result *domain.RateOverrideResult

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || '/' || $2))`,
			o.FromCurrencyCode, o.ToCurrencyCode); err != nil {
			return apperrors.NewStoreError("failed to lock currency pair", err)
		}

		current, err := scanRate(tx.QueryRow(ctx, `
			SELECT `+rateColumns+`
			FROM exchange_rates
			WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_active
			FOR UPDATE`,
			o.FromCurrencyCode, o.ToCurrencyCode,
		))
		hasCurrent := true
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewStoreError("failed to read active rate", err)
			}
			hasCurrent = false
		}

		if hasCurrent {
			if _, err := tx.Exec(ctx, `UPDATE exchange_rates SET is_active = FALSE WHERE exchange_rate_id = $1`,
				current.ExchangeRateID); err != nil {
				return apperrors.NewStoreError("failed to deactivate previous rate", err)
			}
		}

		next := models.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: o.FromCurrencyCode,
			ToCurrencyCode:   o.ToCurrencyCode,
			Rate:             o.Rate,
			Source:           string(o.Source),
			IsActive:         true,
			UpdatedBy:        o.Actor,
			UpdatedAt:        o.At,
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO exchange_rates (`+rateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			next.ExchangeRateID, next.FromCurrencyCode, next.ToCurrencyCode, next.Rate,
			next.Source, next.IsActive, next.UpdatedBy, next.UpdatedAt,
		); err != nil {
			return apperrors.NewStoreError("failed to insert exchange rate", err)
		}

		result = &domain.RateOverrideResult{Rate: mapping.ToDomainExchangeRate(next)}
		if hasCurrent {
			old := current.Rate
			result.OldRate = &old
		}

		hist := mapping.ToModelExchangeRateHistory(domain.ExchangeRateHistoryEntry{
			HistoryID:        uuid.NewString(),
			FromCurrencyCode: o.FromCurrencyCode,
			ToCurrencyCode:   o.ToCurrencyCode,
			OldRate:          result.OldRate,
			NewRate:          o.Rate,
			Source:           o.Source,
			UpdatedBy:        o.Actor,
			UpdatedAt:        o.At,
			Reason:           o.Reason,
		})
		if _, err := tx.Exec(ctx, `
			INSERT INTO exchange_rate_history (`+historyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			hist.HistoryID, hist.FromCurrencyCode, hist.ToCurrencyCode, hist.OldRate, hist.NewRate,
			hist.Source, hist.UpdatedBy, hist.UpdatedAt, hist.Reason,
		); err != nil {
			return apperrors.NewStoreError("failed to append rate history", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
