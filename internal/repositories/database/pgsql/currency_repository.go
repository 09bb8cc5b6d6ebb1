package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_fx_engine/internal/models"
	"github.com/SscSPs/wallet_fx_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_code, name, symbol, country, flag, decimal_places, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.CurrencyCode,
		&c.Name,
		&c.Symbol,
		&c.Country,
		&c.Flag,
		&c.DecimalPlaces,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveCurrency inserts a currency or refreshes its metadata. The active flag of an
// existing row is left alone so a catalog sync never re-activates a currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (currency_code) DO UPDATE SET
			name = EXCLUDED.name,
			symbol = EXCLUDED.symbol,
			country = EXCLUDED.country,
			flag = EXCLUDED.flag,
			decimal_places = EXCLUDED.decimal_places,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyCode, m.Name, m.Symbol, m.Country, m.Flag, m.DecimalPlaces, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to save currency "+m.CurrencyCode, err)
	}
	return nil
}

// DeactivateCurrency clears the active flag.
func (r *PgxCurrencyRepository) DeactivateCurrency(ctx context.Context, currencyCode, actor string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE currencies
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE currency_code = $1`,
		currencyCode, at, actor,
	)
	if err != nil {
		return apperrors.NewStoreError("failed to deactivate currency "+currencyCode, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.KindCurrencyNotFound, "currency %s not found", currencyCode)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+currencyColumns+` FROM currencies WHERE currency_code = $1`, currencyCode)
	m, err := scanCurrency(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.KindCurrencyNotFound, "currency %s not found", currencyCode)
		}
		return nil, apperrors.NewStoreError("failed to find currency "+currencyCode, err)
	}
	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies ORDER BY currency_code`)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query currencies", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to scan currencies", err)
	}
	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}
