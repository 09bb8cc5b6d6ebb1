package pgsql

import (
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:      newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo:  newPgxExchangeRateRepository(dbPool),
		TransferLimitRepo: newPgxTransferLimitRepository(dbPool),
	}
}
