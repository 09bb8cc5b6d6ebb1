package mapping

import (
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/models"
)

// ToDomainTransferLimitState converts a limit row to its domain snapshot
func ToDomainTransferLimitState(m models.TransferLimitState) domain.TransferLimitState {
	return domain.TransferLimitState{
		UserID:       m.UserID,
		Currency:     m.CurrencyCode,
		Balance:      m.Balance,
		DailyLimit:   m.DailyLimit,
		MonthlyLimit: m.MonthlyLimit,
		DailyUsed:    m.DailyUsed,
		MonthlyUsed:  m.MonthlyUsed,
	}
}
