package domain

import "github.com/shopspring/decimal"

// TransferStatus is the lifecycle of a transfer request as seen by the engine.
type TransferStatus string

const (
	TransferDraft     TransferStatus = "DRAFT"
	TransferPreviewed TransferStatus = "PREVIEWED"
	TransferConfirmed TransferStatus = "CONFIRMED"
	TransferCommitted TransferStatus = "COMMITTED"
	TransferRejected  TransferStatus = "REJECTED"
)

// TransferRequest is a confirmed preview submitted for commit.
type TransferRequest struct {
	ReceiverID   string
	Amount       decimal.Decimal
	FromCurrency string
	ToCurrency   string
	Description  string
	Reference    string
	Preview      RateSimulation
}

// LedgerTransfer is the payload sent to the external ledger.
type LedgerTransfer struct {
	SenderID     string          `json:"senderId"`
	ReceiverID   string          `json:"receiverId"`
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
}

// LedgerTransferResult is what the ledger reports it applied.
type LedgerTransferResult struct {
	AppliedRate      decimal.Decimal `json:"appliedRate"`
	AppliedFees      decimal.Decimal `json:"appliedFees"`
	NewSenderBalance decimal.Decimal `json:"newSenderBalance"`
	TransactionID    string          `json:"transactionId"`
}

// TransferReceipt is returned by a successful commit.
type TransferReceipt struct {
	Status           TransferStatus  `json:"status"`
	Reference        string          `json:"reference"`
	TransactionID    string          `json:"transactionId"`
	AppliedRate      decimal.Decimal `json:"appliedRate"`
	AppliedFees      decimal.Decimal `json:"appliedFees"`
	NewSenderBalance decimal.Decimal `json:"newSenderBalance"`
	Preview          RateSimulation  `json:"preview"`
}
