package dto

import "github.com/SscSPs/wallet_fx_engine/internal/apperrors"

// ErrorBody is the error payload rendered for every failed request.
type ErrorBody struct {
	Kind    apperrors.Kind `json:"kind" swaggertype:"string"`
	Message string         `json:"message"`
}

// ErrorResponse wraps ErrorBody as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
