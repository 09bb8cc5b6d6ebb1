package dto

import (
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
)

// ListCurrenciesQuery filters GET /currencies. An empty Q returns the full catalog.
type ListCurrenciesQuery struct {
	Q      string `form:"q" binding:"omitempty,max=64"`
	Active bool   `form:"active"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Country       string    `json:"country"`
	Flag          string    `json:"flag"`
	DecimalPlaces int       `json:"decimalPlaces"`
	IsActive      bool      `json:"isActive"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Name:          curr.Name,
		Symbol:        curr.Symbol,
		Country:       curr.Country,
		Flag:          curr.Flag,
		DecimalPlaces: curr.DecimalPlaces,
		IsActive:      curr.IsActive,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain currencies to DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(curr)
	}
	return res
}

// SyncCurrenciesResponse reports a catalog sync.
type SyncCurrenciesResponse struct {
	Synced int `json:"synced"`
}

// CountryCurrencyQuery carries location hints. The IP defaults to the caller's address.
type CountryCurrencyQuery struct {
	Timezone string `form:"timezone" binding:"omitempty,max=64"`
	IP       string `form:"ip" binding:"omitempty,ip"`
}

// CountryCurrencyResponse is the resolver's answer. Resolved is false when no
// strategy produced a country; the client then keeps its own default.
type CountryCurrencyResponse struct {
	Resolved    bool   `json:"resolved"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Flag        string `json:"flag,omitempty"`
}

func ToCountryCurrencyResponse(cc *domain.CountryCurrency) CountryCurrencyResponse {
	if cc == nil {
		return CountryCurrencyResponse{}
	}
	return CountryCurrencyResponse{
		Resolved:    true,
		Country:     cc.Country,
		CountryCode: cc.CountryCode,
		Currency:    cc.Currency,
		Flag:        cc.Flag,
	}
}
