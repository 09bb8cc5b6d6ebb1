package domain

// Currency represents a supported currency in the domain.
// Currencies are never deleted, only deactivated.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary Key (e.g., "GNF")
	Name          string `json:"name"`         // e.g., "Guinean Franc"
	Symbol        string `json:"symbol"`       // e.g., "FG"
	Country       string `json:"country"`      // e.g., "Guinea"
	Flag          string `json:"flag"`
	DecimalPlaces int    `json:"decimalPlaces"` // 0, 2 or 3
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// CountryCurrency is the resolver's answer: the default currency for an apparent location.
type CountryCurrency struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Currency    string `json:"currency"`
	Flag        string `json:"flag"`
}

// LocationSignals are the hints a caller can provide about where it is.
type LocationSignals struct {
	IP       string
	Timezone string
}
