package models

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyCode  string `db:"currency_code"`
	Name          string `db:"name"`
	Symbol        string `db:"symbol"`
	Country       string `db:"country"`
	Flag          string `db:"flag"`
	DecimalPlaces int    `db:"decimal_places"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}
