// Package refdata holds the versioned reference tables the engine is built on:
// the currency catalog, the country to currency table, the timezone to country
// table and the static fallback rates. Tables are loaded once and passed to
// constructors; nothing here is package-level mutable state.
package refdata

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// CurrencyEntry is one currency as written in the catalog file.
type CurrencyEntry struct {
	Code          string `yaml:"code" validate:"required,len=3,uppercase"`
	Name          string `yaml:"name" validate:"required"`
	Symbol        string `yaml:"symbol" validate:"required"`
	Country       string `yaml:"country" validate:"required"`
	Flag          string `yaml:"flag"`
	DecimalPlaces int    `yaml:"decimalPlaces" validate:"oneof=0 2 3"`
	IsActive      bool   `yaml:"isActive"`
}

// FallbackRates are static rates quoted against Base.
type FallbackRates struct {
	Base  string            `yaml:"base" validate:"omitempty,len=3"`
	Rates map[string]string `yaml:"rates" validate:"dive,keys,len=3,endkeys,numeric"`
}

// Catalog is the full reference data set.
type Catalog struct {
	Version         string            `yaml:"version" validate:"required"`
	Currencies      []CurrencyEntry   `yaml:"currencies" validate:"required,min=1,dive"`
	CountryCurrency map[string]string `yaml:"countryCurrency" validate:"dive,keys,len=2,endkeys,len=3"`
	CountryNames    map[string]string `yaml:"countryNames"`
	TimezoneCountry map[string]string `yaml:"timezoneCountry" validate:"dive,len=2"`
	FallbackRates   FallbackRates     `yaml:"fallbackRates"`

	byCode map[string]int
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// MustDefault is Default for tests and static wiring.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads the catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode reference catalog: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid reference catalog: %w", err)
	}
	c.byCode = make(map[string]int, len(c.Currencies))
	for i, entry := range c.Currencies {
		if _, dup := c.byCode[entry.Code]; dup {
			return nil, fmt.Errorf("invalid reference catalog: duplicate currency %s", entry.Code)
		}
		c.byCode[entry.Code] = i
	}
	for country, code := range c.CountryCurrency {
		if _, ok := c.byCode[code]; !ok {
			return nil, fmt.Errorf("invalid reference catalog: country %s maps to unknown currency %s", country, code)
		}
	}
	for code := range c.FallbackRates.Rates {
		if _, ok := c.byCode[code]; !ok {
			return nil, fmt.Errorf("invalid reference catalog: fallback rate for unknown currency %s", code)
		}
	}
	return &c, nil
}

// DomainCurrencies returns the catalog as domain currencies, in file order.
func (c *Catalog) DomainCurrencies() []domain.Currency {
	out := make([]domain.Currency, len(c.Currencies))
	for i, e := range c.Currencies {
		out[i] = e.toDomain()
	}
	return out
}

// Currency looks up a catalog entry by code.
func (c *Catalog) Currency(code string) (domain.Currency, bool) {
	i, ok := c.byCode[strings.ToUpper(code)]
	if !ok {
		return domain.Currency{}, false
	}
	return c.Currencies[i].toDomain(), true
}

// CurrencyForCountry returns the default currency for an ISO 3166 alpha-2 code.
func (c *Catalog) CurrencyForCountry(countryCode string) (string, bool) {
	code, ok := c.CountryCurrency[strings.ToUpper(countryCode)]
	return code, ok
}

// CountryForTimezone maps an IANA timezone name to a country code.
func (c *Catalog) CountryForTimezone(tz string) (string, bool) {
	code, ok := c.TimezoneCountry[tz]
	return code, ok
}

// CountryName returns the display name of a country code, or the code itself.
func (c *Catalog) CountryName(countryCode string) string {
	if name, ok := c.CountryNames[strings.ToUpper(countryCode)]; ok {
		return name
	}
	return countryCode
}

// Fallback returns the static rates quoted against the fallback base currency.
func (c *Catalog) Fallback() (string, map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal, len(c.FallbackRates.Rates))
	for code, raw := range c.FallbackRates.Rates {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return "", nil, fmt.Errorf("invalid fallback rate for %s: %w", code, err)
		}
		rates[code] = d
	}
	return c.FallbackRates.Base, rates, nil
}

func (e CurrencyEntry) toDomain() domain.Currency {
	return domain.Currency{
		CurrencyCode:  e.Code,
		Name:          e.Name,
		Symbol:        e.Symbol,
		Country:       e.Country,
		Flag:          e.Flag,
		DecimalPlaces: e.DecimalPlaces,
		IsActive:      e.IsActive,
	}
}
