// Package geoip implements country lookups for the location resolver.
package geoip

import (
	"context"
	"fmt"
	"net"

	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	"github.com/oschwald/geoip2-golang"
)

// MaxMindLookup reads a local GeoLite2/GeoIP2 City or Country database.
type MaxMindLookup struct {
	db *geoip2.Reader
}

var _ gateways.GeoIPLookup = (*MaxMindLookup)(nil)

// OpenMaxMind opens the database at dbPath. Close it on shutdown.
func OpenMaxMind(dbPath string) (*MaxMindLookup, error) {
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %s: %w", dbPath, err)
	}
	return &MaxMindLookup{db: db}, nil
}

func (m *MaxMindLookup) Lookup(_ context.Context, ip string) (*gateways.GeoLocation, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("invalid ip %q", ip)
	}
	record, err := m.db.Country(parsed)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup failed: %w", err)
	}
	if record.Country.IsoCode == "" {
		return nil, nil
	}
	return &gateways.GeoLocation{
		CountryCode: record.Country.IsoCode,
		CountryName: record.Country.Names["en"],
	}, nil
}

func (m *MaxMindLookup) Close() error {
	return m.db.Close()
}
