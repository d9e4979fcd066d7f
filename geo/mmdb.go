// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// DefaultLanguage is the country name language used by MMDBProvider unless
// told otherwise.
const DefaultLanguage = "zh-CN"

// MMDBProvider looks up country names in an offline MaxMind GeoIP2 or GeoLite2
// database.
type MMDBProvider struct {
	path   string
	lang   string
	reader *geoip2.Reader
}

var _ Provider = (*MMDBProvider)(nil)

// OpenMMDB opens the MaxMind database at the specified path. Country names are
// returned in the specified language, or as ISO country codes when the
// database lacks a name in this language. An empty language defaults to
// DefaultLanguage.
func OpenMMDB(path string, lang string) (*MMDBProvider, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open MaxMind database: %w", err)
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	return &MMDBProvider{
		path:   path,
		lang:   lang,
		reader: reader,
	}, nil
}

// Name returns "mmdb:" followed by the database path.
func (p *MMDBProvider) Name() string { return "mmdb:" + p.path }

// Lookup returns the country name of the specified address.
func (p *MMDBProvider) Lookup(_ context.Context, addr string) (string, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return "", fmt.Errorf("invalid IP address %q", addr)
	}
	rec, err := p.reader.Country(ip)
	if err != nil {
		return "", err
	}
	if name := rec.Country.Names[p.lang]; name != "" {
		return name, nil
	}
	if rec.Country.IsoCode != "" {
		return rec.Country.IsoCode, nil
	}
	return "", ErrNoLabel
}

// Close releases the database.
func (p *MMDBProvider) Close() error {
	return p.reader.Close()
}
