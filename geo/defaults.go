// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import "net/http"

// DefaultProviders returns the chain of free web geolocation services in the
// order they are consulted by default. The providers use the specified HTTP
// client, or http.DefaultClient if nil.
func DefaultProviders(client *http.Client) []Provider {
	return []Provider{
		&HTTPProvider{URL: "https://api.ip.sb/geoip/{ip}", Fields: []string{"country"}, Client: client},
		&HTTPProvider{URL: "https://ipinfo.io/{ip}/country", Format: TextFormat, Client: client},
		&HTTPProvider{URL: "http://ip-api.com/json/{ip}?lang=zh-CN", Fields: []string{"country"}, Client: client},
		&HTTPProvider{URL: "https://ipapi.co/{ip}/country_name/", Format: TextFormat, Client: client},
		&HTTPProvider{URL: "https://ipwhois.app/json/{ip}", Fields: []string{"country"}, Client: client},
		&HTTPProvider{URL: "https://freegeoip.app/json/{ip}", Fields: []string{"country_name"}, Client: client},
		&HTTPProvider{URL: "https://ipgeo-api.hf.space/{ip}", Fields: []string{"country"}, Client: client},
	}
}
