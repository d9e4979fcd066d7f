// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// AddressPlaceholder in an HTTPProvider URL template gets replaced by the IP
// address to look up.
const AddressPlaceholder = "{ip}"

// MaxBodySize limits how much of a provider's response body gets read.
const MaxBodySize = 64 * 1024

// UserAgent is sent with all HTTP provider requests.
const UserAgent = "ipgeotag/1.0"

// Format describes the shape of an HTTP provider response body.
type Format string

// Supported response formats.
const (
	JSONFormat Format = "json" // JSON object, label taken from fields.
	TextFormat Format = "text" // plain-text body is the label.
)

// HTTPProvider looks up location labels from a web geolocation service.
type HTTPProvider struct {
	// Label used in log messages; defaults to the URL template host.
	ProviderName string
	// URL template, with AddressPlaceholder where the address goes.
	URL string
	// Response format; defaults to JSONFormat.
	Format Format
	// JSON fields making up the label, in order. Dots separate nested object
	// keys, such as "location.country".
	Fields []string
	// Separator between non-empty field values; defaults to "".
	Join string
	// Forced response charset, such as "gbk", overriding whatever the service
	// claims in its Content-Type header.
	Charset string
	// Client to use instead of http.DefaultClient.
	Client *http.Client
}

var _ Provider = (*HTTPProvider)(nil)

// Name returns the provider name, falling back to the host of the URL
// template.
func (p *HTTPProvider) Name() string {
	if p.ProviderName != "" {
		return p.ProviderName
	}
	if u, err := url.Parse(strings.ReplaceAll(p.URL, AddressPlaceholder, "x")); err == nil && u.Host != "" {
		return u.Host
	}
	return p.URL
}

// Validate checks the provider description for obvious mistakes.
func (p *HTTPProvider) Validate() error {
	if p.URL == "" {
		return fmt.Errorf("provider %s: empty URL template", p.Name())
	}
	if !strings.Contains(p.URL, AddressPlaceholder) {
		return fmt.Errorf("provider %s: URL template lacks %s placeholder",
			p.Name(), AddressPlaceholder)
	}
	switch p.Format {
	case "", JSONFormat:
		if len(p.Fields) == 0 {
			return fmt.Errorf("provider %s: JSON format needs at least one field", p.Name())
		}
	case TextFormat:
	default:
		return fmt.Errorf("provider %s: unsupported format %q", p.Name(), p.Format)
	}
	if p.Charset != "" {
		if enc, _ := charset.Lookup(p.Charset); enc == nil {
			return fmt.Errorf("provider %s: unknown charset %q", p.Name(), p.Charset)
		}
	}
	return nil
}

// Lookup queries the web service for the location of the specified address.
func (p *HTTPProvider) Lookup(ctx context.Context, addr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.ReplaceAll(p.URL, AddressPlaceholder, addr), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := p.decoder(resp)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(body, MaxBodySize))
	if err != nil {
		return "", fmt.Errorf("cannot read response: %w", err)
	}
	if p.Format == TextFormat {
		return strings.TrimSpace(string(data)), nil
	}
	return labelFromJSON(data, p.Fields, p.Join)
}

// decoder returns a reader delivering the response body as UTF-8.
func (p *HTTPProvider) decoder(resp *http.Response) (io.Reader, error) {
	if p.Charset == "" {
		return charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	}
	enc, _ := charset.Lookup(p.Charset)
	if enc == nil {
		return nil, fmt.Errorf("unknown charset %q", p.Charset)
	}
	return transform.NewReader(resp.Body, enc.NewDecoder()), nil
}

// labelFromJSON joins the non-empty string values of the specified fields.
// Missing fields and non-string values are skipped.
func labelFromJSON(data []byte, fields []string, sep string) (string, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("malformed JSON response: %w", err)
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if s := strings.TrimSpace(lookupField(obj, field)); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("response lacks fields %v", fields)
	}
	return strings.Join(parts, sep), nil
}

func lookupField(obj map[string]interface{}, path string) string {
	keys := strings.Split(path, ".")
	for _, key := range keys[:len(keys)-1] {
		nested, ok := obj[key].(map[string]interface{})
		if !ok {
			return ""
		}
		obj = nested
	}
	s, _ := obj[keys[len(keys)-1]].(string)
	return s
}
