// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/siemens/ipgeotag/geo"
	"github.com/siemens/ipgeotag/port"
	"github.com/siemens/ipgeotag/sink"
	"github.com/siemens/ipgeotag/types"

	"gopkg.in/yaml.v3"
)

// Allowed range of concurrent work units.
const (
	MinWorkers     = 1
	MaxWorkers     = 100
	DefaultWorkers = 20
)

// Config is the complete configuration of a run.
type Config struct {
	Workers    int    `yaml:"workers"`
	Unknown    string `yaml:"unknown"`
	HonorTags  bool   `yaml:"honor_tags"`
	FailedPath string `yaml:"failed"`
	Port       Port   `yaml:"port"`
	Geo        Geo    `yaml:"geo"`
	Jobs       []Job  `yaml:"jobs"`
}

// Port configures the port resolution strategy.
type Port struct {
	Strategy string        `yaml:"strategy"`
	Port     int           `yaml:"port"`
	Ports    []int         `yaml:"ports"`
	Timeout  time.Duration `yaml:"timeout"`
	Seed     int64         `yaml:"seed"`
	SOCKS5   string        `yaml:"socks5"`
	Netns    string        `yaml:"netns"`
}

// Geo configures location resolution.
type Geo struct {
	Timeout   time.Duration `yaml:"timeout"`
	Cache     bool          `yaml:"cache"`
	Providers []Provider    `yaml:"providers"`
}

// Kinds of providers.
const (
	HTTPProviderKind = "http"
	DNSProviderKind  = "dns"
	MMDBProviderKind = "mmdb"
)

// Provider describes a single geolocation provider. Which fields apply
// depends on the kind of provider.
type Provider struct {
	Kind    string   `yaml:"kind"`
	Name    string   `yaml:"name,omitempty"`
	URL     string   `yaml:"url,omitempty"`     // http
	Format  string   `yaml:"format,omitempty"`  // http
	Fields  []string `yaml:"fields,omitempty"`  // http
	Join    string   `yaml:"join,omitempty"`    // http
	Charset string   `yaml:"charset,omitempty"` // http
	Server  string   `yaml:"server,omitempty"`  // dns
	Path    string   `yaml:"path,omitempty"`    // mmdb
	Lang    string   `yaml:"lang,omitempty"`    // mmdb
}

// Job is a single input listing to be turned into an output file.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Default returns the default configuration.
func Default() Config {
	cfg := Config{
		Workers:    DefaultWorkers,
		Unknown:    types.DefaultUnknownLocation,
		HonorTags:  true,
		FailedPath: sink.DefaultFailedPath,
		Port: Port{
			Strategy: string(port.FixedStrategy),
			Port:     port.DefaultPort,
			Timeout:  port.DefaultProbeTimeout,
		},
		Geo: Geo{
			Timeout: geo.DefaultTimeout,
			Cache:   true,
		},
		Jobs: []Job{
			{Input: "https://ipdb.api.030101.xyz/?type=bestproxy&country=true", Output: "bestproxy.txt"},
			{Input: "https://ipdb.api.030101.xyz/?type=bestcf", Output: "bestcf.txt"},
			{Input: "https://raw.githubusercontent.com/hubbylei/bestcf/refs/heads/main/bestproxy.txt", Output: "best.txt"},
			{Input: "https://raw.githubusercontent.com/hubbylei/bestcf/refs/heads/main/bestcf.txt", Output: "cf.txt"},
		},
	}
	for _, p := range geo.DefaultProviders(nil) {
		hp := p.(*geo.HTTPProvider)
		cfg.Geo.Providers = append(cfg.Geo.Providers, Provider{
			Kind:   HTTPProviderKind,
			URL:    hp.URL,
			Format: string(hp.Format),
			Fields: hp.Fields,
		})
	}
	return cfg
}

// Load returns the configuration from the specified YAML file, on top of the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read configuration: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Parse returns the configuration from the specified YAML data, on top of the
// defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors, without touching the network.
func (c Config) Validate() error {
	if c.Workers < MinWorkers || c.Workers > MaxWorkers {
		return fmt.Errorf("workers out of range [%d..%d]", MinWorkers, MaxWorkers)
	}
	if strings.TrimSpace(c.Unknown) == "" {
		return fmt.Errorf("unknown location label must not be empty")
	}
	if _, err := port.ParseStrategy(c.Port.Strategy); err != nil {
		return err
	}
	if c.Geo.Timeout <= 0 {
		return fmt.Errorf("geo timeout must be positive")
	}
	if len(c.Geo.Providers) == 0 {
		return fmt.Errorf("no geolocation providers")
	}
	for idx, p := range c.Geo.Providers {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("provider #%d: %w", idx+1, err)
		}
	}
	for idx, job := range c.Jobs {
		if job.Input == "" || job.Output == "" {
			return fmt.Errorf("job #%d: needs both input and output", idx+1)
		}
	}
	return nil
}

// PortConfig returns the port resolver configuration.
func (c Config) PortConfig() (port.Config, error) {
	strategy, err := port.ParseStrategy(c.Port.Strategy)
	if err != nil {
		return port.Config{}, err
	}
	return port.Config{
		Strategy: strategy,
		Port:     c.Port.Port,
		Ports:    c.Port.Ports,
		Timeout:  c.Port.Timeout,
		Seed:     c.Port.Seed,
		SOCKS5:   c.Port.SOCKS5,
		NetnsRef: c.Port.Netns,
	}, nil
}

// Validate checks a single provider description.
func (p Provider) Validate() error {
	switch p.Kind {
	case HTTPProviderKind:
		return p.httpProvider(nil).Validate()
	case DNSProviderKind:
		return nil
	case MMDBProviderKind:
		if p.Path == "" {
			return fmt.Errorf("mmdb provider needs a database path")
		}
		return nil
	}
	return fmt.Errorf("unknown provider kind %q", p.Kind)
}

func (p Provider) httpProvider(client *http.Client) *geo.HTTPProvider {
	return &geo.HTTPProvider{
		ProviderName: p.Name,
		URL:          p.URL,
		Format:       geo.Format(p.Format),
		Fields:       p.Fields,
		Join:         p.Join,
		Charset:      p.Charset,
		Client:       client,
	}
}

// Providers returns the configured provider chain, with the HTTP providers
// using the specified client (nil for the default client). Callers must call
// the returned close function when done in order to release any opened
// MaxMind databases.
func (c Config) Providers(client *http.Client) ([]geo.Provider, func(), error) {
	providers := make([]geo.Provider, 0, len(c.Geo.Providers))
	dbs := []*geo.MMDBProvider{}
	closeAll := func() {
		for _, db := range dbs {
			_ = db.Close()
		}
	}
	for idx, p := range c.Geo.Providers {
		if err := p.Validate(); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("provider #%d: %w", idx+1, err)
		}
		switch p.Kind {
		case HTTPProviderKind:
			providers = append(providers, p.httpProvider(client))
		case DNSProviderKind:
			providers = append(providers, &geo.CymruProvider{Server: p.Server})
		case MMDBProviderKind:
			db, err := geo.OpenMMDB(p.Path, p.Lang)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("provider #%d: %w", idx+1, err)
			}
			dbs = append(dbs, db)
			providers = append(providers, db)
		}
	}
	return providers, closeAll, nil
}

// ParseJob parses an “INPUT=OUTPUT” job specification. As inputs might be
// URLs with query parameters, the output is whatever follows the last “=”.
func ParseJob(spec string) (Job, error) {
	idx := strings.LastIndex(spec, "=")
	if idx < 0 {
		return Job{}, fmt.Errorf("invalid job %q, expected INPUT=OUTPUT", spec)
	}
	job := Job{
		Input:  strings.TrimSpace(spec[:idx]),
		Output: strings.TrimSpace(spec[idx+1:]),
	}
	if job.Input == "" || job.Output == "" {
		return Job{}, fmt.Errorf("invalid job %q, expected INPUT=OUTPUT", spec)
	}
	return job, nil
}
