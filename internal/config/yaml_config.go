package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pdfquery/internal/validation"
)

// DefaultSourceURLs are the support-ticket analysis PDFs served when no
// sources file is present.
var DefaultSourceURLs = []string{
	"https://github.com/mishraSakhi/support-tickets-pdf/raw/main/.github/workflows/pdfs/TS015475137_analysis_20250924_135140.pdf",
	"https://github.com/mishraSakhi/support-tickets-pdf/raw/main/.github/workflows/pdfs/TS011853282_analysis_20250923_130509.pdf",
	"https://github.com/mishraSakhi/support-tickets-pdf/raw/main/.github/workflows/pdfs/TS016804688_analysis_20250923_135233.pdf",
	"https://github.com/mishraSakhi/support-tickets-pdf/raw/main/.github/workflows/pdfs/TS020010126_analysis_20250923_141206.pdf",
	"https://github.com/mishraSakhi/support-tickets-pdf/raw/main/.github/workflows/pdfs/TS020228920_analysis_20250923_140851.pdf",
}

// SourcesConfig represents the structure of the sources YAML file.
type SourcesConfig struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig defines one PDF to fetch.
type SourceConfig struct {
	Name string `yaml:"name,omitempty"`
	URL  string `yaml:"url"`
}

// LoadSources loads the sources YAML file at path.
// Falls back to DefaultSourceURLs if the file doesn't exist.
func LoadSources(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSources(), nil
		}
		return nil, err
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultSources returns the built-in source list.
func DefaultSources() *SourcesConfig {
	cfg := &SourcesConfig{Sources: make([]SourceConfig, 0, len(DefaultSourceURLs))}
	for _, u := range DefaultSourceURLs {
		cfg.Sources = append(cfg.Sources, SourceConfig{URL: u})
	}
	return cfg
}

// Validate checks that every source has a fetchable URL.
func (c *SourcesConfig) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	for i, s := range c.Sources {
		if valid, msg := validation.ValidateURL(strings.TrimSpace(s.URL)); !valid {
			return fmt.Errorf("source %d (%s): %s", i+1, s.label(), msg)
		}
	}
	return nil
}

// URLs returns the trimmed source URLs in file order.
func (c *SourcesConfig) URLs() []string {
	if c == nil {
		return nil
	}
	urls := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		urls = append(urls, strings.TrimSpace(s.URL))
	}
	return urls
}

func (s SourceConfig) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}
