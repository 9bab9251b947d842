package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ScraperFile is the optional YAML overlay named by SCRAPER_CONFIG.
type ScraperFile struct {
	Zones      []Zone    `yaml:"zones"`
	UserAgents []string  `yaml:"user_agents"`
	Selectors  Selectors `yaml:"selectors"`
}

// ApplyScraperFile overlays the non-empty sections of the YAML file at path.
// Individual selectors left blank keep their current value.
func (c *Config) ApplyScraperFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read scraper file %q: %w", path, err)
	}

	var f ScraperFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("config: parse scraper file %q: %w", path, err)
	}

	if len(f.Zones) > 0 {
		seen := make(map[string]struct{}, len(f.Zones))
		for _, z := range f.Zones {
			if z.Name == "" || z.Path == "" {
				return fmt.Errorf("config: zone entry in %q needs both name and path", path)
			}
			if _, dup := seen[z.Name]; dup {
				return fmt.Errorf("config: duplicate zone %q in %q", z.Name, path)
			}
			seen[z.Name] = struct{}{}
		}
		c.Zones = f.Zones
	}
	if len(f.UserAgents) > 0 {
		c.UserAgents = f.UserAgents
	}

	s := f.Selectors
	if s.Listing != "" {
		c.Selectors.Listing = s.Listing
	}
	if s.Price != "" {
		c.Selectors.Price = s.Price
	}
	if s.Detail != "" {
		c.Selectors.Detail = s.Detail
	}
	if s.Link != "" {
		c.Selectors.Link = s.Link
	}
	if s.AreaMarker != "" {
		c.Selectors.AreaMarker = s.AreaMarker
	}

	return nil
}
