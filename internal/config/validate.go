package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validMatchModes = map[string]bool{
	"first": true, "closest": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Catalog.URL != "" && !isHTTPURL(c.Catalog.URL) {
		errs = append(errs, fmt.Sprintf("catalog.url: must be an http(s) URL, got %q", c.Catalog.URL))
	}
	if c.Kodi.URL != "" && !isHTTPURL(c.Kodi.URL) {
		errs = append(errs, fmt.Sprintf("kodi.url: must be an http(s) URL, got %q", c.Kodi.URL))
	}

	if !validMatchModes[c.Library.Match] {
		errs = append(errs, fmt.Sprintf("library.match: must be one of first, closest; got %q", c.Library.Match))
	}

	if c.Radarr.Enabled {
		if c.Radarr.URL == "" {
			errs = append(errs, "radarr.url: required when radarr is enabled")
		} else if !isHTTPURL(c.Radarr.URL) {
			errs = append(errs, fmt.Sprintf("radarr.url: must be an http(s) URL, got %q", c.Radarr.URL))
		}
		if c.Radarr.APIKey == "" {
			errs = append(errs, "radarr.api_key: required when radarr is enabled")
		}
	}

	return errs
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
