package services

import (
	"fmt"
	"net/url"
	"strings"
)

// validateImageHost checks a user-supplied image URL against the configured
// host allowlist. Empty URLs pass; an empty allowlist allows any host.
// Storage itself is external, so the URL is the only thing validated.
func validateImageHost(rawURL string, allowedHosts []string) error {
	if rawURL == "" || len(allowedHosts) == 0 {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return fmt.Errorf("validation failed: invalid image url")
	}

	host := strings.ToLower(u.Hostname())
	for _, allowed := range allowedHosts {
		if host == strings.ToLower(allowed) {
			return nil
		}
	}

	return fmt.Errorf("validation failed: image host %s is not allowed", host)
}
