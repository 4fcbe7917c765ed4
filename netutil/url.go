package netutil

import (
	"net/url"
	"strings"
)

// NormalizeRegistryURL canonicalizes a registry endpoint for use as a pins
// source or cache key: credentials dropped, scheme and host lowercased,
// default ports and trailing slashes removed, query keys sorted.
func NormalizeRegistryURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.User = nil
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	port := parsed.Port()
	if (parsed.Scheme == "https" && port == "443") ||
		(parsed.Scheme == "http" && port == "80") {
		parsed.Host = parsed.Hostname()
	}

	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	if parsed.RawQuery != "" {
		parsed.RawQuery = parsed.Query().Encode()
	}
	return parsed.String()
}
