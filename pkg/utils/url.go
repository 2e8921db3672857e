package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}

// ResolveEndpoint joins a service base URL and a path. An absolute path
// replaces any path on the base; a relative one is appended to it.
func ResolveEndpoint(baseURL, path string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", fmt.Errorf("service base URL is empty")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing service base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("service base URL %q must include scheme and host", baseURL)
	}
	if path = strings.TrimSpace(path); path == "" {
		return base.String(), nil
	}
	if !strings.HasPrefix(path, "/") && !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return ToAbsoluteURL(base, path)
}
