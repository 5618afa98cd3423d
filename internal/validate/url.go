package validate

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// URL validation errors
var (
	ErrInvalidURL       = errors.New("invalid URL format")
	ErrDisallowedScheme = errors.New("URL scheme not allowed")
	ErrSSRFRisk         = errors.New("URL resolves to a private address")
)

const maxURLLength = 2048

// AvatarURL validates a user-supplied avatar URL. HTTPS only, public hosts
// only: these URLs are fetched and re-served by clients, so private and
// loopback targets are rejected outright.
func AvatarURL(urlStr string) (string, error) {
	urlStr = strings.TrimSpace(urlStr)
	if urlStr == "" {
		return "", ErrEmpty
	}
	if len(urlStr) > maxURLLength {
		return "", fmt.Errorf("%w: URL exceeds %d characters", ErrStringTooLong, maxURLLength)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: got %q, only https is allowed", ErrDisallowedScheme, parsed.Scheme)
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return "", fmt.Errorf("%w: missing hostname", ErrInvalidURL)
	}
	if isPrivateHost(hostname) {
		return "", fmt.Errorf("%w: %q", ErrSSRFRisk, hostname)
	}

	return urlStr, nil
}

// isPrivateHost reports whether the hostname is a literal IP in a private,
// loopback, or link-local range, or an obvious local name. DNS resolution is
// deliberately not attempted here; fetchers must re-check after resolving.
func isPrivateHost(hostname string) bool {
	lower := strings.ToLower(hostname)
	if lower == "localhost" || strings.HasSuffix(lower, ".local") || strings.HasSuffix(lower, ".internal") {
		return true
	}

	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}
