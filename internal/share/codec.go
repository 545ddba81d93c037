// Package share encodes share references into playground URLs and back.
//
// A share reference travels in the URL fragment as "<provider>:<value>".
// The fragment never reaches the server on a normal page load, which keeps
// URL-embedded session payloads out of access logs; the /s/ redirect
// endpoint reconstructs the fragment for links that do pass through the
// server.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// ParseURL extracts the share reference embedded in rawURL. A missing or
// malformed reference yields ok=false; it is never an error, the session
// simply starts from defaults.
func ParseURL(rawURL string) (item playground.ShareItem, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return playground.ShareItem{}, false
	}

	frag := u.EscapedFragment()
	provider, escaped, found := strings.Cut(frag, ":")
	if !found || provider == "" || escaped == "" {
		return playground.ShareItem{}, false
	}

	value, err := url.QueryUnescape(escaped)
	if err != nil {
		return playground.ShareItem{}, false
	}

	return playground.ShareItem{
		Provider: playground.ProviderID(provider),
		Value:    value,
	}, true
}

// BuildURL appends the share reference for item to the playground base
// URL. The opaque value is escaped so it round-trips browser URL encoding
// unchanged.
func BuildURL(base string, item playground.ShareItem) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	// Drop any fragment already on the base.
	u.Fragment = ""
	u.RawFragment = ""

	return u.String() + "#" + string(item.Provider) + ":" + url.QueryEscape(item.Value), nil
}
