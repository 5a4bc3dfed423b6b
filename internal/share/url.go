package share

import (
	"net/url"
	"strings"
)

// URLQueryKey is the query parameter carrying the token in share URLs.
const URLQueryKey = "share"

// URL builds the public share URL for a token against the configured base
// URL.
func URL(baseURL, token string) string {
	base := strings.TrimRight(baseURL, "/")
	return base + "/shared?" + URLQueryKey + "=" + url.QueryEscape(token)
}
