package socialite

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// FormatScopes joins scopes with sep. An empty list yields an empty string.
func FormatScopes(scopes []string, sep string) string {
	return strings.Join(scopes, sep)
}

// splitScopes turns a scope string from a token response into a list.
// The result is never nil.
func splitScopes(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	if sep == "" {
		return []string{s}
	}
	parts := strings.Split(s, sep)
	return slices.DeleteFunc(parts, func(p string) bool { return p == "" })
}

// mergeParams overlays src on dst; keys in src win.
func mergeParams(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// encodeQuery renders fields as a query string sorted by key. Unlike
// url.Values.Encode, spaces become %20 rather than '+'.
func encodeQuery(fields map[string]string) string {
	keys := slices.Sorted(maps.Keys(fields))

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(fields[k]))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// appendQuery attaches query to base, respecting a query string base may
// already carry.
func appendQuery(base, query string) string {
	if query == "" {
		return base
	}
	if strings.Contains(base, "?") {
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			return base + query
		}
		return base + "&" + query
	}
	return base + "?" + query
}
