package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Key builds a deterministic cache key from the request method, route path,
// acting identity and query parameters. Query params are sorted by name so
// that parameter order in the URL does not change the key; two identities or
// two filter sets never collide.
func Key(method, path, identity string, query url.Values) string {
	var b strings.Builder
	b.WriteString(method)
	b.WriteByte(':')
	b.WriteString(path)
	b.WriteByte(':')
	b.WriteString(identity)

	if len(query) > 0 {
		names := make([]string, 0, len(query))
		for name := range query {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteByte(':')
		for i, name := range names {
			if i > 0 {
				b.WriteByte('&')
			}
			values := append([]string(nil), query[name]...)
			sort.Strings(values)
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(strings.Join(values, ","))
		}
	}

	return b.String()
}
