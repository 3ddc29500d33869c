package catalog

import "strings"

// ResolvePoster turns a poster reference into an absolute URL. Absolute
// http(s) references are returned verbatim; anything else is treated as a path
// under imageBase, joined with exactly one slash. Blank references yield "".
func ResolvePoster(imageBase, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(ref, "/")
}
