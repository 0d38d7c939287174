package media

import (
	"regexp"
	"strings"
)

// schemePattern matches an RFC 3986 scheme prefix, e.g. "https:" or "blob:".
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

const transientScheme = "blob:"

// Normalizer maps attachment references between the storage-relative form
// exchanged with the remote service ("/uploads/a.png") and the
// display-absolute form used for rendering ("https://host/uploads/a.png").
//
// The zero value has an empty origin, which makes both directions the
// identity.
type Normalizer struct {
	origin string
}

// NewNormalizer returns a Normalizer for the given serving origin. Trailing
// slashes are dropped so that origin + "/uploads/x" never doubles the slash.
func NewNormalizer(origin string) Normalizer {
	return Normalizer{origin: strings.TrimRight(strings.TrimSpace(origin), "/")}
}

// OriginFromAPI derives the serving origin from an API base URL by removing a
// trailing "/api" segment, e.g. "https://host/api/" -> "https://host".
func OriginFromAPI(api string) string {
	api = strings.TrimRight(strings.TrimSpace(api), "/")
	return strings.TrimSuffix(api, "/api")
}

// Origin returns the configured origin.
func (n Normalizer) Origin() string {
	return n.origin
}

// ToDisplay returns the display-absolute form of ref. References that already
// carry a scheme are returned unchanged.
func (n Normalizer) ToDisplay(ref string) string {
	if ref == "" || n.origin == "" || HasScheme(ref) {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		return n.origin + "/" + ref
	}
	return n.origin + ref
}

// ToStorage returns the storage-relative form of ref by stripping exactly the
// configured origin. Other references are returned unchanged.
func (n Normalizer) ToStorage(ref string) string {
	if n.origin == "" {
		return ref
	}
	rest, ok := strings.CutPrefix(ref, n.origin)
	if !ok || rest == "" {
		return ref
	}
	// "https://hostname" must not match origin "https://host".
	if rest != "" && !strings.HasPrefix(rest, "/") && !strings.HasPrefix(rest, "?") {
		return ref
	}
	return rest
}

// HasScheme reports whether ref is an absolute URI.
func HasScheme(ref string) bool {
	return schemePattern.MatchString(ref)
}

// IsTransient reports whether ref points at an in-memory object that does not
// survive a restart and must never be persisted.
func IsTransient(ref string) bool {
	return len(ref) >= len(transientScheme) && strings.EqualFold(ref[:len(transientScheme)], transientScheme)
}
