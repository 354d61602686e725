package media

import "strings"

// Resolver turns stored media references into retrievable URLs. The core
// never touches media bytes; it only prefixes references with the external
// store's base URL.
type Resolver struct {
	baseURL string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// URL resolves a reference; empty or legacy "null" references resolve to "".
// Absolute references pass through unchanged.
func (r *Resolver) URL(ref string) string {
	if ref == "" || ref == "null" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return r.baseURL + "/" + strings.TrimPrefix(ref, "/")
}
