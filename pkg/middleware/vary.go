package middleware

import (
	"net/http"
	"strings"
)

// Vary guarantees that a response carries every value in values, merged with
// whatever inner handlers (compression included) add, as a single header.
func Vary(values ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vw := &varyWriter{ResponseWriter: w, values: values}
			next.ServeHTTP(vw, r)
			if !vw.wroteHeader {
				vw.merge()
			}
		})
	}
}

type varyWriter struct {
	http.ResponseWriter
	values      []string
	wroteHeader bool
}

func (vw *varyWriter) WriteHeader(code int) {
	if !vw.wroteHeader {
		vw.wroteHeader = true
		vw.merge()
	}
	vw.ResponseWriter.WriteHeader(code)
}

func (vw *varyWriter) Write(b []byte) (int, error) {
	if !vw.wroteHeader {
		vw.WriteHeader(http.StatusOK)
	}
	return vw.ResponseWriter.Write(b)
}

func (vw *varyWriter) Flush() {
	if f, ok := vw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (vw *varyWriter) merge() {
	header := vw.Header()
	merged := MergeVary(header.Values("Vary"), vw.values)
	if len(merged) == 0 {
		return
	}
	header.Set("Vary", strings.Join(merged, ", "))
}

// MergeVary splits, canonicalizes and de-duplicates Vary values, keeping the
// first occurrence of each.
func MergeVary(existing, required []string) []string {
	seen := make(map[string]bool)
	var merged []string

	add := func(raw string) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			name := http.CanonicalHeaderKey(part)
			if part == "*" {
				name = "*"
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			merged = append(merged, name)
		}
	}

	for _, v := range existing {
		add(v)
	}
	for _, v := range required {
		add(v)
	}
	return merged
}
