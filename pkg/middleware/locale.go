package middleware

import (
	"net/http"
	"strings"

	"marketplace/pkg/utils"

	"golang.org/x/text/language"
)

const (
	// LangParam selects a language explicitly.
	LangParam = "lang"
	// LangCookieName holds a remembered language choice.
	LangCookieName = "lang"
)

// Locale activates the best supported language for each request.
func Locale(supported []language.Tag, fallback language.Tag) func(http.Handler) http.Handler {
	ordered := []language.Tag{fallback}
	for _, tag := range supported {
		if tag != fallback {
			ordered = append(ordered, tag)
		}
	}
	supported = ordered
	matcher := language.NewMatcher(supported)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := ResolveTag(r, matcher, supported)
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(utils.SetLanguageContext(r.Context(), tag)))
		})
	}
}

// ResolveTag checks the lang query parameter, then the lang cookie, then
// Accept-Language. supported[0] is the fallback.
func ResolveTag(r *http.Request, matcher language.Matcher, supported []language.Tag) language.Tag {
	var candidates []language.Tag

	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, err := language.Parse(value); err == nil {
			candidates = append(candidates, tag)
		}
	}

	if len(candidates) == 0 {
		if cookie, err := r.Cookie(LangCookieName); err == nil {
			if tag, err := language.Parse(cookie.Value); err == nil {
				candidates = append(candidates, tag)
			}
		}
	}

	if len(candidates) == 0 {
		if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
			if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
				candidates = tags
			}
		}
	}

	if len(candidates) == 0 {
		return supported[0]
	}

	_, index, confidence := matcher.Match(candidates...)
	if confidence == language.No {
		return supported[0]
	}
	return supported[index]
}

// ParseTags parses configured language codes, skipping invalid ones.
func ParseTags(codes []string) []language.Tag {
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		if tag, err := language.Parse(code); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}
