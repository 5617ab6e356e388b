package wire

import (
	"net/http"

	"marketplace/internal/adaptor"
	"marketplace/internal/usecase"
	"marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// pageVary is sent on every server rendered page: the body depends on the
// encoding, the negotiated language and the lang cookie.
var pageVary = []string{"Accept-Encoding", "Accept-Language", "Cookie"}

func wireCommonplace(r chi.Router, h *adaptor.CommonplaceHandler, locale func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Vary(pageVary...))
		r.Use(chimw.Compress(5, "text/html", "text/cache-manifest", "application/json"))
		r.Use(locale)

		// fireplace
		r.Get("/", h.Index(usecase.RepoFireplace))
		r.Get("/server.html", h.Index(usecase.RepoFireplace))
		r.Get("/app/{slug}/", h.Index(usecase.RepoFireplace))

		// commbadge
		r.Get("/comm/", h.Index(usecase.RepoCommbadge))
		r.Get("/comm/*", h.Index(usecase.RepoCommbadge))

		// transonic
		r.Get("/curate/", h.Index(usecase.RepoTransonic))
		r.Get("/curate/*", h.Index(usecase.RepoTransonic))

		r.Get("/manifest.appcache", h.Manifest)
		r.Get("/iframe-install.html", h.IframeInstall)
		r.Get("/potatolytics.html", h.Potatolytics)
	})
}
