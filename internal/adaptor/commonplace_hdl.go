package adaptor

import (
	"bytes"
	"net/http"
	"strconv"

	"marketplace/internal/dto/request"
	"marketplace/internal/regions"
	"marketplace/internal/templates"
	"marketplace/internal/usecase"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type CommonplaceHandler struct {
	service  usecase.CommonplaceService
	resolver regions.Resolver
	config   *utils.Config
	fallback language.Tag
	log      *zap.Logger
}

func NewCommonplaceHandler(
	service usecase.CommonplaceService,
	resolver regions.Resolver,
	config *utils.Config,
	log *zap.Logger,
) *CommonplaceHandler {
	fallback, err := language.Parse(config.App.LanguageCode)
	if err != nil {
		fallback = language.AmericanEnglish
	}

	return &CommonplaceHandler{
		service:  service,
		resolver: resolver,
		config:   config,
		fallback: fallback,
		log:      log.With(zap.String("handler", "commonplace")),
	}
}

// Index returns the handler serving the single page app of repo.
func (h *CommonplaceHandler) Index(repo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := usecase.IndexParams{
			Repo:    repo,
			AppSlug: chi.URLParam(r, "slug"),
			Lang:    utils.GetLanguageFromContext(r.Context(), h.fallback),
		}
		if h.resolver != nil && usecase.IncludeRegion(repo, r.URL.Query()) {
			region := h.resolver.RegionFromRequest(r)
			params.Region = &region
		}

		page, err := h.service.IndexPage(r.Context(), params)
		if err != nil {
			h.pageError(w, err, "render "+repo+" index")
			return
		}

		w.Header().Set("Cache-Control", "max-age="+strconv.Itoa(h.config.Commonplace.CacheMaxAge))
		h.render(w, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
			return templates.Render(buf, templates.Index, page)
		})
	}
}

// Manifest handles GET /manifest.appcache?repo=<repo>
func (h *CommonplaceHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Manifest(r.Context(), r.URL.Query().Get("repo"))
	if err != nil {
		h.pageError(w, err, "render appcache manifest")
		return
	}

	h.render(w, "text/cache-manifest; charset=utf-8", func(buf *bytes.Buffer) error {
		return templates.RenderManifest(buf, page)
	})
}

// IframeInstall handles GET /iframe-install.html
func (h *CommonplaceHandler) IframeInstall(w http.ResponseWriter, r *http.Request) {
	h.frame(w, r, templates.IframeInstall, "iframe-install.js", true)
}

// Potatolytics handles GET /potatolytics.html
func (h *CommonplaceHandler) Potatolytics(w http.ResponseWriter, r *http.Request) {
	h.frame(w, r, templates.Potatolytics, "potatolytics.js", false)
}

func (h *CommonplaceHandler) frame(w http.ResponseWriter, r *http.Request, name, script string, includeLoop bool) {
	page, err := h.service.FramePage(RequestScheme(r), script, includeLoop)
	if err != nil {
		h.pageError(w, err, "render "+name)
		return
	}

	h.render(w, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return templates.Render(buf, name, page)
	})
}

// SetBuildID handles POST /api/admin/build-id (admin only)
func (h *CommonplaceHandler) SetBuildID(w http.ResponseWriter, r *http.Request) {
	var req request.SetBuildIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SetBuildID(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set build id")
		return
	}

	utils.ResponseSuccess(w, "Build id recorded", resp)
}

// render buffers the page so a template error never leaves a half written
// 200 behind. Content-Type is set before WriteHeader so compression can see it.
func (h *CommonplaceHandler) render(w http.ResponseWriter, contentType string, execute func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := execute(&buf); err != nil {
		h.log.Error("Failed to render template", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *CommonplaceHandler) pageError(w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, usecase.ErrNotFound) {
		h.log.Debug(operation+" - not found", zap.Error(err))
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	h.log.Error("Failed to "+operation, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// RequestScheme is https for TLS requests and for requests a proxy marked
// with X-Forwarded-Proto: https.
func RequestScheme(r *http.Request) string {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}
