package usecase

import (
	"context"
	"encoding/json"
	"path"
	"regexp"
	"strings"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/internal/regions"
	"marketplace/pkg/storage"
	"marketplace/pkg/utils"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	RepoFireplace = "fireplace"
	RepoCommbadge = "commbadge"
	RepoTransonic = "transonic"

	// DevBuildID is used when no deploy has recorded a build id.
	DevBuildID = "dev"

	// DevDomain always gets the local development origins.
	DevDomain = "marketplace-dev.allizom.org"

	DefaultTitle       = "Firefox Marketplace"
	DefaultDescription = "The Firefox Marketplace is the place to discover and install " +
		"apps for Firefox OS and the open web."

	ogIconSize = 64
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
}

// IndexParams describes the index page being requested.
type IndexParams struct {
	Repo    string
	AppSlug string
	Lang    language.Tag
	Region  *regions.Region
}

// IndexPage is everything the commonplace index template renders.
type IndexPage struct {
	Repo          string
	BuildID       string
	MediaURL      string
	ScriptURL     string
	StyleURL      string
	SplashURL     string
	IncludeSplash bool
	FxAState      string
	FxAAuthURL    string
	OpenGraph     OpenGraph
	Lang          string
	Region        *regions.Region
}

// FramePage renders a frame that only trusts messages from AllowedOrigins,
// a JSON array.
type FramePage struct {
	AllowedOrigins string
	ScriptURL      string
}

type ManifestPage struct {
	Repo      string
	BuildID   string
	Assets    []string
	ImageURLs []string
}

type CommonplaceService interface {
	BuildID(ctx context.Context, repo string) string
	SetBuildID(ctx context.Context, req *request.SetBuildIDRequest) (*response.BuildIDResponse, error)
	IndexPage(ctx context.Context, params IndexParams) (*IndexPage, error)
	Manifest(ctx context.Context, repo string) (*ManifestPage, error)
	ImageURLs(repo string) []string
	OpenGraph(ctx context.Context, slug string) OpenGraph
	AllowedOrigins(scheme string, includeLoop bool) []string
	FramePage(scheme, script string, includeLoop bool) (*FramePage, error)
}

type commonplaceService struct {
	repo    *repository.Repository
	storage storage.Storage
	fxa     FxAService
	config  *utils.Config
	log     *zap.Logger
}

func NewCommonplaceService(
	repo *repository.Repository,
	store storage.Storage,
	fxa FxAService,
	config *utils.Config,
	log *zap.Logger,
) CommonplaceService {
	return &commonplaceService{
		repo:    repo,
		storage: store,
		fxa:     fxa,
		config:  config,
		log:     log.With(zap.String("service", "commonplace")),
	}
}

// BuildID prefers the deploy record, then <repo>/build_id.txt in storage.
func (s *commonplaceService) BuildID(ctx context.Context, repo string) string {
	record, err := s.repo.BuildID.FindByRepo(ctx, repo)
	if err != nil {
		s.log.Warn("Build id lookup failed", zap.Error(err), zap.String("repo", repo))
	}
	if record != nil && record.BuildID != "" {
		return record.BuildID
	}

	data, err := s.storage.ReadFile(path.Join(repo, "build_id.txt"))
	if err != nil {
		return DevBuildID
	}
	if id := strings.TrimSpace(string(data)); id != "" {
		return id
	}
	return DevBuildID
}

func (s *commonplaceService) SetBuildID(ctx context.Context, req *request.SetBuildIDRequest) (*response.BuildIDResponse, error) {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}
	if !utils.Contains(s.config.Commonplace.Repos, req.Repo) {
		return nil, fieldError("repo", "Select a valid choice.")
	}
	buildID := strings.TrimSpace(req.BuildID)
	if buildID == "" {
		return nil, fieldError("build_id", msgRequired)
	}

	record := &entity.DeployBuildID{
		Repo:     req.Repo,
		BuildID:  buildID,
		Modified: time.Now(),
	}
	if err := s.repo.BuildID.Upsert(ctx, record); err != nil {
		return nil, errors.Wrap(err, "save build id")
	}

	return &response.BuildIDResponse{Repo: record.Repo, BuildID: record.BuildID}, nil
}

func (s *commonplaceService) IndexPage(ctx context.Context, params IndexParams) (*IndexPage, error) {
	if !utils.Contains(s.config.Commonplace.Repos, params.Repo) {
		return nil, errors.Wrapf(ErrNotFound, "repo %s", params.Repo)
	}

	media := s.config.Commonplace.MediaURL
	buildID := s.BuildID(ctx, params.Repo)
	state, authURL := s.fxa.AuthInfo()

	page := &IndexPage{
		Repo:          params.Repo,
		BuildID:       buildID,
		MediaURL:      media,
		ScriptURL:     media + params.Repo + "/js/include.js?b=" + buildID,
		StyleURL:      media + params.Repo + "/css/include.css?b=" + buildID,
		SplashURL:     media + params.Repo + "/css/splash.css",
		IncludeSplash: params.Repo == RepoFireplace,
		FxAState:      state,
		FxAAuthURL:    authURL,
		OpenGraph:     s.OpenGraph(ctx, params.AppSlug),
		Lang:          params.Lang.String(),
		Region:        params.Region,
	}
	return page, nil
}

func (s *commonplaceService) Manifest(ctx context.Context, repo string) (*ManifestPage, error) {
	if repo == "" || !utils.Contains(s.config.Commonplace.ReposAppcached, repo) {
		return nil, errors.Wrapf(ErrNotFound, "appcache for repo %q", repo)
	}

	media := s.config.Commonplace.MediaURL
	buildID := s.BuildID(ctx, repo)

	images := s.ImageURLs(repo)
	for i, img := range images {
		images[i] = strings.ReplaceAll(img, media, media+repo+"/")
	}

	return &ManifestPage{
		Repo:    repo,
		BuildID: buildID,
		Assets: []string{
			media + repo + "/css/include.css?b=" + buildID,
			media + repo + "/js/include.js?b=" + buildID,
		},
		ImageURLs: images,
	}, nil
}

var cssURLPattern = regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`)

// ImageURLs lists the url(...) references of <repo>/css/splash.css.
func (s *commonplaceService) ImageURLs(repo string) []string {
	data, err := s.storage.ReadFile(path.Join(repo, "css", "splash.css"))
	if err != nil {
		s.log.Debug("No splash stylesheet", zap.String("repo", repo), zap.Error(err))
		return []string{}
	}

	seen := make(map[string]bool)
	urls := []string{}
	for _, match := range cssURLPattern.FindAllStringSubmatch(string(data), -1) {
		url := strings.TrimSpace(match[1])
		if url == "" || strings.HasPrefix(url, "data:") || seen[url] {
			continue
		}
		seen[url] = true
		urls = append(urls, url)
	}
	return urls
}

func (s *commonplaceService) OpenGraph(ctx context.Context, slug string) OpenGraph {
	media := s.config.Commonplace.MediaURL
	og := OpenGraph{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		Image:       media + "img/hub/default-64.png",
	}
	if slug == "" {
		return og
	}

	app, err := s.repo.Webapp.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Warn("Open Graph app lookup failed", zap.Error(err), zap.String("slug", slug))
		return og
	}
	if app == nil || !app.IsPublic() {
		return og
	}

	og.Title = app.Name
	og.Image = app.IconURL(media, ogIconSize)
	if app.Description != "" {
		og.Description = app.Description
	}
	return og
}

func (s *commonplaceService) AllowedOrigins(scheme string, includeLoop bool) []string {
	return AllowedOrigins(s.config.App.Domain, scheme, s.config.App.Debug, includeLoop)
}

func (s *commonplaceService) FramePage(scheme, script string, includeLoop bool) (*FramePage, error) {
	origins, err := json.Marshal(s.AllowedOrigins(scheme, includeLoop))
	if err != nil {
		return nil, errors.Wrap(err, "encode allowed origins")
	}

	return &FramePage{
		AllowedOrigins: string(origins),
		ScriptURL:      s.config.Commonplace.MediaURL + "js/" + script,
	}, nil
}

// AllowedOrigins lists the origins permitted to message marketplace frames.
func AllowedOrigins(domain, scheme string, debug, includeLoop bool) []string {
	if scheme == "" {
		scheme = "https"
	}

	origins := []string{
		"app://packaged." + domain,
		"app://" + domain,
		scheme + "://" + domain,
		"app://tarako." + domain,
	}

	dev := debug || domain == DevDomain
	if dev {
		origins = append(origins,
			"http://localhost:8675",
			"https://localhost:8675",
			"http://localhost",
			"https://localhost",
			"http://mp.dev",
			"https://mp.dev",
		)
	}

	if includeLoop {
		origins = append(origins,
			"https://hello.firefox.com",
			"https://call.firefox.com",
		)
		if dev {
			origins = append(origins, "https://loop-webapp-dev.stage.mozaws.net")
		}
	}

	return origins
}

// IncludeRegion reports whether a page should carry the geoip region. Only
// fireplace uses it, and not when the device already sent SIM network codes.
func IncludeRegion(repo string, query map[string][]string) bool {
	if repo != RepoFireplace {
		return false
	}
	_, mccs := query["mccs"]
	_, mcc := query["mcc"]
	_, mnc := query["mnc"]
	return !mccs && !(mcc && mnc)
}
