package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/pkg/storage"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeFxA struct{}

func (fakeFxA) AuthInfo() (string, string) {
	return "fakestate", "http://example.com/fakeauthurl"
}

func newCommonplace(repo *repository.Repository, fs afero.Fs) CommonplaceService {
	return NewCommonplaceService(repo, storage.New(fs), fakeFxA{}, testConfig(), testLog)
}

func TestCommonplaceService_BuildID(t *testing.T) {
	t.Run("from db", func(t *testing.T) {
		m, repo := newTestRepos()
		m.BuildID.On("FindByRepo", mock.Anything, "fireplace").
			Return(&entity.DeployBuildID{Repo: "fireplace", BuildID: "0118999"}, nil)

		assert.Equal(t, "0118999", newCommonplace(repo, afero.NewMemMapFs()).BuildID(context.Background(), "fireplace"))
	})

	t.Run("fallback to build_id.txt", func(t *testing.T) {
		m, repo := newTestRepos()
		m.BuildID.On("FindByRepo", mock.Anything, "fireplace").Return(nil, nil)
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "fireplace/build_id.txt", []byte("0118999\n"), 0o644))

		assert.Equal(t, "0118999", newCommonplace(repo, fs).BuildID(context.Background(), "fireplace"))
	})

	t.Run("db error falls back", func(t *testing.T) {
		m, repo := newTestRepos()
		m.BuildID.On("FindByRepo", mock.Anything, "fireplace").Return(nil, errors.New("db down"))
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "fireplace/build_id.txt", []byte("abc"), 0o644))

		assert.Equal(t, "abc", newCommonplace(repo, fs).BuildID(context.Background(), "fireplace"))
	})

	t.Run("dev", func(t *testing.T) {
		m, repo := newTestRepos()
		m.BuildID.On("FindByRepo", mock.Anything, "fireplace").Return(nil, nil)

		assert.Equal(t, DevBuildID, newCommonplace(repo, afero.NewMemMapFs()).BuildID(context.Background(), "fireplace"))
	})
}

func TestAllowedOrigins(t *testing.T) {
	base := func(domain string) []string {
		return []string{
			"app://packaged." + domain,
			"app://" + domain,
			"https://" + domain,
			"app://tarako." + domain,
		}
	}
	devOrigins := []string{
		"http://localhost:8675",
		"https://localhost:8675",
		"http://localhost",
		"https://localhost",
		"http://mp.dev",
		"https://mp.dev",
	}
	loop := []string{"https://hello.firefox.com", "https://call.firefox.com"}
	devLoop := "https://loop-webapp-dev.stage.mozaws.net"

	concat := func(parts ...[]string) []string {
		var out []string
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	tests := []struct {
		name     string
		domain   string
		debug    bool
		withLoop []string
		noLoop   []string
	}{
		{
			name:     "prod",
			domain:   "marketplace.firefox.com",
			withLoop: concat(base("marketplace.firefox.com"), loop),
			noLoop:   base("marketplace.firefox.com"),
		},
		{
			name:     "stage",
			domain:   "marketplace.allizom.org",
			withLoop: concat(base("marketplace.allizom.org"), loop),
			noLoop:   base("marketplace.allizom.org"),
		},
		{
			name:     "dev",
			domain:   "marketplace-dev.allizom.org",
			withLoop: concat(base("marketplace-dev.allizom.org"), devOrigins, loop, []string{devLoop}),
			noLoop:   concat(base("marketplace-dev.allizom.org"), devOrigins),
		},
		{
			name:     "debug",
			domain:   "example.com",
			debug:    true,
			withLoop: concat(base("example.com"), devOrigins, loop, []string{devLoop}),
			noLoop:   concat(base("example.com"), devOrigins),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.withLoop, AllowedOrigins(tt.domain, "https", tt.debug, true))
			assert.Equal(t, tt.noLoop, AllowedOrigins(tt.domain, "https", tt.debug, false))
		})
	}
}

func TestAllowedOrigins_HTTPScheme(t *testing.T) {
	origins := AllowedOrigins("example.com", "http", false, false)
	assert.Equal(t, "http://example.com", origins[2])
}

func TestCommonplaceService_Manifest(t *testing.T) {
	t.Run("unsupported repos", func(t *testing.T) {
		_, repo := newTestRepos()
		svc := newCommonplace(repo, afero.NewMemMapFs())

		for _, name := range []string{"", "transonic", "nope"} {
			_, err := svc.Manifest(context.Background(), name)
			assert.True(t, pkgerrors.Is(err, ErrNotFound), name)
		}
	})

	t.Run("fireplace", func(t *testing.T) {
		m, repo := newTestRepos()
		m.BuildID.On("FindByRepo", mock.Anything, "fireplace").
			Return(&entity.DeployBuildID{Repo: "fireplace", BuildID: "p00p"}, nil)
		fs := afero.NewMemMapFs()
		css := `.splash { background: url(/media/img/icons/eggs/h1.gif) no-repeat; }
.logo { background-image: url("/media/img/logo.png"); }
.inline { background: url(data:image/png;base64,AAAA); }
.again { background: url('/media/img/icons/eggs/h1.gif'); }`
		require.NoError(t, afero.WriteFile(fs, "fireplace/css/splash.css", []byte(css), 0o644))

		page, err := newCommonplace(repo, fs).Manifest(context.Background(), "fireplace")

		require.NoError(t, err)
		assert.Equal(t, "p00p", page.BuildID)
		assert.Equal(t, []string{
			"/media/fireplace/img/icons/eggs/h1.gif",
			"/media/fireplace/img/logo.png",
		}, page.ImageURLs)
		assert.Contains(t, page.Assets, "/media/fireplace/js/include.js?b=p00p")
	})
}

func TestCommonplaceService_IndexPage(t *testing.T) {
	m, repo := newTestRepos()
	m.BuildID.On("FindByRepo", mock.Anything, mock.Anything).Return(nil, nil)
	svc := newCommonplace(repo, afero.NewMemMapFs())

	page, err := svc.IndexPage(context.Background(), IndexParams{Repo: RepoFireplace, Lang: language.French})
	require.NoError(t, err)
	assert.True(t, page.IncludeSplash)
	assert.Equal(t, "/media/fireplace/js/include.js?b=dev", page.ScriptURL)
	assert.Equal(t, "fakestate", page.FxAState)
	assert.Equal(t, "fr", page.Lang)

	page, err = svc.IndexPage(context.Background(), IndexParams{Repo: RepoCommbadge, Lang: language.English})
	require.NoError(t, err)
	assert.False(t, page.IncludeSplash)

	_, err = svc.IndexPage(context.Background(), IndexParams{Repo: "rocketfuel"})
	assert.True(t, pkgerrors.Is(err, ErrNotFound))
}

func TestCommonplaceService_OpenGraph(t *testing.T) {
	app := publicApp()
	hash := "abcd"
	app.IconType = "image/png"
	app.IconHash = &hash

	m, repo := newTestRepos()
	m.Webapp.On("FindBySlug", mock.Anything, app.AppSlug).Return(app, nil)
	m.Webapp.On("FindBySlug", mock.Anything, "DO NOT EXISTS").Return(nil, nil)
	svc := newCommonplace(repo, afero.NewMemMapFs())

	og := svc.OpenGraph(context.Background(), "")
	assert.Equal(t, "Firefox Marketplace", og.Title)
	assert.True(t, strings.HasPrefix(og.Description, "The Firefox Marketplace is"))

	og = svc.OpenGraph(context.Background(), app.AppSlug)
	assert.Equal(t, app.Name, og.Title)
	assert.Equal(t, app.IconURL("/media/", 64), og.Image)
	assert.Equal(t, "Awesome", og.Description)

	og = svc.OpenGraph(context.Background(), "DO NOT EXISTS")
	assert.Equal(t, "Firefox Marketplace", og.Title)
}

func TestCommonplaceService_SetBuildID(t *testing.T) {
	m, repo := newTestRepos()
	m.BuildID.On("Upsert", mock.Anything, mock.MatchedBy(func(b *entity.DeployBuildID) bool {
		return b.Repo == "fireplace" && b.BuildID == "0118999"
	})).Return(nil)
	svc := newCommonplace(repo, afero.NewMemMapFs())

	got, err := svc.SetBuildID(context.Background(), &request.SetBuildIDRequest{Repo: "fireplace", BuildID: " 0118999 "})
	require.NoError(t, err)
	assert.Equal(t, "0118999", got.BuildID)

	_, err = svc.SetBuildID(context.Background(), &request.SetBuildIDRequest{Repo: "unknown", BuildID: "1"})
	var verr *ValidationError
	assert.True(t, pkgerrors.As(err, &verr))
}

func TestCommonplaceService_SetBuildID_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		buildID string
	}{
		{"too long for column", strings.Repeat("a", 21)},
		{"blank", "   "},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newTestRepos()
			svc := newCommonplace(repo, afero.NewMemMapFs())

			_, err := svc.SetBuildID(context.Background(), &request.SetBuildIDRequest{Repo: "fireplace", BuildID: tt.buildID})

			var verr *ValidationError
			require.True(t, pkgerrors.As(err, &verr))
			assert.Contains(t, verr.Fields, "build_id")
			m.BuildID.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestIncludeRegion(t *testing.T) {
	tests := []struct {
		repo  string
		query string
		want  bool
	}{
		{RepoFireplace, "", true},
		{RepoFireplace, "nativepersona=true", true},
		{RepoFireplace, "mcc=blah", true},
		{RepoFireplace, "mccs=blah", false},
		{RepoFireplace, "mcc=blah&mnc=blah", false},
		{RepoCommbadge, "", false},
	}

	for _, tt := range tests {
		query, err := url.ParseQuery(tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, IncludeRegion(tt.repo, query), tt.repo+"?"+tt.query)
	}
}

func TestFxAService_AuthInfo(t *testing.T) {
	svc := NewFxAService(testConfig().FxA)

	state, authURL := svc.AuthInfo()
	assert.Len(t, state, 32)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "/v1/authorization", parsed.Path)
	assert.Equal(t, "abc123", parsed.Query().Get("client_id"))
	assert.Equal(t, "profile", parsed.Query().Get("scope"))
	assert.Equal(t, state, parsed.Query().Get("state"))

	other, _ := svc.AuthInfo()
	assert.NotEqual(t, state, other)
}

func TestCommonplaceService_FramePage(t *testing.T) {
	_, repo := newTestRepos()
	svc := newCommonplace(repo, afero.NewMemMapFs())

	page, err := svc.FramePage("https", "potatolytics.js", false)

	require.NoError(t, err)
	assert.Equal(t, "/media/js/potatolytics.js", page.ScriptURL)
	assert.JSONEq(t, `["app://packaged.marketplace.firefox.com","app://marketplace.firefox.com",`+
		`"https://marketplace.firefox.com","app://tarako.marketplace.firefox.com"]`, page.AllowedOrigins)
}
