package usecase

import (
	"marketplace/internal/data/repository"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

type testRepos struct {
	User    *repository.MockUserRepository
	Session *repository.MockSessionRepository
	Group   *repository.MockGroupRepository
	Webapp  *repository.MockWebappRepository
	Review  *repository.MockReviewRepository
	Comm    *repository.MockCommRepository
	BuildID *repository.MockBuildIDRepository
}

func newTestRepos() (*testRepos, *repository.Repository) {
	m := &testRepos{
		User:    new(repository.MockUserRepository),
		Session: new(repository.MockSessionRepository),
		Group:   new(repository.MockGroupRepository),
		Webapp:  new(repository.MockWebappRepository),
		Review:  new(repository.MockReviewRepository),
		Comm:    new(repository.MockCommRepository),
		BuildID: new(repository.MockBuildIDRepository),
	}

	return m, &repository.Repository{
		User:    m.User,
		Session: m.Session,
		Group:   m.Group,
		Webapp:  m.Webapp,
		Review:  m.Review,
		Comm:    m.Comm,
		BuildID: m.BuildID,
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Domain:             "marketplace.firefox.com",
			LanguageCode:       "en-US",
			SessionExpiryHours: 24,
		},
		Commonplace: utils.CommonplaceConfig{
			MediaURL:       "/media/",
			Repos:          []string{RepoFireplace, RepoCommbadge, RepoTransonic},
			ReposAppcached: []string{RepoFireplace},
			CacheMaxAge:    180,
		},
		FxA: utils.FxAConfig{
			OAuthHost: "https://oauth.example.com/v1",
			ClientID:  "abc123",
		},
	}
}

var testLog = zap.NewNop()
