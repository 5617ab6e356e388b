package repository

import (
	"marketplace/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Group   GroupRepository
	Webapp  WebappRepository
	Review  ReviewRepository
	Comm    CommRepository
	BuildID BuildIDRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Group:   NewGroupRepository(db, log),
		Webapp:  NewWebappRepository(db, log),
		Review:  NewReviewRepository(db, log),
		Comm:    NewCommRepository(db, log),
		BuildID: NewBuildIDRepository(db, log),
	}
}
