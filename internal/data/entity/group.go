package entity

import (
	"marketplace/internal/access"

	"github.com/google/uuid"
)

type Group struct {
	BaseSimple
	Name  string `db:"name"`
	Rules string `db:"rules"`
	Notes string `db:"notes"`
}

// GrantsAdmin reports whether membership confers staff/superuser powers.
func (g *Group) GrantsAdmin() bool {
	return access.GrantsAdmin(g.Rules)
}

type GroupUser struct {
	GroupID uuid.UUID `db:"group_id"`
	UserID  uuid.UUID `db:"user_id"`
}
