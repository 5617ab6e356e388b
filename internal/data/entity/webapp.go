package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type WebappStatus int

const (
	StatusNull     WebappStatus = 0
	StatusPending  WebappStatus = 2
	StatusPublic   WebappStatus = 4
	StatusDisabled WebappStatus = 5
	StatusRejected WebappStatus = 12
)

type Webapp struct {
	Base
	AppSlug          string       `db:"app_slug"`
	Name             string       `db:"name"`
	Description      string       `db:"description"`
	IconType         string       `db:"icon_type"`
	IconHash         *string      `db:"icon_hash"`
	Status           WebappStatus `db:"status"`
	CurrentVersionID *uuid.UUID   `db:"current_version_id"`
}

func (w *Webapp) IsPublic() bool {
	return w.Status == StatusPublic
}

// IconURL is the square icon of the given size under mediaURL, or the
// generic marketplace icon when the app never uploaded one.
func (w *Webapp) IconURL(mediaURL string, size int) string {
	if w.IconType == "" {
		return fmt.Sprintf("%simg/hub/default-%d.png", mediaURL, size)
	}

	url := fmt.Sprintf("%simg/uploads/webapp_icons/%s-%d.png", mediaURL, w.ID.String(), size)
	if w.IconHash != nil && *w.IconHash != "" {
		url += "?modified=" + *w.IconHash
	}
	return url
}

type Version struct {
	BaseSimple
	WebappID uuid.UUID `db:"webapp_id"`
	Version  string    `db:"version"`
}

type AddonUserRole int

const (
	AuthorRoleOwner     AddonUserRole = 5
	AuthorRoleDeveloper AddonUserRole = 4
	AuthorRoleViewer    AddonUserRole = 1
)

// AddonUser links an author to an app.
type AddonUser struct {
	WebappID uuid.UUID     `db:"webapp_id"`
	UserID   uuid.UUID     `db:"user_id"`
	Role     AddonUserRole `db:"role"`
	Listed   bool          `db:"listed"`
}

// DeployBuildID stamps the deployed build of a front-end repo.
type DeployBuildID struct {
	Repo     string    `db:"repo"`
	BuildID  string    `db:"build_id"`
	Modified time.Time `db:"modified"`
}
