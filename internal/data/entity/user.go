package entity

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// UserProfile is a marketplace account. Staff and superuser powers are not
// stored; they follow from Groups, which repositories load on demand.
type UserProfile struct {
	Base
	Username     string     `db:"username"`
	Email        *string    `db:"email"`
	DisplayName  *string    `db:"display_name"`
	Lang         *string    `db:"lang"`
	PasswordHash string     `db:"password"`
	Deleted      bool       `db:"deleted"`
	LastLogin    *time.Time `db:"last_login"`

	Groups []*Group `db:"-"`
}

// IsStaff reports whether any group the user belongs to grants admin powers.
func (u *UserProfile) IsStaff() bool {
	for _, g := range u.Groups {
		if g.GrantsAdmin() {
			return true
		}
	}
	return false
}

// IsSuperuser follows the same rule as IsStaff.
func (u *UserProfile) IsSuperuser() bool {
	return u.IsStaff()
}

// Name is the display name, falling back to the username.
func (u *UserProfile) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Username
}

// GravatarHash is the md5 hex of the normalized email, or "" without one.
func (u *UserProfile) GravatarHash() string {
	if u.Email == nil || *u.Email == "" {
		return ""
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(*u.Email))))
	return hex.EncodeToString(sum[:])
}

// Anonymize strips personal data while keeping the row for foreign keys.
func (u *UserProfile) Anonymize(now time.Time) {
	u.Email = nil
	u.DisplayName = nil
	u.Lang = nil
	u.PasswordHash = ""
	u.Username = fmt.Sprintf("Anonymous-%s", u.ID.String())
	u.Deleted = true
	u.UpdatedAt = now
}
