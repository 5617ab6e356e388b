package response

import (
	"time"

	"marketplace/internal/data/entity"
)

type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Email        *string   `json:"email"`
	Lang         *string   `json:"lang"`
	GravatarHash string    `json:"gravatar_hash"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	Groups       []string  `json:"groups"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserToResponse expects user.Groups to be loaded.
func UserToResponse(user *entity.UserProfile) UserResponse {
	groups := make([]string, 0, len(user.Groups))
	for _, g := range user.Groups {
		groups = append(groups, g.Name)
	}

	return UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		DisplayName:  user.Name(),
		Email:        user.Email,
		Lang:         user.Lang,
		GravatarHash: user.GravatarHash(),
		IsStaff:      user.IsStaff(),
		IsSuperuser:  user.IsSuperuser(),
		Groups:       groups,
		CreatedAt:    user.CreatedAt,
	}
}
