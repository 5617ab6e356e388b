package response

import "marketplace/internal/data/entity"

type GroupResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Rules       string `json:"rules"`
	Notes       string `json:"notes"`
	GrantsAdmin bool   `json:"grants_admin"`
}

func GroupToResponse(group *entity.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID.String(),
		Name:        group.Name,
		Rules:       group.Rules,
		Notes:       group.Notes,
		GrantsAdmin: group.GrantsAdmin(),
	}
}
