package response

import "marketplace/internal/data/entity"

type WebappResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}

func WebappToResponse(app *entity.Webapp) WebappResponse {
	return WebappResponse{
		ID:          app.ID.String(),
		Slug:        app.AppSlug,
		Name:        app.Name,
		Description: app.Description,
		Status:      int(app.Status),
	}
}

type BuildIDResponse struct {
	Repo    string `json:"repo"`
	BuildID string `json:"build_id"`
}
