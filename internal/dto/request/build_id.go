package request

type SetBuildIDRequest struct {
	Repo    string `json:"repo" validate:"required,max=20"`
	BuildID string `json:"build_id" validate:"required,max=20"`
}
