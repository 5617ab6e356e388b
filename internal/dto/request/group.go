package request

type CreateGroupRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Rules string `json:"rules" validate:"required,max=255"`
	Notes string `json:"notes" validate:"max=255"`
}
