package request

type CreateReviewRequest struct {
	WebappID string `json:"app" validate:"required,uuid"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Body     string `json:"body" validate:"required,max=5000"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Body   *string `json:"body,omitempty" validate:"omitempty,min=1,max=5000"`
}

type ReplyRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}
