package response

import (
	"time"

	"marketplace/internal/data/entity"
)

type ReviewResponse struct {
	ID        string          `json:"id"`
	WebappID  string          `json:"app"`
	UserID    string          `json:"user"`
	Rating    *int            `json:"rating"`
	Body      string          `json:"body"`
	ReplyTo   *string         `json:"reply_to,omitempty"`
	Reply     *ReviewResponse `json:"reply,omitempty"`
	CreatedAt time.Time       `json:"created"`
	UpdatedAt time.Time       `json:"modified"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        review.ID.String(),
		WebappID:  review.WebappID.String(),
		UserID:    review.UserID.String(),
		Rating:    review.Rating,
		Body:      review.Body,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}

	if review.ReplyTo != nil {
		replyTo := review.ReplyTo.String()
		resp.ReplyTo = &replyTo
	}

	return resp
}
