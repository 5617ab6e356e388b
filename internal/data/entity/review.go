package entity

import (
	"github.com/google/uuid"
)

// Review is either a top-level rating or, when ReplyTo is set, a developer
// reply to another review.
type Review struct {
	BaseNoDelete
	WebappID  uuid.UUID  `db:"webapp_id"`
	VersionID *uuid.UUID `db:"version_id"`
	UserID    uuid.UUID  `db:"user_id"`
	ReplyTo   *uuid.UUID `db:"reply_to"`
	Rating    *int       `db:"rating"` // 1-5, nil for replies
	Body      string     `db:"body"`
}

func (r *Review) IsReply() bool {
	return r.ReplyTo != nil
}
