package entity

import (
	"github.com/google/uuid"
)

type NoteType int

const (
	NoteNoAction NoteType = iota
	NoteApproval
	NoteRejection
	NoteDisabled
	NoteMoreInfo
	NoteEscalation
	NoteReviewerComment
	NoteResubmission
	NoteDeveloperComment
)

var noteTypeNames = map[NoteType]string{
	NoteNoAction:         "no_action",
	NoteApproval:         "approval",
	NoteRejection:        "rejection",
	NoteDisabled:         "disabled",
	NoteMoreInfo:         "more_info",
	NoteEscalation:       "escalation",
	NoteReviewerComment:  "reviewer_comment",
	NoteResubmission:     "resubmission",
	NoteDeveloperComment: "developer_comment",
}

func (t NoteType) String() string {
	if name, ok := noteTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t NoteType) Valid() bool {
	_, ok := noteTypeNames[t]
	return ok
}

// CommThread groups the notes exchanged about one version of an app.
type CommThread struct {
	BaseSimple
	WebappID  uuid.UUID  `db:"webapp_id"`
	VersionID *uuid.UUID `db:"version_id"`
}

type CommNote struct {
	BaseSimple
	ThreadID uuid.UUID  `db:"thread_id"`
	AuthorID *uuid.UUID `db:"author_id"`
	NoteType NoteType   `db:"note_type"`
	Body     string     `db:"body"`

	Author *UserProfile `db:"-"`
}
