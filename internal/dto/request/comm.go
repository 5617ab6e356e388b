package request

type CreateNoteRequest struct {
	Body      string  `json:"body" validate:"required"`
	NoteType  int     `json:"note_type" validate:"min=0"`
	VersionID *string `json:"version,omitempty" validate:"omitempty,uuid"`
}
