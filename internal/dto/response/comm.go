package response

import (
	"time"

	"marketplace/internal/data/entity"
)

// MozillaAuthorName is shown for notes written by the system.
const MozillaAuthorName = "Mozilla"

type AuthorMeta struct {
	Name         string `json:"name"`
	GravatarHash string `json:"gravatar_hash"`
}

type NoteResponse struct {
	ID         string     `json:"id"`
	Author     *string    `json:"author"`
	AuthorMeta AuthorMeta `json:"author_meta"`
	Body       string     `json:"body"`
	Created    time.Time  `json:"created"`
	NoteType   int        `json:"note_type"`
	Thread     string     `json:"thread"`
}

type ThreadResponse struct {
	ID        string    `json:"id"`
	WebappID  string    `json:"app"`
	VersionID *string   `json:"version"`
	CreatedAt time.Time `json:"created"`
}

// NoteToResponse expects note.Author to be loaded when AuthorID is set.
func NoteToResponse(note *entity.CommNote) NoteResponse {
	resp := NoteResponse{
		ID:       note.ID.String(),
		Body:     note.Body,
		Created:  note.CreatedAt,
		NoteType: int(note.NoteType),
		Thread:   note.ThreadID.String(),
		AuthorMeta: AuthorMeta{
			Name:         MozillaAuthorName,
			GravatarHash: "",
		},
	}

	if note.Author != nil {
		author := note.Author.ID.String()
		resp.Author = &author
		resp.AuthorMeta = AuthorMeta{
			Name:         note.Author.Name(),
			GravatarHash: note.Author.GravatarHash(),
		}
	}

	return resp
}

func ThreadToResponse(thread *entity.CommThread) ThreadResponse {
	resp := ThreadResponse{
		ID:        thread.ID.String(),
		WebappID:  thread.WebappID.String(),
		CreatedAt: thread.CreatedAt,
	}

	if thread.VersionID != nil {
		version := thread.VersionID.String()
		resp.VersionID = &version
	}

	return resp
}
