package response

import (
	"testing"
	"time"

	"marketplace/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNote(author *entity.UserProfile) *entity.CommNote {
	note := &entity.CommNote{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ThreadID:   uuid.New(),
		NoteType:   entity.NoteNoAction,
		Body:       "hue",
		Author:     author,
	}
	if author != nil {
		note.AuthorID = &author.ID
	}
	return note
}

func TestNoteToResponse_Author(t *testing.T) {
	email := "regular@mozilla.com"
	user := &entity.UserProfile{
		Base:     entity.Base{ID: uuid.New()},
		Username: "regularuser",
		Email:    &email,
	}

	data := NoteToResponse(newNote(user))

	assert.Equal(t, "regularuser", data.AuthorMeta.Name)
	assert.NotEmpty(t, data.AuthorMeta.GravatarHash)
	require.NotNil(t, data.Author)
	assert.Equal(t, user.ID.String(), *data.Author)
	assert.Equal(t, "hue", data.Body)
}

func TestNoteToResponse_NoAuthor(t *testing.T) {
	data := NoteToResponse(newNote(nil))

	assert.Equal(t, "Mozilla", data.AuthorMeta.Name)
	assert.Equal(t, "", data.AuthorMeta.GravatarHash)
	assert.Nil(t, data.Author)
}

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2}, 1, 2, 5)

	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, int64(5), page.Pagination.Total)
}
