package usecase

import (
	"context"
	"time"

	"marketplace/internal/data/entity"
	"marketplace/internal/data/repository"
	"marketplace/internal/dto/request"
	"marketplace/internal/dto/response"
	"marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Reviewers hold this permission; app authors may also take part in threads.
const (
	ReviewerApp    = "Apps"
	ReviewerAction = "Review"
)

type CommService interface {
	// CreateNote files a note on the thread of an app version, creating the
	// thread when needed. A nil author marks a system note.
	CreateNote(ctx context.Context, webappID uuid.UUID, versionID *uuid.UUID, author *entity.UserProfile, body string, noteType entity.NoteType) (*entity.CommThread, *entity.CommNote, error)

	PostNote(ctx context.Context, userID uuid.UUID, slug string, req *request.CreateNoteRequest) (*response.NoteResponse, error)
	AppThreads(ctx context.Context, userID uuid.UUID, slug string) ([]response.ThreadResponse, error)
	ThreadNotes(ctx context.Context, userID, threadID uuid.UUID) ([]response.NoteResponse, error)
}

type commService struct {
	repo   *repository.Repository
	access AccessService
	log    *zap.Logger
}

func NewCommService(repo *repository.Repository, access AccessService, log *zap.Logger) CommService {
	return &commService{
		repo:   repo,
		access: access,
		log:    log.With(zap.String("service", "comm")),
	}
}

func (s *commService) CreateNote(ctx context.Context, webappID uuid.UUID, versionID *uuid.UUID, author *entity.UserProfile, body string, noteType entity.NoteType) (*entity.CommThread, *entity.CommNote, error) {
	if !noteType.Valid() {
		return nil, nil, fieldError("note_type", "Select a valid choice.")
	}

	thread, created, err := s.repo.Comm.GetOrCreateThread(ctx, webappID, versionID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "get thread")
	}

	note := &entity.CommNote{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ThreadID:   thread.ID,
		NoteType:   noteType,
		Body:       body,
		Author:     author,
	}
	if author != nil {
		note.AuthorID = &author.ID
	}

	if err := s.repo.Comm.CreateNote(ctx, note); err != nil {
		return nil, nil, errors.Wrap(err, "create note")
	}

	s.log.Info("Comm note created",
		zap.String("thread_id", thread.ID.String()),
		zap.String("note_id", note.ID.String()),
		zap.Bool("new_thread", created),
		zap.Stringer("note_type", noteType),
	)
	return thread, note, nil
}

func (s *commService) PostNote(ctx context.Context, userID uuid.UUID, slug string, req *request.CreateNoteRequest) (*response.NoteResponse, error) {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	app, err := s.participant(ctx, userID, slug)
	if err != nil {
		return nil, err
	}

	versionID := app.CurrentVersionID
	if req.VersionID != nil {
		id, err := uuid.Parse(*req.VersionID)
		if err != nil {
			return nil, fieldError("version", "Must be a valid UUID.")
		}
		version, err := s.repo.Webapp.FindVersion(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "find version")
		}
		if version == nil || version.WebappID != app.ID {
			return nil, errors.Wrapf(ErrNotFound, "version %s", id.String())
		}
		versionID = &version.ID
	}

	author, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find author")
	}
	if author == nil {
		return nil, errors.Wrapf(ErrNotFound, "user %s", userID.String())
	}

	_, note, err := s.CreateNote(ctx, app.ID, versionID, author, req.Body, entity.NoteType(req.NoteType))
	if err != nil {
		return nil, err
	}

	resp := response.NoteToResponse(note)
	return &resp, nil
}

func (s *commService) AppThreads(ctx context.Context, userID uuid.UUID, slug string) ([]response.ThreadResponse, error) {
	app, err := s.participant(ctx, userID, slug)
	if err != nil {
		return nil, err
	}

	threads, err := s.repo.Comm.FindThreadsByWebapp(ctx, app.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list threads")
	}

	data := make([]response.ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		data = append(data, response.ThreadToResponse(thread))
	}
	return data, nil
}

func (s *commService) ThreadNotes(ctx context.Context, userID, threadID uuid.UUID) ([]response.NoteResponse, error) {
	thread, err := s.repo.Comm.FindThreadByID(ctx, threadID)
	if err != nil {
		return nil, errors.Wrap(err, "find thread")
	}
	if thread == nil {
		return nil, errors.Wrapf(ErrNotFound, "thread %s", threadID.String())
	}

	if err := s.checkParticipant(ctx, userID, thread.WebappID); err != nil {
		return nil, err
	}

	notes, err := s.repo.Comm.FindNotesByThread(ctx, threadID)
	if err != nil {
		return nil, errors.Wrap(err, "list notes")
	}

	data := make([]response.NoteResponse, 0, len(notes))
	for _, note := range notes {
		data = append(data, response.NoteToResponse(note))
	}
	return data, nil
}

func (s *commService) participant(ctx context.Context, userID uuid.UUID, slug string) (*entity.Webapp, error) {
	app, err := s.repo.Webapp.FindBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "find app")
	}
	if app == nil {
		return nil, errors.Wrapf(ErrNotFound, "app %s", slug)
	}

	if err := s.checkParticipant(ctx, userID, app.ID); err != nil {
		return nil, err
	}
	return app, nil
}

// checkParticipant admits reviewers and the app's authors.
func (s *commService) checkParticipant(ctx context.Context, userID, webappID uuid.UUID) error {
	allowed, err := s.access.ActionAllowed(ctx, userID, ReviewerApp, ReviewerAction)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}

	isAuthor, err := s.repo.Webapp.IsAuthor(ctx, webappID, userID)
	if err != nil {
		return errors.Wrap(err, "check authorship")
	}
	if !isAuthor {
		return errors.Wrap(ErrForbidden, "not a participant of this app's threads")
	}
	return nil
}
