package service

import (
	"context"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/policy"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"
	pktNats "personal-notes-be/pkg/nats"

	"personal-notes-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	emitter    *eventEmitter
	log        logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	auditPublisher IPublisherService,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		emitter:    newEventEmitter(auditPublisher, natsPub, log),
		log:        log,
	}
}

// List returns the caller's notes, newest first. The owner filter is part of
// the query itself so rows belonging to other users never leave the store.
func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	if !policy.CanListNotes(userId) {
		return nil, serverutils.ErrForbidden("not allowed")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, toNoteResponse(note))
	}
	return response, nil
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	if !policy.CanCreateNote(userId) {
		return nil, serverutils.ErrForbidden("not allowed")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	actorId := userId
	c.emitter.Emit(ctx, events.TypeNoteCreated, &actorId, map[string]interface{}{
		"note_id": note.Id,
		"title":   note.Title,
	})

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.loadAuthorized(ctx, uow, userId, id, policy.ActionView)
	if err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.loadAuthorized(ctx, uow, userId, req.Id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Only title and content are mutable; the owner is fixed at creation.
	note.Title = req.Title
	note.Content = req.Content
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	actorId := userId
	c.emitter.Emit(ctx, events.TypeNoteUpdated, &actorId, map[string]interface{}{
		"note_id": note.Id,
	})

	return &dto.UpdateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.loadAuthorized(ctx, uow, userId, id, policy.ActionDelete)
	if err != nil {
		return err
	}

	// Permanent removal; there is no restore path.
	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	actorId := userId
	c.emitter.Emit(ctx, events.TypeNoteDeleted, &actorId, map[string]interface{}{
		"note_id": note.Id,
	})

	return nil
}

// loadAuthorized fetches the target and applies the ownership policy.
// NotFound and AuthorizationDenied stay distinct: the latter is audited.
func (c *noteService) loadAuthorized(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID, action policy.Action) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.ErrNotFound("note not found")
	}

	if !policy.CanAccessNote(userId, note, action) {
		actorId := userId
		c.emitter.Emit(ctx, events.TypeNoteAccessDenied, &actorId, map[string]interface{}{
			"note_id": note.Id,
			"action":  string(action),
		})
		return nil, serverutils.ErrForbidden("you do not own this note")
	}

	return note, nil
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
