package controller

import (
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func actorId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, serverutils.ErrUnauthenticated("invalid session")
	}
	return userId, nil
}

func noteIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.ErrNotFound("note not found")
	}
	return id, nil
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := actorId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := actorId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrValidation(map[string]string{"body": "malformed request body"})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, err := actorId(ctx)
	if err != nil {
		return err
	}

	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := actorId(ctx)
	if err != nil {
		return err
	}

	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrValidation(map[string]string{"body": "malformed request body"})
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := actorId(ctx)
	if err != nil {
		return err
	}

	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}
