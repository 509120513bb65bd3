package controller

import (
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Me(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("me", c.Me)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	userId, err := actorId(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.Profile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}
