package controller

import (
	"fmt"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service   service.IOAuthService
	log       logger.ILogger
	clientURL string
}

func NewOAuthController(svc service.IOAuthService, log logger.ILogger, cfg *config.AppConfig) IOAuthController {
	return &oauthController{
		service:   svc,
		log:       log,
		clientURL: cfg.ClientURL,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	url, err := c.service.GetLoginURL(provider)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.Redirect(url)
}

// Callback terminates the handshake. Success redirects to the dashboard with
// a session token; any failure redirects back to the login entry point with
// a generic error so provider detail never reaches the browser.
func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	state := ctx.Query("state")
	code := ctx.Query("code")

	if code == "" || state == "" {
		c.log.Warn("oauth", "Callback missing code or state", map[string]interface{}{"provider": provider})
		return c.redirectLoginFailed(ctx)
	}

	res, err := c.service.HandleCallback(ctx.Context(), provider, state, code)
	if err != nil {
		c.log.Error("oauth", "Callback handling failed", map[string]interface{}{
			"provider": provider,
			"error":    err.Error(),
		})
		return c.redirectLoginFailed(ctx)
	}

	redirectURL := fmt.Sprintf("%s/app?token=%s", c.clientURL, res.AccessToken)
	return ctx.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (c *oauthController) redirectLoginFailed(ctx *fiber.Ctx) error {
	return ctx.Redirect(c.clientURL+"/login?error=login_failed", fiber.StatusTemporaryRedirect)
}
