package controller

import (
	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRealtimeController interface {
	RegisterRoutes(r fiber.Router)
	CreateSessionToken(ctx *fiber.Ctx) error
}

type realtimeController struct {
	service service.IRealtimeService
}

func NewRealtimeController(service service.IRealtimeService) IRealtimeController {
	return &realtimeController{service: service}
}

func (c *realtimeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/realtime")
	h.Post("/session-token", c.CreateSessionToken)
}

func (c *realtimeController) CreateSessionToken(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSessionToken(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create realtime session token", res))
}
