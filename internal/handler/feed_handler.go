package handler

import (
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/serverutils"
	internalWS "ai-interview-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedHandler exposes the read-only observer feed: a short-lived token mint
// plus the websocket endpoint it unlocks.
type FeedHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewFeedHandler(hub *internalWS.Hub, log logger.ILogger) *FeedHandler {
	return &FeedHandler{hub: hub, logger: log}
}

// CreateToken mints an observer token scoped to one session.
func (h *FeedHandler) CreateToken(c *fiber.Ctx) error {
	var req dto.FeedTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	token, err := serverutils.MintFeedToken(req.SessionId)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Success create feed token", dto.FeedTokenResponse{Token: token}))
}

// ServeWs upgrades an authenticated observer onto the session feed.
func (h *FeedHandler) ServeWs(c *fiber.Ctx) error {
	sessionId, _ := c.Locals("session_id").(string)
	if sessionId == "" {
		return fiber.ErrUnauthorized
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("FeedHandler", "Observer connected", map[string]interface{}{"session_id": sessionId})
			internalWS.ServeWs(h.hub, conn, sessionId)
			h.logger.Info("FeedHandler", "Observer disconnected", map[string]interface{}{"session_id": sessionId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *FeedHandler) RegisterRoutes(router fiber.Router) {
	feed := router.Group("/feed")
	feed.Post("/token", h.CreateToken)
	feed.Get("/:session_id", serverutils.FeedJwtMiddleware, h.ServeWs)
}
