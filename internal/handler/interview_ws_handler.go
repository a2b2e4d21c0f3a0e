package handler

import (
	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/pkg/serverutils"
	internalWS "github.com/dhanushgc/HireMind/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// InterviewWsHandler streams a session's domain events to the browser.
type InterviewWsHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewInterviewWsHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *InterviewWsHandler {
	return &InterviewWsHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *InterviewWsHandler) ServeWs(c *fiber.Ctx) error {
	candidateId := c.Query("candidate_id")
	jobId := c.Query("job_id")
	if candidateId == "" || jobId == "" {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "candidate_id and job_id are required"))
	}

	// Browsers cannot set headers on the handshake, so the token may come as ?token=
	if h.jwtSecret != "" {
		claims, err := serverutils.ParseToken(h.jwtSecret, serverutils.BearerToken(c))
		if err != nil {
			h.logger.Warn("WsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
			return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}
		if claimed, ok := claims["candidate_id"].(string); ok && claimed != "" && claimed != candidateId {
			return c.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(fiber.StatusForbidden, "candidate mismatch"))
		}
	}

	sessionKey := constant.SessionKey(candidateId, jobId)

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("WsHandler", "Starting WebSocket session", map[string]interface{}{"session_key": sessionKey})
			internalWS.ServeWs(h.hub, conn, sessionKey)
			h.logger.Info("WsHandler", "WebSocket session ended", map[string]interface{}{"session_key": sessionKey})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket route.
func (h *InterviewWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/interview/v1/ws", h.ServeWs)
}
