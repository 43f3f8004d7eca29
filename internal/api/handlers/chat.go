// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/supporthub/chat-routing-service/internal/api/dto"
	"github.com/supporthub/chat-routing-service/internal/api/middleware"
	"github.com/supporthub/chat-routing-service/internal/domain/models"
	"github.com/supporthub/chat-routing-service/internal/services/chat"
)

// ChatHandler handles chat session creation and polling.
type ChatHandler struct {
	chatService chat.Service
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService chat.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// CreateSession handles POST /sessions.
// @Summary Create a chat session
// @Description Creates a queued chat session and hands its id to the routing core, or reports busy when no agent is available
// @Tags Sessions
// @Produce json
// @Success 200 {object} dto.CreateSessionResponse "Session created or all agents busy"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /sessions [post]
func (h *ChatHandler) CreateSession(c *gin.Context) {
	logger := middleware.GetRequestLogger(c)

	session, busy, err := h.chatService.CreateSession(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to create chat session")
		middleware.HandleError(c, err)
		return
	}

	if busy {
		c.JSON(http.StatusOK, dto.CreateSessionResponse{
			Status:  dto.SessionStatusBusy,
			Message: "All agents are currently busy.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.CreateSessionResponse{
		Status:    dto.SessionStatusAvailable,
		Message:   "Chat session created. Start polling.",
		SessionID: session.ID.String(),
	})
}

// Poll handles POST /sessions/:sessionId/poll.
// @Summary Poll a chat session
// @Description Refreshes the session's liveness clock and returns its current state
// @Tags Sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.PollResponse "Current session state"
// @Failure 400 {object} dto.ErrorResponse "Invalid session id"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/poll [post]
func (h *ChatHandler) Poll(c *gin.Context) {
	logger := middleware.GetRequestLogger(c)

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid session id",
		})
		return
	}

	session, err := h.chatService.Poll(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to poll chat session")
		middleware.HandleError(c, err)
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Session not found or has expired.",
		})
		return
	}

	c.JSON(http.StatusOK, pollResponse(session))
}

func pollResponse(session *models.ChatSession) dto.PollResponse {
	switch session.Status {
	case models.StatusQueued:
		return dto.PollResponse{
			Status:  dto.SessionStatusPending,
			Message: "Your session is in queue. Please wait...",
		}
	case models.StatusAssigned:
		return dto.PollResponse{
			Status:  dto.SessionStatusAssigned,
			Message: "You have been connected to an agent.",
			Agent:   session.AssignedAgentName,
		}
	default:
		return dto.PollResponse{
			Status:  session.Status.String(),
			Message: "Session status updated.",
		}
	}
}
