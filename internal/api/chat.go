package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenmarket/fridgechef/internal/service"
)

// ChatHandler handles conversational turns.
type ChatHandler struct {
	conv   *service.ConversationService
	logger *zap.Logger
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(conv *service.ConversationService, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{conv: conv, logger: logger}
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		chat.POST("", h.Chat)
		chat.POST("/:conversation", h.Chat)
	}
}

// Chat processes one structured intent for a conversation. A missing
// conversation id starts a new conversation. Recoverable conversational
// outcomes (no match, invalid token, ambiguous input, dataset unavailable)
// are normal replies, not transport errors.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversation := c.Param("conversation")
	if conversation == "" {
		conversation = uuid.NewString()
	}

	reply, err := h.conv.HandleIntent(c.Request.Context(), conversation, toServiceRequest(req))
	if err != nil && !service.Recoverable(err) {
		h.logger.Error("chat turn failed",
			zap.String("conversation", conversation), zap.String("intent", req.Intent), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Conversation: conversation,
		Message:      reply.Message,
		State:        string(reply.State),
		Choices:      reply.Choices,
		Recipe:       reply.Recipe,
	})
}
