package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// MessageHandler serves support-chat history. Live messages travel over the
// channel, not REST.
type MessageHandler struct {
	chat ports.ChatService
}

func NewMessageHandler(chat ports.ChatService) *MessageHandler {
	return &MessageHandler{chat: chat}
}

// History returns the caller's own conversation, oldest first.
//
// @Summary      Conversation history
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        userEmail  path      string  true   "Caller email"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size (max 500)"
// @Success      200        {array}   domain.Message
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Router       /messages/{userEmail} [get]
func (h *MessageHandler) History(c echo.Context) error {
	return h.history(c)
}

// AdminHistory returns any user's conversation for the support desk.
//
// @Summary      Conversation history (admin)
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        userEmail  path      string  true   "User email"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size (max 500)"
// @Success      200        {array}   domain.Message
// @Failure      403        {object}  map[string]string
// @Router       /admin/messages/{userEmail} [get]
func (h *MessageHandler) AdminHistory(c echo.Context) error {
	return h.history(c)
}

func (h *MessageHandler) history(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	msgs, err := h.chat.MessageHistory(c.Request().Context(), c.Param("userEmail"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}
