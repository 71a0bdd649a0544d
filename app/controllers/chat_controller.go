package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
	"github.com/buildmaster/storefront/pkg/logger"
	"github.com/buildmaster/storefront/pkg/middleware"
	"github.com/buildmaster/storefront/pkg/session"
	"github.com/buildmaster/storefront/pkg/ws"
)

// ChatController exposes the shopping assistant over REST and WebSocket.
// Both transports share the same session-keyed conversation, so a guided
// flow started over REST continues on the socket.
type ChatController struct {
	service *services.ChatService
	hub     *ws.Hub
}

func NewChatController() *ChatController {
	ct := &ChatController{
		service: services.NewChatService(),
		hub:     ws.NewHub(),
	}
	ct.hub.OnMessage = ct.onSocketMessage
	go ct.hub.Run()
	return ct
}

// Message handles POST /api/chat.
func (ct *ChatController) Message(c *ctx.Context) {
	var input struct {
		Message string `json:"message" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	sessionID := ct.conversationID(c.R)
	ct.touchGuestSession(c)

	reply, err := ct.service.Handle(sessionID, input.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(reply)
}

// Socket handles GET /api/chat/ws, upgrading to a WebSocket where each
// text frame is a user message and each reply frame is the assistant's
// JSON answer.
func (ct *ChatController) Socket(c *ctx.Context) {
	sessionID := ct.conversationID(c.R)
	ct.touchGuestSession(c)
	ws.Upgrade(c.W, c.R, ct.hub, sessionID)
}

func (ct *ChatController) onSocketMessage(_ *ws.Hub, msg ws.Message) {
	reply, err := ct.service.Handle(msg.Client.SessionID, string(msg.Data))
	if err != nil {
		msg.Client.Send([]byte(`{"error":"` + err.Error() + `"}`))
		return
	}

	raw, err := json.Marshal(reply)
	if err != nil {
		logger.Error("chat: marshal socket reply", "error", err)
		return
	}
	msg.Client.Send(raw)
}

// conversationID keys the chat session: the user ID for authenticated
// customers, the session cookie for guests. Logging in therefore starts a
// fresh conversation.
func (ct *ChatController) conversationID(r *http.Request) string {
	if userID, ok := middleware.UserIDFromCtx(r); ok {
		return fmt.Sprintf("user:%d", userID)
	}
	return "guest:" + session.FromCtx(r).ID()
}

// touchGuestSession persists the session cookie so a guest keeps the same
// conversation across requests.
func (ct *ChatController) touchGuestSession(c *ctx.Context) {
	if _, ok := middleware.UserIDFromCtx(c.R); ok {
		return
	}
	sess := session.FromCtx(c.R)
	if _, seen := sess.Get("chat_started"); !seen {
		sess.Set("chat_started", true)
		if err := sess.Save(c.W); err != nil {
			logger.Warn("chat: session save failed", "error", err)
		}
	}
}
