package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-media-service/internal/models"
	"social-media-service/internal/observability"
	"social-media-service/internal/repositories"
	"social-media-service/internal/services"
	"social-media-service/internal/telemetry"
	"social-media-service/internal/ws"
)

// MessageHandler manages message CRUD endpoints.
//
// Not-found on GET/DELETE by id answers 200 with an empty body while
// not-found on PATCH answers 400. The asymmetry is part of the API
// contract and is covered by the handler tests.
type MessageHandler struct {
	messages *services.MessageService
	hub      *ws.Hub
	emitter  *telemetry.EventEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages *services.MessageService, hub *ws.Hub, emitter *telemetry.EventEmitter) *MessageHandler {
	return &MessageHandler{messages: messages, hub: hub, emitter: emitter}
}

// Post stores a new message. Text must be 1..255 characters and the
// posting account must exist; either failure answers 400 with an empty
// body.
func (h *MessageHandler) Post(c *gin.Context) {
	var msg models.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if !validMessageText(msg.MessageText) {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.messages.Post(c.Request.Context(), msg)
	if err != nil {
		if !errors.Is(err, repositories.ErrAccountNotFound) {
			log.Printf("create message failed: %v", err)
		}
		c.Status(http.StatusBadRequest)
		return
	}

	observability.IncMessagesCreated()
	h.hub.BroadcastCreated(created)
	h.emitter.Emit(c.Request.Context(), "message.created", requestIDFromContext(c), map[string]any{
		"message_id": created.MessageID,
		"posted_by":  created.PostedBy,
	})
	c.JSON(http.StatusOK, created)
}

// List returns every message. Persistence failures are logged and
// answered with an empty array, never an error status.
func (h *MessageHandler) List(c *gin.Context) {
	msgs, err := h.messages.List(c.Request.Context())
	if err != nil {
		log.Printf("list messages failed: %v", err)
		msgs = nil
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}

// ListByAccount returns every message posted by the path account.
func (h *MessageHandler) ListByAccount(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("account_id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	msgs, err := h.messages.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		log.Printf("list messages by account failed: %v", err)
		msgs = nil
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}

// GetByID returns the message, or 200 with an empty body when there is
// no such row.
func (h *MessageHandler) GetByID(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	msg, err := h.messages.Get(c.Request.Context(), messageID)
	if err != nil {
		if !errors.Is(err, repositories.ErrMessageNotFound) {
			log.Printf("get message failed: %v", err)
		}
		c.Status(http.StatusOK)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// Delete removes the message and returns the deleted row, or 200 with
// an empty body when nothing was removed.
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	deleted, err := h.messages.Delete(c.Request.Context(), messageID)
	if err != nil {
		if !errors.Is(err, repositories.ErrMessageNotFound) {
			log.Printf("delete message failed: %v", err)
		}
		c.Status(http.StatusOK)
		return
	}

	h.hub.BroadcastDeleted(deleted.PostedBy, deleted.MessageID)
	h.emitter.Emit(c.Request.Context(), "message.deleted", requestIDFromContext(c), map[string]any{
		"message_id": deleted.MessageID,
		"posted_by":  deleted.PostedBy,
	})
	c.JSON(http.StatusOK, deleted)
}

// Update replaces the message text. Invalid text answers 400; so does
// an id with no row behind it.
func (h *MessageHandler) Update(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req struct {
		MessageText string `json:"message_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if !validMessageText(req.MessageText) {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.messages.UpdateText(c.Request.Context(), messageID, req.MessageText)
	if err != nil {
		if !errors.Is(err, repositories.ErrMessageNotFound) {
			log.Printf("update message failed: %v", err)
		}
		c.Status(http.StatusBadRequest)
		return
	}

	h.hub.BroadcastUpdated(updated)
	h.emitter.Emit(c.Request.Context(), "message.updated", requestIDFromContext(c), map[string]any{
		"message_id": updated.MessageID,
		"posted_by":  updated.PostedBy,
	})
	c.JSON(http.StatusOK, updated)
}
