package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"taskboard/internal/feed"
	"taskboard/internal/permission"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NamespaceResolver maps a board to the namespace its tasks live in.
type NamespaceResolver interface {
	Namespace(ctx context.Context, boardID uuid.UUID) (uuid.UUID, error)
}

// FeedHandler serves the live feeds over SSE. Every push carries the full
// current result set; clients replace, never merge. The subscription is
// torn down when the client disconnects, so switching boards on the
// client side cannot leave a stale task stream running.
type FeedHandler struct {
	hub           *feed.Hub
	collab        CollabAPI
	tasks         TaskAPI
	namespaces    NamespaceResolver
	notifications NotificationAPI
}

func NewFeedHandler(hub *feed.Hub, collab CollabAPI, tasks TaskAPI, namespaces NamespaceResolver, notifications NotificationAPI) *FeedHandler {
	return &FeedHandler{
		hub:           hub,
		collab:        collab,
		tasks:         tasks,
		namespaces:    namespaces,
		notifications: notifications,
	}
}

// stream runs the subscribe/re-query/emit loop until the client leaves.
func (h *FeedHandler) stream(c *gin.Context, topic string, snapshot func(ctx context.Context) (interface{}, error)) {
	ctx := c.Request.Context()
	signals, cancel := h.hub.Subscribe(ctx, topic)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	emit := func() bool {
		data, err := snapshot(ctx)
		if err != nil {
			return false
		}
		buf, err := json.Marshal(data)
		if err != nil {
			return false
		}
		c.SSEvent("update", string(buf))
		c.Writer.Flush()
		return true
	}

	if !emit() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			if !emit() {
				return
			}
		}
	}
}

func (h *FeedHandler) OwnBoards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.stream(c, feed.BoardsTopic(userID), func(ctx context.Context) (interface{}, error) {
		return h.collab.OwnBoards(ctx, userID)
	})
}

func (h *FeedHandler) SharedBoards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.stream(c, feed.SharedBoardsTopic(userID), func(ctx context.Context) (interface{}, error) {
		return h.collab.SharedBoards(ctx, userID)
	})
}

func (h *FeedHandler) Tasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.collab.RoleForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if role == permission.RoleNone {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this board"})
		return
	}

	ns, err := h.namespaces.Namespace(c.Request.Context(), boardID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.stream(c, feed.TasksTopic(ns, boardID), func(ctx context.Context) (interface{}, error) {
		return h.tasks.List(ctx, boardID, false)
	})
}

func (h *FeedHandler) Notifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.stream(c, feed.NotificationsTopic(userID), func(ctx context.Context) (interface{}, error) {
		return h.notifications.List(ctx, userID)
	})
}
