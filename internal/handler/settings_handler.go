package handler

import (
	"net/http"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings SettingsAPI
}

func NewSettingsHandler(settings SettingsAPI) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type FilterConfigRequest struct {
	Statuses     []string `json:"statuses"`
	Priorities   []string `json:"priorities"`
	Tags         []string `json:"tags"`
	ViewMode     string   `json:"view_mode" binding:"omitempty,oneof=kanban calendar"`
	ShowArchived bool     `json:"show_archived"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cfg, err := h.settings.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *SettingsHandler) Put(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FilterConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cfg := &model.FilterConfig{
		UserID:       userID,
		Statuses:     req.Statuses,
		Priorities:   req.Priorities,
		Tags:         req.Tags,
		ViewMode:     req.ViewMode,
		ShowArchived: req.ShowArchived,
	}
	if err := h.settings.Save(c.Request.Context(), cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}
