package handlers

import (
	"context"
	"net/http"
	"strconv"

	"diagnosis-service/internal/catalog"
	"diagnosis-service/internal/service"

	"github.com/gin-gonic/gin"
)

type DiagnosisHandler struct {
	Service *service.DiagnosisService
	History *service.HistoryService
}

func NewDiagnosisHandler(s *service.DiagnosisService, h *service.HistoryService) *DiagnosisHandler {
	return &DiagnosisHandler{Service: s, History: h}
}

// ListTemplates returns the question bank metadata and questions.
// Weights are fixed client-known data, so nothing is hidden here.
func (h *DiagnosisHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.All())
}

func (h *DiagnosisHandler) GetTemplate(c *gin.Context) {
	tpl, err := catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// SubmitAttempt records one completed diagnosis for a signed-in user
// or a legacy guest device.
func (h *DiagnosisHandler) SubmitAttempt(c *gin.Context) {
	var in service.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, deviceID := authFrom(c)
	auth := service.AuthContext{UserID: userID, DeviceID: deviceID}

	attempt, warning, err := h.Service.Submit(context.Background(), auth, in)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"attempt": attempt}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusCreated, resp)
}

// MyLatest returns the caller's newest attempt across templates.
func (h *DiagnosisHandler) MyLatest(c *gin.Context) {
	userID, deviceID := authFrom(c)
	attempt, err := h.History.LatestAttempt(context.Background(), service.AuthContext{UserID: userID, DeviceID: deviceID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// MyHistory returns every attempt of the signed-in user, newest first.
func (h *DiagnosisHandler) MyHistory(c *gin.Context) {
	userID, _ := authFrom(c)
	attempts, err := h.History.FullHistory(context.Background(), service.AuthContext{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// TemplateHistory returns the caller's attempts for one template. The
// limit query caps how many are returned; the clients show 1 by
// default with an expand toggle.
func (h *DiagnosisHandler) TemplateHistory(c *gin.Context) {
	userID, deviceID := authFrom(c)
	auth := service.AuthContext{UserID: userID, DeviceID: deviceID}
	attempts, err := h.History.GetHistory(context.Background(), auth, c.Param("templateId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 && limit < len(attempts) {
			attempts = attempts[:limit]
		}
	}
	c.JSON(http.StatusOK, attempts)
}
