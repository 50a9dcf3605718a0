package handlers

import (
	"context"
	"net/http"

	"diagnosis-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartSession opens a questionnaire session at question 0. Starting a
// single-completion template a second time answers 409.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req struct {
		TemplateID string `json:"template_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	userID, _ := authFrom(c)
	session, err := h.Service.Start(context.Background(), service.AuthContext{UserID: userID}, req.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session":   session,
		"next_step": "POST /answer with the value of question 0",
	})
}

// SubmitAnswer records one answer. The final answer triggers scoring
// and persistence; the response then carries the completed attempt.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		Value *float64 `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer format", "details": err.Error()})
		return
	}
	userID, _ := authFrom(c)
	auth := service.AuthContext{UserID: userID}

	outcome, result, err := h.Service.Answer(context.Background(), auth, c.Param("id"), *req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{
		"question_index": outcome.QuestionIndex,
		"state":          outcome.State,
	}
	if result != nil {
		resp["result"] = result
		if result.Warning != "" {
			resp["warning"] = result.Warning
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Resubmit retries a submission that failed, from the last question
// with the answers intact.
func (h *SessionHandler) Resubmit(c *gin.Context) {
	userID, _ := authFrom(c)
	result, err := h.Service.Resubmit(context.Background(), service.AuthContext{UserID: userID}, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetStatus returns the persisted session state.
func (h *SessionHandler) GetStatus(c *gin.Context) {
	userID, _ := authFrom(c)
	session, err := h.Service.Status(context.Background(), service.AuthContext{UserID: userID}, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
