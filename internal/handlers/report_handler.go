package handlers

import (
	"context"
	"net/http"
	"strconv"

	"diagnosis-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(s *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// ListWeeks returns the selectable report weeks, ascending. A
// partnerless user gets an empty list.
func (h *ReportHandler) ListWeeks(c *gin.Context) {
	userID, _ := authFrom(c)
	weeks, err := h.Service.AvailableWeeks(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "리포트 주차 목록을 불러오지 못했어요."})
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// GetWeek returns one week's report, with the previous week's report
// attached when it is already in the viewing cache.
func (h *ReportHandler) GetWeek(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Param("year"))
	week, err2 := strconv.Atoi(c.Param("week"))
	if err1 != nil || err2 != nil || week < 1 || week > 53 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or week"})
		return
	}
	userID, _ := authFrom(c)

	report, err := h.Service.GetReport(context.Background(), userID, year, week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "주간 리포트를 불러오지 못했어요."})
		return
	}
	previous, _ := h.Service.PreviousReport(context.Background(), userID, year, week)

	resp := gin.H{"report": report}
	if previous != nil {
		resp["previous_report"] = previous
	}
	c.JSON(http.StatusOK, resp)
}
