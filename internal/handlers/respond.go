package handlers

import (
	"net/http"

	"diagnosis-service/internal/apperr"

	"github.com/gin-gonic/gin"
)

// conflictCodes are validation failures that read as "you cannot do
// this right now" rather than "your input is malformed".
var conflictCodes = map[string]bool{
	"already_completed":  true,
	"submit_in_progress": true,
	"submit_superseded":  true,
}

func respondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status := http.StatusBadRequest
		if conflictCodes[code] {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": code})
	case apperr.KindPersistence:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": code})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func authFrom(c *gin.Context) (userID, deviceID string) {
	return c.GetHeader("X-User-ID"), c.GetHeader("X-Device-ID")
}
