package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /api/health. It checks nothing beyond the process being up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Attendance Tracker is running",
	})
}
