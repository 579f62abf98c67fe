package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports service liveness. It deliberately does not probe the
// inference backends; their quotas are too expensive to spend on checks.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "scenevoice",
	})
}
