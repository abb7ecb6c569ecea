package handler

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
// success -> {"success": true, "data": ...}
// failure -> {"success": false, "error": "..."}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
