package utils

import "github.com/gin-gonic/gin"

// ErrorBody is the structured error envelope: every failure carries a
// machine-readable kind next to the human message.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, kind, message string) {
	c.JSON(code, gin.H{"success": false, "error": ErrorBody{Kind: kind, Message: message}})
}
