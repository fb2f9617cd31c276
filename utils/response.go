package utils

import "github.com/gin-gonic/gin"

// The API speaks two dialects, kept deliberately: validation and auth
// failures are JSON objects with an "error" field, while CRUD outcomes are
// plain text sentences.

// ErrorJSON writes a JSON error body of the form {"error": message}.
func ErrorJSON(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// Text writes a plain-text body.
func Text(ctx *gin.Context, status int, message string) {
	ctx.String(status, message)
}
