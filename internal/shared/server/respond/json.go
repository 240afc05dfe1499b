package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success wrapper returned by every JSON endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSON writes a success envelope with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, Envelope{Success: true, Data: payload})
}

// OK writes a 200 OK success envelope.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created success envelope.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}

// Message writes a success envelope carrying only a message.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, Message: message})
}
