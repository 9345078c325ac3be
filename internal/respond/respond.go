// Package respond builds the wire envelope shared by every endpoint.
// Success carries data+count (change feeds add the watermark echo and
// server time); failure carries a message and never partial data.
package respond

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type listEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Count  int    `json:"count"`
}

type changeEnvelope struct {
	Status      string  `json:"status"`
	Data        any     `json:"data"`
	Count       int     `json:"count"`
	Since       *string `json:"since"`
	CurrentTime string  `json:"current_time"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// List writes a full-listing success envelope.
func List(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, listEnvelope{
		Status: "success",
		Data:   data,
		Count:  count,
	})
}

// Changes writes a delta-feed success envelope. since echoes the raw
// client watermark (null when the client sent none); current_time is the
// server clock at response time and is the client's next watermark.
func Changes(c *gin.Context, data any, count int, since *string) {
	c.JSON(http.StatusOK, changeEnvelope{
		Status:      "success",
		Data:        data,
		Count:       count,
		Since:       since,
		CurrentTime: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error writes the failure envelope. status is always the domain string
// "error"; the HTTP code carries the transport-level meaning.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, errorEnvelope{
		Status:  "error",
		Message: message,
	})
}

// Unauthorized writes the denial envelope and stops the pipeline before
// any catalog query runs.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorEnvelope{
		Status:  "error",
		Message: "unauthorized or token expired",
	})
}
