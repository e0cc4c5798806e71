package sse

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stream writes each message from ch as a single SSE event:
//
//	data: <msg>\n\n
//
// and returns when the channel is closed. Callers own the channel lifetime;
// closing it on client disconnect ends the stream.
func Stream(c *gin.Context, ch <-chan string) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	for msg := range ch {
		_, _ = c.Writer.Write([]byte("data: " + msg + "\n\n"))
		flusher.Flush()
	}
}
