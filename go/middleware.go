package orderserver

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request identifier in and out.
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestID echoes a caller supplied X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func requestLogAttrs(c *gin.Context, attrs ...slog.Attr) []slog.Attr {
	return append(attrs,
		slog.String("request.id", requestID(c)),
		slog.String("http.route", c.FullPath()),
	)
}
