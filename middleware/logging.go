package middleware

import (
	"strconv"
	"time"

	"attendance-tracker/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one line per request with status, latency, request id and caller.
func AccessLog(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		user := "-"
		if id, ok := c.Get(UserIDKey); ok {
			if v, ok := id.(uint); ok {
				user = strconv.FormatUint(uint64(v), 10)
			}
		}
		l.Printf("%s %s %d %s request_id=%s user=%s",
			c.Request.Method, path, c.Writer.Status(), time.Since(start), c.GetString(RequestIDKey), user)
	}
}
