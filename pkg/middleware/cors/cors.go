package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var staticHeaders = map[string]string{
	"Vary":                          "Origin",
	"Access-Control-Expose-Headers": "X-Request-ID, X-Cache, Content-Disposition",
	"Access-Control-Allow-Headers":  "Authorization, Content-Type, X-Request-ID",
	"Access-Control-Allow-Methods":  "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Max-Age":        "600",
}

// New allows the listed origins, or any origin when the list is empty. Credentials are only
// advertised for an explicit allow-list.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[normalize(origin)] = struct{}{}
	}
	allowAll := len(allowed) == 0

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range staticHeaders {
			h.Set(k, v)
		}

		switch origin := c.GetHeader("Origin"); {
		case origin == "" && allowAll:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin == "":
		case allowAll:
			h.Set("Access-Control-Allow-Origin", origin)
		default:
			if _, ok := allowed[normalize(origin)]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func normalize(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}
