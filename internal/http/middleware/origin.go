package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrOriginForbidden is recorded on the Gin context when a cross-origin
// request comes from an origin outside the allowlist.
var ErrOriginForbidden = errors.New("origin not allowed")

// OriginGuard rejects requests whose Origin header is set and not in
// allowed. It records ErrOriginForbidden with c.Error and aborts; the
// terminal error handler renders the response. An empty allowlist admits
// every origin.
func OriginGuard(allowed []string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if len(set) == 0 || origin == "" {
			c.Next()
			return
		}
		if _, ok := set[origin]; ok {
			c.Next()
			return
		}
		_ = c.Error(ErrOriginForbidden)
		c.Status(http.StatusForbidden)
		c.Abort()
	}
}
