package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the operator key.
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyChecker validates operator keys.
type AdminKeyChecker interface {
	Enabled() bool
	Verify(key string) bool
}

// AdminRequired guards operator endpoints. Without a configured key the
// admin routes behave as if they did not exist.
func AdminRequired(checker AdminKeyChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker == nil || !checker.Enabled() {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		if !checker.Verify(c.GetHeader(AdminKeyHeader)) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
