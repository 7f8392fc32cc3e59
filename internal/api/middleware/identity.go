package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader carries the authenticated user id set by the upstream
	// authenticator. The API trusts it; there is no session handling here.
	UserIDHeader = "X-User-ID"

	// UserIDKey is the key used to store the user id in the context
	UserIDKey = "user_id"
)

// Identity middleware resolves the owner of the request. Requests without a
// valid user id header are rejected before reaching any handler.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing " + UserIDHeader + " header",
				},
			})
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid " + UserIDHeader + " header",
				},
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user id from the gin context
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(UserIDKey); exists {
		if userID, ok := id.(int64); ok {
			return userID
		}
	}
	return 0
}
