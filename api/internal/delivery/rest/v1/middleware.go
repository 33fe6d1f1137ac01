package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"payout/api/internal/domain"
	"payout/api/internal/infra/cache"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const CTX_USER_ID = "user_id"

const DEFAULT_LIMIT = 20
const EXPIRATION_SECONDS = 30

// returns true if rate limit is exceeded
func withdrawalRateLimit(userId string, limit int) bool {
	var expiration = time.Second * time.Duration(EXPIRATION_SECONDS)

	count := cache.WithdrawalRateLimitsCache.LoadOrSet(userId, 1, expiration)
	if count == nil {
		fmt.Println("count == nil")
		return true
	}

	countInt, ok := count.(int)
	if !ok {
		fmt.Println("!ok")
		return true
	}

	if countInt > limit {
		return true
	}

	cache.WithdrawalRateLimitsCache.Set(userId, countInt+1, expiration)
	return false
}

// sessionMiddleware resolves the caller from the bearer token. The token
// subject is the user id, routes behind this middleware read it with
// sessionUserId.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			responseErr(c, http.StatusUnauthorized, domain.ErrMsgUnauthenticated, "")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		var claims jwt.StandardClaims
		_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(h.config.JwtKey), nil
		})
		if err != nil || claims.Subject == "" {
			responseErr(c, http.StatusUnauthorized, domain.ErrMsgUnauthenticated, "")
			return
		}

		c.Set(CTX_USER_ID, claims.Subject)
		c.Next()
	}
}

func sessionUserId(c *gin.Context) string {
	return c.GetString(CTX_USER_ID)
}

func (h *Handler) adminAccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.config.PrivateKey != c.Request.Header.Get("Access") {
			responseErr(c, http.StatusUnauthorized, "access denied", "")
			c.Abort()
			return
		}
		c.Next()

	}

}
