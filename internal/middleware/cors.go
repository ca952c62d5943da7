package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the web client origins to call the API with a
// bearer token and an idempotency key.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization", idempotencyHeader)
	cc.ExposeHeaders = []string{idempotencyReplayed}
	cc.MaxAge = 10 * time.Minute

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = allowedOrigins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}
