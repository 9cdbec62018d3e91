package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/config"
)

// CORSMiddleware allows the admin console and storefront origins.
// ORIGIN_URL may hold a comma-separated list of extra origins.
func CORSMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:5173"}

	if config.AppConfig != nil && config.AppConfig.OriginURL != "" {
		for _, o := range strings.Split(config.AppConfig.OriginURL, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
