package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pharmacare/pharmacare-api/internal/config"
)

var defaultAllowedHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"X-CSRF-Token",
	"X-Request-ID",
	"X-Branch-ID",
	"Origin",
	"Idempotency-Key",
}

// CORSMiddleware builds the CORS policy from configuration, falling back to
// development defaults for anything unset. Idempotency-Key and X-Branch-ID
// are always allowed since checkout and branch resolution depend on them.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://127.0.0.1:3000",
		}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}

	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = defaultAllowedHeaders
	} else {
		corsConfig.AllowHeaders = appendMissing(corsConfig.AllowHeaders, "Idempotency-Key", "X-Branch-ID")
	}

	return cors.New(corsConfig)
}

func appendMissing(headers []string, required ...string) []string {
	for _, want := range required {
		found := false
		for _, h := range headers {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			headers = append(headers, want)
		}
	}
	return headers
}
