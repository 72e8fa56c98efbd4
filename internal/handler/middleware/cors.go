package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"library-circulation/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browser clients read these on created books and checkouts, on 503 responses,
// and when reporting a failed request.
var requiredExposeHeaders = []string{"Location", "Retry-After", requestIDHeader}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS configured",
		slog.Any("origins", cfg.AllowOrigins),
		slog.Bool("credentials", cfg.AllowCredentials))
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := make([]string, 0, len(configured)+len(required))
	for _, h := range append(slices.Clone(configured), required...) {
		h = http.CanonicalHeaderKey(h)
		if h != "" && !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
