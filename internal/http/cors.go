package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/allisson/serials/internal/config"
)

// sequenceAPIMethods are the verbs used by the /v1/sequences routes.
var sequenceAPIMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete}

// createCORSMiddleware returns nil unless CORS is enabled and at least one usable origin
// is configured. Identifiers are normally allocated by backend services, so it is off
// by default.
func createCORSMiddleware(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.CORSEnabled {
		return nil
	}

	origins, rejected := parseOrigins(cfg.CORSAllowOrigins)
	for _, origin := range rejected {
		logger.Warn("ignoring CORS origin without http(s) scheme", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     sequenceAPIMethods,
		AllowHeaders:     []string{"Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// parseOrigins splits a comma-separated origin list. Entries are trimmed, lose any
// trailing slash and are deduplicated in order; entries without an http(s) scheme are
// returned as rejected.
func parseOrigins(raw string) (origins, rejected []string) {
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(raw, ",") {
		origin := strings.TrimSuffix(strings.TrimSpace(part), "/")
		if origin == "" {
			continue
		}
		if !strings.HasPrefix(origin, "https://") && !strings.HasPrefix(origin, "http://") {
			rejected = append(rejected, origin)
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins, rejected
}
