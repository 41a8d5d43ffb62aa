package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/cors"
	"github.com/sut-badminton/registration/config"
)

// CORS allows the configured front-end origins. Localhost and the opaque
// "null" origin (pages opened from file://) are only allowed when enabled.
func CORS(cfg config.CORSConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	originAllowed := OriginChecker(cfg)

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			if originAllowed(origin) {
				return true
			}
			logger.Warn("CORS: origin not allowed", slog.String("origin", origin))
			return false
		},
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// OriginChecker is shared by CORS and the websocket upgrader.
func OriginChecker(cfg config.CORSConfig) func(origin string) bool {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}
	return func(origin string) bool {
		return OriginAllowed(cfg, allowed, origin)
	}
}

func OriginAllowed(cfg config.CORSConfig, allowed map[string]bool, origin string) bool {
	if allowed[origin] {
		return true
	}
	if origin == "null" {
		return cfg.AllowNullOrigin
	}
	if cfg.AllowLocalhost {
		if u, err := url.Parse(origin); err == nil {
			switch u.Hostname() {
			case "localhost", "127.0.0.1", "::1":
				return true
			}
		}
	}
	return false
}
