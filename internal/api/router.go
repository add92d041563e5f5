// Package api assembles the HTTP surface: artworks, exhibitions, the
// websocket event stream and the health endpoints.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"museumhub/internal/artwork"
	"museumhub/internal/events"
	"museumhub/internal/exhibition"
	"museumhub/internal/health"
)

type Deps struct {
	Artworks    *artwork.Service
	Exhibitions *exhibition.Store
	Hub         *events.Hub
	DB          *sql.DB         // optional; checked by /ready
	Monitor     *health.Monitor // optional; source status in /ready
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	router.Use(corsMiddleware(d.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", readyHandler(d))

	artwork.NewHandler(d.Artworks).RegisterRoutes(router.Group("/artworks"))
	exhibition.NewHandler(d.Exhibitions).RegisterRoutes(router.Group("/exhibitions"))
	if d.Hub != nil {
		router.GET("/ws", events.WSHandler(d.Hub, d.CORSOrigins))
	}
	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// readyHandler reports not ready when the database does not answer. Source
// outages are reported but do not fail readiness: listings degrade instead.
func readyHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ready"}
		if d.Hub != nil {
			stats := d.Hub.Stats()
			body["tcp_clients"] = stats.TCPClients
			body["ws_clients"] = stats.WSClients
		}
		if d.Monitor != nil {
			sources := gin.H{}
			for src, err := range d.Monitor.Snapshot() {
				if err != nil {
					sources[string(src)] = err.Error()
				} else {
					sources[string(src)] = "ok"
				}
			}
			body["sources"] = sources
		}

		if d.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.DB.PingContext(ctx); err != nil {
				body["status"] = "not_ready"
				body["db_error"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
			body["db"] = "ok"
		}
		c.JSON(http.StatusOK, body)
	}
}
