package http

import (
	"context"
	stdhttp "net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/adapters/signal"
	"github.com/dkeye/SwiftChat/internal/app"
	"github.com/dkeye/SwiftChat/internal/app/orch"
	"github.com/dkeye/SwiftChat/internal/config"
	"github.com/dkeye/SwiftChat/internal/domain"
	"github.com/dkeye/SwiftChat/internal/metrics"
)

const healthText = "200 - OK - SwiftChat backend Running"

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware tags each browser with a long-lived cookie so its
// successive connections can be correlated in logs.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get("client_token").(string)
		if token == "" {
			token = genClientToken()
			session.Set("client_token", token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set("client_token", token)
		c.Next()
	}
}

type Deps struct {
	Orch     *orch.Orchestrator
	Sessions *app.Sessions
	Metrics  *metrics.Metrics
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("SwiftChatSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, healthText)
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	registry := deps.Orch.Registry
	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, gin.H{"rooms": registry.ListRooms()})
	})

	api.GET("/room/users/:roomId", func(c *gin.Context) {
		id := domain.RoomID(c.Param("roomId"))
		c.JSON(stdhttp.StatusOK, gin.H{"users": registry.ListMembers(id)})
	})

	api.GET("/stats", func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, gin.H{
			"rooms":       registry.RoomCount(),
			"connections": deps.Sessions.Count(),
		})
	})

	ctrl := signal.NewSignalWSController(deps.Orch, deps.Sessions, cfg)
	api.GET("/ws", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("client", c.GetString("client_token")).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}

// WithCORS restricts cross-origin access to the configured origins.
func WithCORS(cfg *config.Config, h stdhttp.Handler) stdhttp.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{stdhttp.MethodGet, stdhttp.MethodPost},
		AllowCredentials: true,
	}).Handler(h)
}
