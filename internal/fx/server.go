package fx

import (
	"context"
	"errors"
	"net"
	"net/http"

	"Cashline/config"
	"Cashline/internal/logger"
	"Cashline/internal/middleware"
	"Cashline/internal/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		startServer,
	),
)

func newRouter(cfg *config.Config, handler *routes.Handler, limiter *middleware.RateLimiter) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	routes.Register(router, handler, limiter)
	return router
}

func startServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, router *gin.Engine) {
	serverAddr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", serverAddr)
			if err != nil {
				return err
			}

			logger.Info().
				Str("address", serverAddr).
				Str("environment", cfg.App.Environment).
				Msg("Servidor iniciando")

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error().Err(err).Msg("Falha no servidor HTTP")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return srv.Shutdown(ctx)
		},
	})
}
