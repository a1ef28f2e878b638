package main

import (
	appfx "Cashline/internal/fx"
	"Cashline/internal/logger"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		appfx.AppModule,
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		logger.Fatal().Err(err).Msg("Falha ao montar a aplicação")
	}
	app.Run()
}
