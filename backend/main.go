package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"inkpost/backend/global"
	"inkpost/backend/initialize"
	"inkpost/backend/server"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("startup failed")
	}
	defer func() {
		if err := app.Close(); err != nil {
			global.Logger.Error().Err(err).Msg("close")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global.Logger.Info().Str("env", app.Cfg.Server.Env).Str("db", app.Cfg.DB.Driver).Msg("inkpost backend starting")
	if err := server.Run(ctx, app.Cfg.Server.Host, app.Cfg.Server.Port, app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("http server")
	}
}
