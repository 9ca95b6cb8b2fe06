package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"garchvar/core"
	"garchvar/fit"
	"garchvar/logger"
	r "garchvar/repos"
)

func main() {
	// initialize context and signal handler, listen for interrupt and term signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// load in environment variables from .env file
	envLoadErr := godotenv.Load()

	log := logger.New(logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	})
	if envLoadErr != nil {
		log.Warn().Err(envLoadErr).Msg(".env not loaded")
	}

	// run history persistence is optional, the analyzer works without it
	var pg *r.Postgres
	if url := os.Getenv("DATABASE_URL"); url != "" {
		var err error
		pg, err = r.GetPostgresConnection(ctx, url)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pg.Close()
	} else {
		log.Warn().Msg("DATABASE_URL not set, running without run history")
	}

	sc := &core.ServiceContext{
		Context:  ctx,
		Postgres: pg,
		Fitter:   fit.NewMLEFitter(),
		Log:      log,
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = core.DefaultAddr
	}

	// get http server, makes all of the endpoints and routes
	s := core.GetHttpServer(sc, addr)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.Addr).Msg("starting GARCH analyzer server")
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// waits here until the context is closed (ie, ctrl+C), then gives the
		// server 10 seconds to shut down gracefully
		<-gctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}

	log.Info().Msg("server stopped successfully")
}
