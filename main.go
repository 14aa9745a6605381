package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/api/handlers"
	"github.com/linesmerrill/dl-generator-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()
	defer zap.L().Sync()

	if err := a.Initialize(); err != nil { //initialize services and router
		zap.S().Fatalw("failed to initialize", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infow("dl-generator-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseUrl,
			"env", a.Config.Env,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	a.Scheduler.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("graceful shutdown failed", "error", err)
	}
	zap.S().Info("dl-generator-api stopped")
}
