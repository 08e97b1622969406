package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benpastel/qwopper-bopper/config"
	"github.com/benpastel/qwopper-bopper/match"
	"github.com/benpastel/qwopper-bopper/network"
)

func main() {
	cfg := config.Load()
	manager := match.NewManager()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: network.NewServer(manager).Router(),
	}

	go func() {
		log.Printf("serving websocket server on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// heroku sends SIGTERM when shutting down a dyno; exit gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	manager.StopAll()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
