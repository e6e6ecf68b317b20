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

	"github.com/gin-gonic/gin"
	"github.com/schedulemanager/internal/config"
	"github.com/schedulemanager/internal/db"
	"github.com/schedulemanager/internal/handler"
	"github.com/schedulemanager/internal/router"
	"github.com/schedulemanager/internal/service"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化账户库，失败时无法继续
	if err := db.Init(cfg.AccountsDBPath); err != nil {
		log.Fatalf("failed to initialize account store: %v", errors.Join(service.ErrStorageUnavailable, err))
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}

	accounts := service.NewAccountService(db.DB, cfg.DataDir)
	session := service.NewSession(accounts)
	prefs := service.NewLoginPreferenceStore(cfg.LoginConfigPath)
	api := handler.NewAPI(session, prefs)

	r := router.SetupRouter(api, cfg.SessionSecret)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.WithCORS(r, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", service.AppHeader(), cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := session.Close(); err != nil {
		log.Printf("close session: %v", err)
	}
	if err := db.Close(db.DB); err != nil {
		log.Printf("close account store: %v", err)
	}
}
