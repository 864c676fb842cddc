package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xxpisal/flower-shop/internal/config"
	"github.com/xxpisal/flower-shop/internal/db"
	"github.com/xxpisal/flower-shop/internal/events"
	"github.com/xxpisal/flower-shop/internal/httpserver"
	"github.com/xxpisal/flower-shop/internal/logging"
	loggingmw "github.com/xxpisal/flower-shop/internal/middleware/logging"
	"github.com/xxpisal/flower-shop/internal/repo"
	"github.com/xxpisal/flower-shop/internal/service"
	"github.com/xxpisal/flower-shop/internal/session"
)

const (
	dbWaitRetries = 15
	dbWaitDelay   = 3 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	config.MustNonEmpty(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel)

	database, err := db.WaitForDB(context.Background(), cfg.DSN(), dbWaitRetries, dbWaitDelay, logger)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	gormRepo := repo.New(database)
	sessions := session.NewGormStore(database, []byte(cfg.SessionSecret))

	authSvc := &service.AuthService{Repo: gormRepo, Sessions: sessions}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	orderSvc := &service.OrderService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		HealthHandler:  &httpserver.HealthHTTP{DB: database},
		Auth:           &httpserver.SessionAuth{Sessions: sessions},
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()
	logger.Info("flower shop listening", "port", cfg.ServerPort)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
