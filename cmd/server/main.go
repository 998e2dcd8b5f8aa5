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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/ecommerce_backend/internal/config"
	"github.com/Skotchmaster/ecommerce_backend/internal/es"
	"github.com/Skotchmaster/ecommerce_backend/internal/handlers"
	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/mykafka"
	"github.com/Skotchmaster/ecommerce_backend/internal/repo"
	authsvc "github.com/Skotchmaster/ecommerce_backend/internal/service/auth"
	cartsvc "github.com/Skotchmaster/ecommerce_backend/internal/service/cart"
	catalogsvc "github.com/Skotchmaster/ecommerce_backend/internal/service/catalog"
	httpserver "github.com/Skotchmaster/ecommerce_backend/internal/transport/http"
	"github.com/Skotchmaster/ecommerce_backend/internal/validation"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	}

	store := &repo.GormRepo{DB: db}
	catalogService := &catalogsvc.Service{Repo: store, Index: "product"}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		catalogService.ES = client
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Validator = validation.New()

	deps := httpserver.Deps{
		DB:             db,
		ProductHandler: &handlers.ProductHandler{Svc: catalogService, Producer: prod},
		AuthHandler:    &handlers.AuthHandler{Svc: &authsvc.Service{Repo: store}, Producer: prod},
		CartHandler:    &handlers.CartHandler{Svc: &cartsvc.Service{Repo: store}, Producer: prod},
		SearchHandler:  &handlers.SearchHandler{ES: catalogService.ES, Index: catalogService.Index},
	}

	httpserver.Register(e, &deps)

	port := configuration.APP_PORT
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
