package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pafiast/alumni-network/internal/config"
	esidx "github.com/pafiast/alumni-network/internal/es"
	"github.com/pafiast/alumni-network/internal/events"
	"github.com/pafiast/alumni-network/internal/handlers"
	"github.com/pafiast/alumni-network/internal/logging"
	midauth "github.com/pafiast/alumni-network/internal/middleware/auth"
	httpserver "github.com/pafiast/alumni-network/internal/transport/http"
	"github.com/pafiast/alumni-network/internal/uploads"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	uploadStore, err := uploads.NewStore(configuration.UPLOAD_DIR)
	if err != nil {
		log.Fatal(err)
	}

	producer := events.NewProducer(strings.Split(configuration.KAFKA_ADDRESS, ","))

	esClient, err := esidx.NewClient(configuration)
	if err != nil {
		logger.Warn("elasticsearch unavailable, directory search disabled", "error", err)
		esClient = nil
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		DB:                 db,
		AuthHandler:        &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, Producer: producer},
		ProfileHandler:     &handlers.ProfileHandler{DB: db, Uploads: uploadStore, ES: esClient},
		InternshipHandler:  &handlers.InternshipHandler{DB: db},
		ProjectHandler:     &handlers.ProjectHandler{DB: db},
		JobHandler:         &handlers.JobHandler{DB: db},
		AchievementHandler: &handlers.AchievementHandler{DB: db, Uploads: uploadStore},
		SkillHandler:       &handlers.SkillHandler{DB: db},
		EducationHandler:   &handlers.EducationHandler{DB: db},
		ECardHandler:       &handlers.ECardHandler{DB: db, Uploads: uploadStore, Producer: producer},
		AttestationHandler: &handlers.AttestationHandler{Producer: producer},
		SearchHandler:      &handlers.SearchHandler{ES: esClient, Index: esidx.AlumniIndex},
		AdminHandler:       &handlers.AdminHandler{DB: db, ES: esClient, Producer: producer},
		TokenMiddleware:    &midauth.TokenMiddleware{JWTSecret: jwtSecret},
		UploadDir:          configuration.UPLOAD_DIR,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
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
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
