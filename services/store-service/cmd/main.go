package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/config"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/handler"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/middleware"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/usecase"
	"github.com/vasapolrittideah/storefront-api/shared/auth"
	"github.com/vasapolrittideah/storefront-api/shared/logger"
	"github.com/vasapolrittideah/storefront-api/shared/mailer"
	"github.com/vasapolrittideah/storefront-api/shared/security"
)

const (
	serviceName     = "store-service"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()
		bootstrap.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Log, serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := connectMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	productRepo := repository.NewProductMongoRepository(ctx, log, db)
	blogRepo := repository.NewBlogMongoRepository(ctx, log, db)
	postRepo := repository.NewPostMongoRepository(ctx, log, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWT())
	resetTokens := security.NewResetTokenGenerator(
		cfg.Token.PasswordResetTokenSecret,
		cfg.Token.PasswordResetTokenExpiresIn,
	)
	smtpMailer := mailer.NewMailer(cfg.SMTP)

	h := handler.NewHandler(handler.Usecases{
		Auth:          usecase.NewAuthUsecase(userRepo, jwtAuth, cfg.EnforceBlocked),
		PasswordReset: usecase.NewPasswordResetUsecase(userRepo, resetTokens, smtpMailer, cfg.AppPasswordResetURL),
		User:          usecase.NewUserUsecase(userRepo),
		Product:       usecase.NewProductUsecase(productRepo),
		Blog:          usecase.NewBlogUsecase(blogRepo),
		Post:          usecase.NewPostUsecase(postRepo),
	}, cfg.Cookie, log)

	router := handler.NewRouter(handler.RouterParams{
		Logger:                 log,
		Handler:                h,
		Authenticator:          middleware.NewAuthenticator(jwtAuth, userRepo, log, cfg.EnforceBlocked),
		RequestTimeout:         cfg.HTTP.RequestTimeout,
		AuthRateLimitPerMinute: cfg.AuthRateLimitPerMinute,
		Production:             cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("env", cfg.AppEnv).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func connectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
