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

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/glowcart/glowcart-api/internal/config"
	"github.com/glowcart/glowcart-api/internal/handler"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/auth"
	"github.com/glowcart/glowcart-api/shared/mailer"
	"github.com/glowcart/glowcart-api/shared/payment"
	"github.com/glowcart/glowcart-api/shared/sms"
	"github.com/glowcart/glowcart-api/shared/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.New(&logger)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.Mongo.Database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelIndex()

	userRepo := repository.NewUserMongoRepository(indexCtx, &logger, db)
	productRepo := repository.NewProductMongoRepository(db)
	cartRepo := repository.NewCartMongoRepository(db)
	wishlistRepo := repository.NewWishlistMongoRepository(db)
	reviewRepo := repository.NewReviewMongoRepository(db)
	orderRepo := repository.NewOrderMongoRepository(db)
	paymentRepo := repository.NewPaymentMongoRepository(db)
	activityRepo := repository.NewActivityLogMongoRepository(db)

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.Issuer)
	codeMailer := mailer.NewMailer(&logger)
	codeTexter := sms.NewSender(&logger)
	khalti := payment.NewKhaltiClient(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, codeMailer, &cfg.Token)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, codeMailer, codeTexter)
	userUsecase := usecase.NewUserUsecase(userRepo)
	productUsecase := usecase.NewProductUsecase(productRepo)
	cartUsecase := usecase.NewCartUsecase(cartRepo, productRepo, userRepo)
	wishlistUsecase := usecase.NewWishlistUsecase(wishlistRepo, productRepo, userRepo)
	reviewUsecase := usecase.NewReviewUsecase(reviewRepo, productRepo)
	orderUsecase := usecase.NewOrderUsecase(orderRepo, cartRepo)
	paymentUsecase := usecase.NewPaymentUsecase(paymentRepo, orderRepo, cartRepo, productRepo, khalti)

	router := handler.NewRouter(&cfg.Server, &logger, jwtAuth, activityRepo, handler.Handlers{
		Auth:     handler.NewAuthHandler(authUsecase, resetUsecase, validator, &logger),
		User:     handler.NewUserHandler(userUsecase, validator, &logger, cfg.Server.UploadDir),
		Product:  handler.NewProductHandler(productUsecase, validator, &logger),
		Cart:     handler.NewCartHandler(cartUsecase, validator, &logger),
		Wishlist: handler.NewWishlistHandler(wishlistUsecase, validator, &logger),
		Review:   handler.NewReviewHandler(reviewUsecase, validator, &logger),
		Order:    handler.NewOrderHandler(orderUsecase, validator, &logger),
		Payment:  handler.NewPaymentHandler(paymentUsecase, validator, &logger, cfg.Server.PaymentBaseURL),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
