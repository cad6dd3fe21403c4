// main.go
package main

import (
	"context"
	"log"
	"time"

	"cine-taquilla/cmd"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/notify"
	"cine-taquilla/internal/usecase"
	"cine-taquilla/internal/wire"
	"cine-taquilla/pkg/cache"
	"cine-taquilla/pkg/database"
	"cine-taquilla/pkg/mailer"
	"cine-taquilla/pkg/metrics"
	"cine-taquilla/pkg/payment"
	"cine-taquilla/pkg/tmdb"
	"cine-taquilla/pkg/token"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	metrics.Register()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs the metadata lookup cache. Lookups still work without it,
	// every search just hits the upstream API.
	redisClient, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, metadata lookups will not be cached", zap.Error(err))
		redisClient = nil
	}

	tmdbClient := tmdb.NewClient(
		config.TMDB,
		redisClient,
		time.Duration(config.Redis.CacheTTLHours)*time.Hour,
		logger,
	)

	sender := mailer.NewSMTPSender(config.Email, logger)

	// The purchase confirmation pipeline: purchases publish to rabbitmq, the
	// consumer mails the ticket. Without a broker purchases still complete,
	// only the email is skipped.
	var publisher usecase.TicketPublisher
	rabbit, err := notify.NewPublisher(config.Rabbit, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, purchase emails disabled", zap.Error(err))
	} else {
		publisher = rabbit
		defer rabbit.Close()

		consumer := notify.NewConsumer(config.Rabbit, sender, logger)
		go func() {
			if err := consumer.Start(context.Background()); err != nil {
				logger.Error("Ticket mail consumer stopped", zap.Error(err))
			}
		}()
	}

	tokens := token.NewManager(config.JWT)
	gateway := payment.NewStripeGateway(config.Stripe.SecretKey, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, usecase.Deps{
		Tokens:    tokens,
		Gateway:   gateway,
		TMDB:      tmdbClient,
		Publisher: publisher,
		Sender:    sender,
	}, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
