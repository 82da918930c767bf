// Command api runs the Bistro HTTP API and realtime channel.
//
// @title                       Bistro API
// @version                     1.0
// @description                 Restaurant backend with an authenticated realtime notification channel.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bistroboss/bistro-api/internal/api"
	"github.com/bistroboss/bistro-api/internal/api/handler"
	"github.com/bistroboss/bistro-api/internal/core/ports"
	"github.com/bistroboss/bistro-api/internal/core/service"
	"github.com/bistroboss/bistro-api/internal/infrastructure/config"
	mongostore "github.com/bistroboss/bistro-api/internal/infrastructure/db/mongo"
	redisstore "github.com/bistroboss/bistro-api/internal/infrastructure/db/redis"
	"github.com/bistroboss/bistro-api/internal/infrastructure/payment"
	"github.com/bistroboss/bistro-api/internal/realtime"
	"github.com/bistroboss/bistro-api/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "bistro-api"})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "bistro-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Stores ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connection established")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connection established")

	users := mongostore.NewUserRepository(db)

	// --- Identity ---
	tokens := service.NewTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	authz := service.NewRoleAuthorizer(users)

	// --- Realtime ---
	registry := realtime.NewRegistry(cfg.Realtime.SendBuffer, logger.Component("registry"))

	var (
		deliverer ports.Deliverer = registry
		fanout    *redisstore.Fanout
	)
	if cfg.Realtime.Fanout == config.FanoutRedis {
		fanout = redisstore.NewFanout(rdb, cfg.Realtime.Channel, registry, logger.Component("fanout"))
		deliverer = fanout
	}

	broadcaster := realtime.NewBroadcaster(deliverer, cfg.Realtime.QueueSize, logger.Component("broadcaster"))

	limiter, err := redisstore.NewMessageLimiter(rdb, "bistro:chat", cfg.Realtime.ChatRateLimit, cfg.Realtime.ChatRateWindow)
	if err != nil {
		return err
	}

	chat := service.NewChatRelay(
		mongostore.NewMessageRepository(db),
		authz,
		deliverer,
		limiter,
		nil,
		logger.Component("chat"),
	)

	gateway := realtime.NewGateway(registry, chat, authz, realtime.GatewayOptions{
		OriginPatterns: cfg.Realtime.OriginPatterns,
	}, logger.Component("gateway"))
	defer gateway.Close()

	// --- Payments ---
	var provider ports.PaymentIntentProvider
	if stripeProvider, err := payment.NewStripeProvider(cfg.Payment.StripeSecretKey, nil); err != nil {
		log.Warn().Err(err).Msg("payment intents disabled")
	} else {
		provider = stripeProvider
	}

	// --- Services ---
	deps := api.Deps{
		Log:          log,
		Issuer:       tokens,
		Authn:        tokens,
		Authz:        authz,
		Users:        service.NewUserService(users, authz, logger.Component("users")),
		Chat:         chat,
		Reservations: service.NewReservationService(mongostore.NewReservationRepository(db), authz, broadcaster, logger.Component("reservations")),
		Catalog: service.NewCatalogService(
			mongostore.NewMenuRepository(db),
			mongostore.NewReviewRepository(db),
			mongostore.NewContactRepository(db),
			logger.Component("catalog"),
		),
		Orders: service.NewOrderService(
			mongostore.NewCartRepository(db),
			mongostore.NewPaymentRepository(db),
			provider,
			authz,
			cfg.Payment.Currency,
			logger.Component("orders"),
		),
		Stats:   service.NewStatsService(mongostore.NewStatsRepository(db)),
		Channel: gateway,
		Checks: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		CORSOrigins: cfg.CORSOrigins,
	}

	e := api.NewRouter(deps)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	broadcaster.Start(gctx)
	if fanout != nil {
		g.Go(func() error {
			if err := fanout.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("fanout", cfg.Realtime.Fanout).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down: waiting for in-flight requests")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		gateway.Close()
		if err := server.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed, forcing close")
			return server.Close()
		}
		return nil
	})

	return g.Wait()
}
