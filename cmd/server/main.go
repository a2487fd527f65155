package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	storefrontapi "github.com/vividmart/storefront/api/echo"
	cacheredis "github.com/vividmart/storefront/cache/redis"
	"github.com/vividmart/storefront/config"
	"github.com/vividmart/storefront/internal/auth"
	"github.com/vividmart/storefront/internal/server"
	"github.com/vividmart/storefront/internal/telemetry"
	"github.com/vividmart/storefront/middleware"
	"github.com/vividmart/storefront/mongodb"
	"github.com/vividmart/storefront/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	initLogger(cfg)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("mongo_db", cfg.MongoDBName).
		Str("redis_addr", cfg.RedisAddr).
		Str("log_level", cfg.LogLevel).
		Msg("Starting storefront server")

	ctx := context.Background()

	tp, err := telemetry.InitTracerProvider(ctx, cfg.OtelServiceName, cfg.OtelExporterEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracer provider")
	}

	// MongoDB
	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	userRepo, err := mongodb.NewUserRepository(ctx, db.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize UserRepository")
	}
	productRepo, err := mongodb.NewProductRepository(ctx, db.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ProductRepository")
	}
	categoryRepo, err := mongodb.NewCategoryRepository(ctx, db.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize CategoryRepository")
	}
	orderRepo, err := mongodb.NewOrderRepository(ctx, db.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OrderRepository")
	}
	couponRepo, err := mongodb.NewCouponRepository(ctx, db.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize CouponRepository")
	}

	// Redis-backed key-value store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := cacheredis.NewStore(redisClient)
	if err := store.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	// Services
	hasher := auth.NewBcryptPasswordHasher(bcrypt.DefaultCost)
	tokens := services.NewTokenService(
		cfg.JWTAccessSecret, cfg.JWTRefreshSecret,
		cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(),
		cfg.JWTIssuer)
	sessions := services.NewSessionRegistry(store, cfg.RefreshTokenTTL())

	authSvc := services.NewAuthService(userRepo, tokens, sessions, hasher)
	catalogSvc := services.NewCatalogService(productRepo, categoryRepo, sessions)
	cartSvc := services.NewCartService(catalogSvc, sessions)
	orderSvc := services.NewOrderService(orderRepo, productRepo, couponRepo, cartSvc)
	couponSvc := services.NewCouponService(couponRepo)

	gateway := middleware.NewAuthGateway(tokens)

	api := storefrontapi.NewStorefrontAPI(
		authSvc, catalogSvc, cartSvc, orderSvc, couponSvc,
		gateway, store, db)

	httpServer := server.NewHTTPServer(cfg, api)

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	telemetry.Shutdown(shutdownCtx, tp)
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("Redis close error")
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB close error")
	}

	log.Info().Msg("Server stopped")
}

func initLogger(cfg *config.ServerConfig) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
