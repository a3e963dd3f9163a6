package main

import (
	"context"
	"fmt"
	"log" // standard log for errors before zap is set up
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/auth"
	"github.com/amirsoft21/bementor/internal/config"
	"github.com/amirsoft21/bementor/internal/database"
	"github.com/amirsoft21/bementor/internal/handlers"
	"github.com/amirsoft21/bementor/internal/middleware"
	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
	"github.com/amirsoft21/bementor/internal/routes"
	"github.com/amirsoft21/bementor/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables:", err)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		l, _ := zap.NewDevelopment()
		logger = l
	} else {
		l, _ := zap.NewProduction()
		logger = l
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting %s in %s environment on port %d", cfg.App.Name, cfg.App.Env, cfg.App.Port)

	// Pick the store once at startup. Every request thereafter runs against
	// the same backend; there is no per-request fallback.
	var (
		userRepo    repository.UserRepository
		teacherRepo repository.TeacherRepository
		messageRepo repository.MessageRepository
		bookingRepo repository.BookingRepository
		subRepo     repository.SubscriptionRepository
		tokens      auth.Authenticator
		mongoClient *mongo.Client
		storeMode   = "mongo"
	)

	db, client, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		if !cfg.Store.AllowMemoryFallback || cfg.App.Env == "production" {
			sugar.Fatalf("MongoDB unavailable and memory fallback disabled: %v", err)
		}
		sugar.Warnf("MongoDB unavailable, falling back to in-memory store: %v", err)
		sugar.Warn("In-memory mode is transient and issues unsigned dev tokens. Do not expose this server.")
		storeMode = "memory"
		userRepo = repository.NewMemoryUserRepo()
		teacherRepo = repository.NewMemoryTeacherRepo()
		messageRepo = repository.NewMemoryMessageRepo()
		bookingRepo = repository.NewMemoryBookingRepo()
		subRepo = repository.NewMemorySubscriptionRepo()
		tokens = auth.NewDevAuthenticator()
	} else {
		mongoClient = client
		userRepo = repository.NewMongoUserRepo(db)
		teacherRepo = repository.NewMongoTeacherRepo(db)
		messageRepo = repository.NewMongoMessageRepo(db)
		bookingRepo = repository.NewMongoBookingRepo(db)
		subRepo = repository.NewMongoSubscriptionRepo(db)
		manager := auth.NewJWTManager(cfg.JWT.Secret, cfg.TokenTTL)
		tokens = auth.NewJWTAuthenticator(manager, userRepo)
	}

	var rdb *redis.Client
	var authLimiter fiber.Handler
	if cfg.Redis.Addr != "" {
		r, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
		if err != nil {
			sugar.Warnf("Redis unavailable, auth rate limiting disabled: %v", err)
		} else {
			rdb = r
			authLimiter = middleware.NewRateLimiter(rdb, "auth", cfg.Redis.AuthRateLimit, cfg.AuthRateWindow).ByIP()
		}
	}

	authSvc := service.NewAuthService(userRepo, teacherRepo, tokens, logger)
	teacherSvc := service.NewTeacherService(teacherRepo, logger)
	messageSvc := service.NewMessageService(messageRepo, userRepo)
	bookingSvc := service.NewBookingService(bookingRepo, userRepo)
	paymentSvc := service.NewPaymentService(subRepo, userRepo, logger)
	userSvc := service.NewUserService(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})

	app.Use(middleware.Recovery(logger))
	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.ZapLogger(logger))

	routes.Register(app, routes.Deps{
		Auth:     handlers.NewAuthHandler(authSvc, logger),
		Teachers: handlers.NewTeacherHandler(teacherSvc, logger),
		Messages: handlers.NewMessageHandler(messageSvc, logger),
		Bookings: handlers.NewBookingHandler(bookingSvc, logger),
		Payments: handlers.NewPaymentHandler(paymentSvc, logger),
		Admin:    handlers.NewAdminHandler(userSvc, logger),
		Protect:  middleware.Protect(tokens, logger),
		RequireRole: func(roles ...models.Role) fiber.Handler {
			return middleware.RequireRoles(logger, roles...)
		},
		AuthLimiter: authLimiter,
		StoreMode:   storeMode,
	})

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s (store: %s)", listenAddr, storeMode)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctxShut); err != nil {
			sugar.Errorf("MongoDB disconnect error: %v", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}
	sugar.Info("Graceful shutdown complete.")
}
