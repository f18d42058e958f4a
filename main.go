package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wderue/portfolio-backend/api"
	"github.com/wderue/portfolio-backend/catalog"
	"github.com/wderue/portfolio-backend/config"
	"github.com/wderue/portfolio-backend/database"
	"github.com/wderue/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	devMode := config.IsDevelopment(cfg)

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(cfg, "DB_HOST", "localhost"),
		config.GetString(cfg, "DB_USER", "postgres"),
		config.GetString(cfg, "DB_PASSWORD", ""),
		config.GetString(cfg, "DB_NAME", "portfolio"),
		config.GetString(cfg, "DB_PORT", "5432"),
		config.GetString(cfg, "DB_SSLMODE", "require"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	// The cache is process-local by default; pointing REDIS_ADDR at an
	// instance shares the memo table across replicas.
	var cache catalog.Cache = catalog.NewMemoryCache()
	if addr := config.GetString(cfg, "REDIS_ADDR", ""); addr != "" {
		rdb := catalog.NewRedisClient(addr,
			config.GetString(cfg, "REDIS_PASSWORD", ""),
			config.GetInt(cfg, "REDIS_DB", 0),
		)
		cache = catalog.NewRedisCache(rdb, zlog.Logger)
		zlog.Info().Str("addr", addr).Msg("using redis-backed result cache")
	}

	limiter := catalog.NewWindowLimiter(
		config.GetInt(cfg, "RATE_LIMIT_MAX", 100),
		config.GetDuration(cfg, "RATE_LIMIT_WINDOW_SECONDS", time.Minute),
	)

	catalogService := catalog.NewService(currentDB, cache, limiter, zlog.Logger, devMode)

	// If a seed file is given, replace the catalog and exit.
	if seedFile := config.GetString(cfg, "SEED_FILE", ""); seedFile != "" {
		fmt.Printf("Seeding catalog from %s...\n", seedFile)
		seeder := database.NewSeeder(db, zlog.Logger)
		n, err := seeder.LoadFile(context.Background(), seedFile)
		if err != nil {
			fmt.Printf("Error seeding catalog: %v\n", err)
			os.Exit(1)
		}
		catalogService.InvalidateProjects(context.Background())
		fmt.Printf("Seeded %d projects\n", n)
		return
	}

	sender, err := services.NewResendSender(cfg, zlog.Logger)
	if err != nil {
		fmt.Printf("Error initializing email sender: %v\n", err)
		os.Exit(1)
	}
	contactService := services.NewContactService(sender, zlog.Logger)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(catalogService, contactService)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
