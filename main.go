package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/app"
	"github.com/RubachokBoss/school-service/internal/config"
	"github.com/RubachokBoss/school-service/internal/database"
	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
	"github.com/RubachokBoss/school-service/internal/service"
	"github.com/RubachokBoss/school-service/pkg/logger"
)

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	migrateDirection := migrateCmd.String("direction", "up", "direction of migration (up/down)")
	migrateForce := migrateCmd.Int("force", -1, "force the schema version and clear the dirty flag")

	createUserCmd := flag.NewFlagSet("createuser", flag.ExitOnError)
	username := createUserCmd.String("username", "", "login name")
	email := createUserCmd.String("email", "", "email address")
	password := createUserCmd.String("password", "", "password (min 8 characters)")

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			_ = migrateCmd.Parse(os.Args[2:])
			runMigrations(*migrateDirection, *migrateForce)
			return
		case "createuser":
			_ = createUserCmd.Parse(os.Args[2:])
			createUser(&models.CreateUserRequest{
				Username: *username,
				Email:    *email,
				Password: *password,
			})
			return
		case "serve":
		}
	}

	serve()
}

func loadConfig() (*config.Config, zerolog.Logger) {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	return cfg, logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)
}

func serve() {
	cfg, log := loadConfig()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	log.Info().Msg("Database connection established")

	application, err := app.New(cfg, log, db)
	if err != nil {
		db.Close()
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("School service stopped")
}

func runMigrations(direction string, force int) {
	cfg, log := loadConfig()

	migrator, err := database.NewMigrator(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrator")
	}

	if force >= 0 {
		if err := migrator.Force(force); err != nil {
			log.Fatal().Err(err).Msg("Failed to force migration version")
		}
		log.Info().Int("version", force).Msg("Migration version forced")
		return
	}

	switch direction {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		log.Info().Msg("Migrations applied successfully")
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal().Err(err).Msg("Failed to rollback migrations")
		}
		log.Info().Msg("Migrations rolled back successfully")
	default:
		log.Fatal().Msg("Invalid migration direction. Use 'up' or 'down'")
	}
}

func createUser(req *models.CreateUserRequest) {
	cfg, log := loadConfig()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	auth := service.NewAuthService(repository.NewUserRepository(db, log), service.NewValidator(), cfg.Auth, log)

	user, err := auth.CreateUser(ctx, req)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("User created")
}
