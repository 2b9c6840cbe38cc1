package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/config"
	"github.com/RubachokBoss/school-service/internal/delivery/httpd"
	"github.com/RubachokBoss/school-service/internal/repository"
	"github.com/RubachokBoss/school-service/internal/service"
	"github.com/RubachokBoss/school-service/internal/service/integration"
)

const seedTimeout = 10 * time.Second

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *sql.DB
	publisher integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	storage, err := integration.NewMinIOStorage(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create file storage: %w", err)
	}

	publisher := newPublisher(cfg.RabbitMQ, log)

	userRepo := repository.NewUserRepository(db, log)
	studentRepo := repository.NewStudentRepository(db, log)
	teacherRepo := repository.NewTeacherRepository(db, log)
	courseRepo := repository.NewCourseRepository(db, log)
	enrollmentRepo := repository.NewEnrollmentRepository(db, log)
	gradeRepo := repository.NewGradeRepository(db, log)
	documentRepo := repository.NewDocumentRepository(db, log)
	announcementRepo := repository.NewAnnouncementRepository(db, log)
	scheduleRepo := repository.NewScheduleRepository(db, log)
	assignmentRepo := repository.NewAssignmentRepository(db, log)
	chatRepo := repository.NewChatRepository(db, log)
	dashboardRepo := repository.NewDashboardRepository(db, log)

	validator := service.NewValidator()

	authService := service.NewAuthService(userRepo, validator, cfg.Auth, log)

	seedCtx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	system, err := authService.SystemAccount(seedCtx)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to seed system account: %w", err)
	}
	log.Info().
		Int64("user_id", system.ID).
		Str("username", system.Username).
		Msg("System account ready")

	handler := httpd.NewHandler(httpd.Services{
		Auth:          authService,
		Students:      service.NewStudentService(studentRepo, storage, validator, log),
		Teachers:      service.NewTeacherService(teacherRepo, validator, log),
		Courses:       service.NewCourseService(courseRepo, enrollmentRepo, scheduleRepo, assignmentRepo, validator, log),
		Enrollments:   service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, publisher, validator, log),
		Grades:        service.NewGradeService(gradeRepo, enrollmentRepo, publisher, validator, log),
		Documents:     service.NewDocumentService(documentRepo, storage, publisher, validator, log),
		Announcements: service.NewAnnouncementService(announcementRepo, validator, log),
		Schedules:     service.NewScheduleService(scheduleRepo, validator, log),
		Assignments:   service.NewAssignmentService(assignmentRepo, validator, log),
		Chat:          service.NewChatService(chatRepo, userRepo, authService, validator, log),
		Dashboard:     service.NewDashboardService(dashboardRepo, log),
	}, repository.NewPostgresRepository(db, log), cfg.Server.MaxUploadSize, log)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpd.RequestLogger(log))
	router.Use(httpd.Recovery(log))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        db,
		publisher: publisher,
	}, nil
}

// newPublisher falls back to a no-op publisher when RabbitMQ is disabled or
// unreachable; events are best effort.
func newPublisher(cfg config.RabbitMQConfig, log zerolog.Logger) integration.EventPublisher {
	if !cfg.Enabled {
		return integration.NewNoopPublisher(log)
	}

	publisher, err := integration.NewRabbitMQPublisher(cfg.URL, cfg.Exchange, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to RabbitMQ, events disabled")
		return integration.NewNoopPublisher(log)
	}
	return publisher
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting school service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down school service...")

	err := a.server.Shutdown(ctx)

	if a.publisher != nil {
		if cerr := a.publisher.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if cerr := a.db.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close database connection")
		}
	}

	return err
}
