package httpd

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/service"
	"github.com/RubachokBoss/school-service/pkg/utils"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Auth          service.AuthService
	Students      service.StudentService
	Teachers      service.TeacherService
	Courses       service.CourseService
	Enrollments   service.EnrollmentService
	Grades        service.GradeService
	Documents     service.DocumentService
	Announcements service.AnnouncementService
	Schedules     service.ScheduleService
	Assignments   service.AssignmentService
	Chat          service.ChatService
	Dashboard     service.DashboardService
}

type Handler struct {
	services      Services
	health        HealthChecker
	maxUploadSize int64
	logger        zerolog.Logger
}

func NewHandler(services Services, health HealthChecker, maxUploadSize int64, logger zerolog.Logger) *Handler {
	return &Handler{
		services:      services,
		health:        health,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Post("/auth/token", h.Login)

		api.Group(func(r chi.Router) {
			r.Use(OptionalAuth(h.services.Auth))
			r.Get("/chat/messages", h.ListChatMessages)
			r.Post("/chat/messages", h.PostChatMessage)
			r.Get("/chat/{room}/messages", h.ListChatMessages)
			r.Post("/chat/{room}/messages", h.PostChatMessage)
		})

		api.Group(func(api chi.Router) {
			api.Use(Authenticate(h.services.Auth))

			api.Get("/me", h.Me)
			api.Get("/dashboard", h.GetDashboard)

			api.Route("/students", func(r chi.Router) {
				r.Post("/", h.CreateStudent)
				r.Get("/", h.ListStudents)
				r.Get("/{id}", h.GetStudent)
				r.Put("/{id}", h.UpdateStudent)
				r.Delete("/{id}", h.DeleteStudent)
				r.Get("/{id}/enrollments", h.GetStudentEnrollments)
				r.Put("/{id}/photo", h.UploadStudentPhoto)
			})

			api.Route("/teachers", func(r chi.Router) {
				r.Post("/", h.CreateTeacher)
				r.Get("/", h.ListTeachers)
				r.Get("/{id}", h.GetTeacher)
				r.Put("/{id}", h.UpdateTeacher)
				r.Delete("/{id}", h.DeleteTeacher)
			})

			api.Route("/courses", func(r chi.Router) {
				r.Post("/", h.CreateCourse)
				r.Get("/", h.ListCourses)
				r.Get("/{id}", h.GetCourse)
				r.Put("/{id}", h.UpdateCourse)
				r.Delete("/{id}", h.DeleteCourse)
				r.Get("/{id}/enrollments", h.GetCourseDetail)
				r.Post("/{id}/enrollments", h.EnrollStudent)
				r.Get("/{id}/schedules", h.GetCourseSchedules)
				r.Get("/{id}/assignments", h.GetCourseAssignments)
			})

			api.Route("/enrollments", func(r chi.Router) {
				r.Post("/", h.CreateEnrollment)
				r.Get("/", h.ListEnrollments)
				r.Get("/{id}", h.GetEnrollment)
				r.Put("/{id}", h.UpdateEnrollment)
				r.Delete("/{id}", h.DeleteEnrollment)
				r.Put("/{id}/grade", h.SetEnrollmentGrade)
			})

			api.Route("/grades", func(r chi.Router) {
				r.Post("/", h.CreateGrade)
				r.Get("/", h.ListGrades)
				r.Get("/{id}", h.GetGrade)
				r.Put("/{id}", h.UpdateGrade)
				r.Delete("/{id}", h.DeleteGrade)
			})

			api.Route("/documents", func(r chi.Router) {
				r.Post("/", h.UploadDocument)
				r.Get("/", h.ListDocuments)
				r.Get("/{id}", h.GetDocument)
				r.Put("/{id}", h.UpdateDocument)
				r.Delete("/{id}", h.DeleteDocument)
				r.Get("/{id}/file", h.DownloadDocument)
			})

			api.Route("/announcements", func(r chi.Router) {
				r.Post("/", h.CreateAnnouncement)
				r.Get("/", h.ListAnnouncements)
				r.Get("/{id}", h.GetAnnouncement)
				r.Put("/{id}", h.UpdateAnnouncement)
				r.Delete("/{id}", h.DeleteAnnouncement)
			})

			api.Route("/schedules", func(r chi.Router) {
				r.Post("/", h.CreateSchedule)
				r.Get("/", h.ListSchedules)
				r.Get("/{id}", h.GetSchedule)
				r.Put("/{id}", h.UpdateSchedule)
				r.Delete("/{id}", h.DeleteSchedule)
			})

			api.Route("/assignments", func(r chi.Router) {
				r.Post("/", h.CreateAssignment)
				r.Get("/", h.ListAssignments)
				r.Get("/{id}", h.GetAssignment)
				r.Put("/{id}", h.UpdateAssignment)
				r.Delete("/{id}", h.DeleteAssignment)
			})
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("Health check failed")
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"service":   "school-service",
		"timestamp": time.Now().UTC(),
	})
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolQueryParam(r *http.Request, key string, defaultValue bool) bool {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// pathID parses the {id} URL parameter, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// decodeJSON reads the body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.ReadJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	_ = utils.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	_ = utils.SuccessResponse(w, http.StatusOK, data)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	_ = utils.SuccessResponse(w, http.StatusCreated, data)
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

var (
	conflictErrors = []error{
		service.ErrAlreadyEnrolled,
		service.ErrGradeExists,
		service.ErrCourseCodeTaken,
		service.ErrUsernameTaken,
		service.ErrTeacherUserTaken,
	}

	notFoundErrors = []error{
		service.ErrStudentNotFound,
		service.ErrTeacherNotFound,
		service.ErrCourseNotFound,
		service.ErrEnrollmentNotFound,
		service.ErrGradeNotFound,
		service.ErrDocumentNotFound,
		service.ErrAnnouncementNotFound,
		service.ErrScheduleNotFound,
		service.ErrAssignmentNotFound,
		service.ErrUserNotFound,
		service.ErrFileNotFound,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   http.StatusText(http.StatusBadRequest),
			"message": "Validation failed",
			"fields":  verr.Fields,
		})
	case isAny(err, conflictErrors):
		writeError(w, http.StatusConflict, err.Error())
	case isAny(err, notFoundErrors):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "Request timed out")
	default:
		h.logger.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
