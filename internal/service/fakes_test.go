package service

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
	"github.com/RubachokBoss/school-service/internal/service/integration"
)

var testLogger = zerolog.Nop()

func ptr[T any](v T) *T { return &v }

type fakeStudentRepo struct {
	repository.StudentRepository
	students    map[int64]*models.StudentWithStats
	enrollments map[int64][]models.StudentEnrollment
	nextID      int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		students:    map[int64]*models.StudentWithStats{},
		enrollments: map[int64][]models.StudentEnrollment{},
	}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *models.Student) error {
	r.nextID++
	s.ID = r.nextID
	r.students[s.ID] = &models.StudentWithStats{Student: *s}
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.StudentWithStats, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) GetAll(_ context.Context, limit, offset int) ([]models.StudentWithStats, int, error) {
	out := []models.StudentWithStats{}
	for id := int64(1); id <= r.nextID; id++ {
		if s, ok := r.students[id]; ok {
			out = append(out, *s)
		}
	}
	total := len(out)
	if offset >= len(out) {
		return []models.StudentWithStats{}, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeStudentRepo) GetEnrollments(_ context.Context, id int64) ([]models.StudentEnrollment, error) {
	return append([]models.StudentEnrollment{}, r.enrollments[id]...), nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *models.Student) error {
	cur, ok := r.students[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Student = *s
	return nil
}

func (r *fakeStudentRepo) UpdatePhoto(_ context.Context, id int64, photo string) error {
	cur, ok := r.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Photo = &photo
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.students[id]
	return ok, nil
}

type fakeCourseRepo struct {
	repository.CourseRepository
	courses map[int64]*models.CourseWithDetails
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int64]*models.CourseWithDetails{}}
}

func (r *fakeCourseRepo) Create(_ context.Context, c *models.Course) error {
	for _, existing := range r.courses {
		if existing.Code == c.Code {
			return &repository.DuplicateError{Constraint: repository.CoursesCodeKey}
		}
	}
	r.nextID++
	c.ID = r.nextID
	r.courses[c.ID] = &models.CourseWithDetails{Course: *c}
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.CourseWithDetails, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, c *models.Course) error {
	cur, ok := r.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Course = *c
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.courses[id]
	return ok, nil
}

type fakeEnrollmentRepo struct {
	repository.EnrollmentRepository
	mu          sync.Mutex
	enrollments map[int64]*models.EnrollmentWithDetails
	nextID      int64
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: map[int64]*models.EnrollmentWithDetails{}}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.enrollments {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID {
			return &repository.DuplicateError{Constraint: repository.EnrollmentsStudentCourseKey}
		}
	}
	r.nextID++
	e.ID = r.nextID
	r.enrollments[e.ID] = &models.EnrollmentWithDetails{Enrollment: *e}
	return nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.EnrollmentWithDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.enrollments[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEnrollmentRepo) GetByCourseID(_ context.Context, courseID int64) ([]models.EnrollmentWithDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.EnrollmentWithDetails{}
	for id := int64(1); id <= r.nextID; id++ {
		if e, ok := r.enrollments[id]; ok && e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enrollments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.enrollments, id)
	return nil
}

func (r *fakeEnrollmentRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.enrollments[id]
	return ok, nil
}

type fakeGradeRepo struct {
	repository.GradeRepository
	grades map[int64]*models.Grade
	nextID int64
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{grades: map[int64]*models.Grade{}}
}

func (r *fakeGradeRepo) byEnrollment(enrollmentID int64) *models.Grade {
	for _, g := range r.grades {
		if g.EnrollmentID == enrollmentID {
			return g
		}
	}
	return nil
}

func (r *fakeGradeRepo) Create(_ context.Context, g *models.Grade) error {
	if r.byEnrollment(g.EnrollmentID) != nil {
		return &repository.DuplicateError{Constraint: repository.GradesEnrollmentIDKey}
	}
	r.nextID++
	g.ID = r.nextID
	cp := *g
	r.grades[g.ID] = &cp
	return nil
}

func (r *fakeGradeRepo) Upsert(_ context.Context, g *models.Grade) error {
	if existing := r.byEnrollment(g.EnrollmentID); existing != nil {
		existing.Score = g.Score
		existing.Comment = g.Comment
		g.ID = existing.ID
		return nil
	}
	r.nextID++
	g.ID = r.nextID
	cp := *g
	r.grades[g.ID] = &cp
	return nil
}

func (r *fakeGradeRepo) Update(_ context.Context, g *models.Grade) error {
	if _, ok := r.grades[g.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *g
	r.grades[g.ID] = &cp
	return nil
}

type fakeDocumentRepo struct {
	repository.DocumentRepository
	documents map[int64]*models.Document
	nextID    int64
	createErr error
	updateErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: map[int64]*models.Document{}}
}

func (r *fakeDocumentRepo) Create(_ context.Context, d *models.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	d.ID = r.nextID
	cp := *d
	r.documents[d.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id int64) (*models.Document, error) {
	d, ok := r.documents[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, d *models.Document) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	current, ok := r.documents[d.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Title = d.Title
	current.Description = d.Description
	current.FileType = d.FileType
	current.CourseID = d.CourseID
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.documents[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.documents, id)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users       map[int64]*models.User
	nextID      int64
	ensureCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return &repository.DuplicateError{Constraint: repository.UsersUsernameKey}
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) EnsureSystem(ctx context.Context, u *models.User) (*models.User, error) {
	r.ensureCalls++
	if existing, _ := r.GetByUsername(ctx, u.Username); existing != nil {
		return existing, nil
	}
	u.IsSystem = true
	if err := r.Create(ctx, u); err != nil {
		return nil, err
	}
	return r.GetByUsername(ctx, u.Username)
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeChatRepo struct {
	repository.ChatRepository
	messages []models.ChatMessage
}

func (r *fakeChatRepo) Create(_ context.Context, m *models.ChatMessage) error {
	m.ID = int64(len(r.messages) + 1)
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeChatRepo) GetRecent(_ context.Context, room string, limit int) ([]models.ChatMessage, error) {
	inRoom := []models.ChatMessage{}
	for _, m := range r.messages {
		if m.Room == room {
			inRoom = append(inRoom, m)
		}
	}
	if len(inRoom) > limit {
		inRoom = inRoom[len(inRoom)-limit:]
	}
	return inRoom, nil
}

type fakeDashboardRepo struct {
	repository.DashboardRepository
	snapshot *models.Dashboard
	topLimit int
}

func (r *fakeDashboardRepo) Snapshot(_ context.Context, topLimit int) (*models.Dashboard, error) {
	r.topLimit = topLimit
	cp := *r.snapshot
	cp.TopStudents = append([]models.TopStudent{}, r.snapshot.TopStudents...)
	cp.CourseStats = append([]models.CourseStatistic{}, r.snapshot.CourseStats...)
	return &cp, nil
}

func (r *fakeDashboardRepo) TopStudents(_ context.Context, limit int) ([]models.TopStudent, error) {
	r.topLimit = limit
	return append([]models.TopStudent{}, r.snapshot.TopStudents...), nil
}

type fakeStorage struct {
	objects   map[string][]byte
	deleteErr error
	statErr   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, key string, content io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Download(_ context.Context, key string) (io.ReadCloser, int64, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, 0, integration.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (s *fakeStorage) Stat(_ context.Context, key string) (int64, error) {
	if s.statErr != nil {
		return 0, s.statErr
	}
	data, ok := s.objects[key]
	if !ok {
		return 0, integration.ErrObjectNotFound
	}
	return int64(len(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

type publishedEvent struct {
	routingKey string
	event      interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{routingKey: routingKey, event: event})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.routingKey)
	}
	return keys
}
