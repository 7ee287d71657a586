package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	"github.com/campuskit/campus-api/internal/seed"
	"github.com/campuskit/campus-api/internal/service"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

// memoryCacheRepo is an in-process stand-in for the redis cache repository.
type memoryCacheRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{data: map[string][]byte{}}
}

func (r *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	r.mu.Lock()
	raw, ok := r.data[key]
	r.mu.Unlock()
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data[key] = raw
	r.mu.Unlock()
	return nil
}

func (r *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	r.mu.Lock()
	for key := range r.data {
		if strings.HasPrefix(key, prefix) {
			delete(r.data, key)
		}
	}
	r.mu.Unlock()
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	return newTestRouterWithCache(t, nil)
}

func newTestRouterWithCache(t *testing.T, cacheRepo service.CacheRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore()
	require.NoError(t, seed.Load(context.Background(), store, nil))

	authSvc := service.NewAuthService(store.Users, store.Tokens, nil, nil, service.AuthConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "campus-api",
	})
	userSvc := service.NewUserService(store.Users, nil, nil)
	studentSvc := service.NewStudentService(service.StudentServiceParams{
		Repo:        store.Students,
		Users:       store.Users,
		Enrollments: store.Enrollments,
		Assignments: store.Assignments,
		Courses:     store.Courses,
		Faculty:     store.Faculty,
		Attendance:  store.Attendance,
		Grades:      store.Grades,
	})
	facultySvc := service.NewFacultyService(store.Faculty, store.Users, store.Assignments, store.Courses, nil, nil)
	courseSvc := service.NewCourseService(store.Courses, store.Assignments, store.Faculty, store.Users, nil, nil)
	assignmentSvc := service.NewAssignmentService(store.Assignments, store.Courses, store.Faculty, nil, nil)
	enrollmentSvc := service.NewEnrollmentService(store.Enrollments, store.Students, store.Assignments, nil, nil)
	attendanceSvc := service.NewAttendanceService(store.Attendance, store.Enrollments, nil, nil)
	gradeSvc := service.NewGradeService(store.Grades, store.Enrollments, nil, nil)
	eventSvc := service.NewEventService(store.Events, nil, nil)
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	}
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Students:    store.Students,
		Faculty:     store.Faculty,
		Courses:     store.Courses,
		Assignments: store.Assignments,
		Enrollments: store.Enrollments,
		Attendance:  store.Attendance,
		Cache:       cacheSvc,
	})
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Students:    studentSvc,
		StudentRepo: store.Students,
		Users:       store.Users,
		Courses:     courseSvc,
		Assignments: store.Assignments,
		Enrollments: store.Enrollments,
	})
	metricsSvc := service.NewMetricsService()

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Auth:        NewAuthHandler(authSvc),
		Users:       NewUserHandler(userSvc),
		Students:    NewStudentHandler(studentSvc),
		Faculty:     NewFacultyHandler(facultySvc),
		Courses:     NewCourseHandler(courseSvc),
		Assignments: NewAssignmentHandler(assignmentSvc),
		Enrollments: NewEnrollmentHandler(enrollmentSvc),
		Attendance:  NewAttendanceHandler(attendanceSvc),
		Grades:      NewGradeHandler(gradeSvc),
		Events:      NewEventHandler(eventSvc),
		Dashboard:   NewDashboardHandler(dashboardSvc),
		Exports:     NewExportHandler(exportSvc),
		Metrics:     NewMetricsHandler(metricsSvc),
	}, authSvc, dashboardSvc)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.Credentials{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)
	return envelope.Data.AccessToken
}

func TestLoginAndMe(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin", "admin123")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "admin", envelope.Data.Username)
	assert.Equal(t, string(models.RoleAdmin), envelope.Data.Role)
}

func TestLoginBadPassword(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.Credentials{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardStatsForbiddenForStudents(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "adiaz", "student123")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardStatsAsAdmin(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin", "admin123")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			TotalStudents int     `json:"total_students"`
			TotalCourses  int     `json:"total_courses"`
			ActiveCourses int     `json:"active_courses"`
			Attendance    float64 `json:"attendance_rate"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 4, envelope.Data.TotalStudents)
	assert.Equal(t, 4, envelope.Data.TotalCourses)
	assert.Equal(t, 3, envelope.Data.ActiveCourses)
	assert.InDelta(t, 80.0, envelope.Data.Attendance, 0.001)
	assert.Contains(t, envelope.Meta, "cache_hit")
}

func TestStudentCanReadOwnUserButNotOthers(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "adiaz", "student123")

	// Seeded order: admin is user 1, faculty 2-3, adiaz is user 4.
	own := doJSON(t, r, http.MethodGet, "/api/v1/users/4", token, nil)
	assert.Equal(t, http.StatusOK, own.Code)

	other := doJSON(t, r, http.MethodGet, "/api/v1/users/1", token, nil)
	assert.Equal(t, http.StatusForbidden, other.Code)
}

func TestCourseRosterRequiresStaff(t *testing.T) {
	r := newTestRouter(t)

	student := login(t, r, "adiaz", "student123")
	rec := doJSON(t, r, http.MethodGet, "/api/v1/courses/1/roster", student, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := login(t, r, "admin", "admin123")
	rec = doJSON(t, r, http.MethodGet, "/api/v1/courses/1/roster?format=csv", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "roster_CS101_")
	assert.Contains(t, rec.Body.String(), "S-20001")
}

func TestDashboardCacheInvalidatedByWrites(t *testing.T) {
	r := newTestRouterWithCache(t, newMemoryCacheRepo())
	token := login(t, r, "admin", "admin123")

	type statsEnvelope struct {
		Data struct {
			TotalStudents int `json:"total_students"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	fetchStats := func() statsEnvelope {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var envelope statsEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		return envelope
	}

	first := fetchStats()
	assert.Equal(t, false, first.Meta["cache_hit"])
	assert.Equal(t, 4, first.Data.TotalStudents)

	second := fetchStats()
	assert.Equal(t, true, second.Meta["cache_hit"])

	rec := doJSON(t, r, http.MethodPost, "/api/v1/users", token, map[string]interface{}{
		"username":  "uvega",
		"password":  "secret123",
		"email":     "u.vega@example.edu",
		"full_name": "Uma Vega",
		"role":      string(models.RoleStudent),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, r, http.MethodPost, "/api/v1/students", token, map[string]interface{}{
		"user_id":    created.Data.ID,
		"student_id": "S-20005",
		"program":    "BS Computer Science",
		"year_level": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	third := fetchStats()
	assert.Equal(t, false, third.Meta["cache_hit"])
	assert.Equal(t, 5, third.Data.TotalStudents)
}

func TestCreateAndEnrollFlow(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin", "admin123")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"student_id":           4,
		"course_assignment_id": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope struct {
		Data models.Enrollment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, models.EnrollmentStatusEnrolled, envelope.Data.Status)

	// Unknown assignment is rejected before anything is written.
	rec = doJSON(t, r, http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"student_id":           4,
		"course_assignment_id": 99,
	})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}
