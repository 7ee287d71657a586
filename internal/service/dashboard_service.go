package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/dto"
	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

const dashboardStatsCacheKey = "dash:stats"

type studentCounter interface {
	Count(ctx context.Context) int
}

type facultyCounter interface {
	Count(ctx context.Context) int
}

type courseLister interface {
	List(ctx context.Context) []models.Course
}

type allAssignmentsLister interface {
	List(ctx context.Context) []models.CourseAssignment
}

type allEnrollmentsLister interface {
	List(ctx context.Context) []models.Enrollment
}

type allAttendanceLister interface {
	List(ctx context.Context) []models.Attendance
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL           time.Duration
	PopularCoursesSize int
}

// DashboardService composes the admin landing-page statistics.
type DashboardService struct {
	students    studentCounter
	faculty     facultyCounter
	courses     courseLister
	assignments allAssignmentsLister
	enrollments allEnrollmentsLister
	attendance  allAttendanceLister
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	cfg         DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students    studentCounter
	Faculty     facultyCounter
	Courses     courseLister
	Assignments allAssignmentsLister
	Enrollments allEnrollmentsLister
	Attendance  allAttendanceLister
	Cache       *CacheService
	Metrics     *MetricsService
	Logger      *zap.Logger
	Config      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.PopularCoursesSize <= 0 {
		cfg.PopularCoursesSize = 3
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:    params.Students,
		faculty:     params.Faculty,
		courses:     params.Courses,
		assignments: params.Assignments,
		enrollments: params.Enrollments,
		attendance:  params.Attendance,
		cache:       params.Cache,
		metrics:     params.Metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// Stats returns the dashboard summary and indicates cache utilisation.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, bool, error) {
	if s.cache != nil {
		var cached dto.DashboardStats
		hit, err := s.cache.Get(ctx, dashboardStatsCacheKey, &cached)
		if err != nil {
			// An unreachable cache must not take the stats down with it.
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	stats := s.compose(ctx)
	if s.metrics != nil {
		s.metrics.ObserveStoreOp("dashboard_stats", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardStatsCacheKey, stats, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, false, nil
}

// Refresh drops cached dashboard payloads so the next read recomputes.
func (s *DashboardService) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate dashboard cache")
	}
	return nil
}

func (s *DashboardService) compose(ctx context.Context) *dto.DashboardStats {
	courses := s.courses.List(ctx)

	stats := &dto.DashboardStats{
		TotalStudents:  s.students.Count(ctx),
		TotalFaculty:   s.faculty.Count(ctx),
		TotalCourses:   len(courses),
		PopularCourses: []dto.PopularCourse{},
	}

	var active, pending, archived int
	for _, course := range courses {
		switch course.Status {
		case models.CourseStatusActive:
			active++
		case models.CourseStatusPending:
			pending++
		case models.CourseStatusArchived:
			archived++
		}
	}
	stats.ActiveCourses = active
	stats.CourseStatistics = dto.CourseStatistics{
		Active:   dto.StatusStat{Count: active, Percentage: percentage(active, len(courses))},
		Pending:  dto.StatusStat{Count: pending, Percentage: percentage(pending, len(courses))},
		Archived: dto.StatusStat{Count: archived, Percentage: percentage(archived, len(courses))},
	}

	stats.AttendanceRate = s.attendanceRate(ctx)
	stats.PopularCourses = s.popularCourses(ctx, courses)
	return stats
}

// attendanceRate treats present and late as attended, over every record in
// the store. An empty store yields 0 rather than NaN.
func (s *DashboardService) attendanceRate(ctx context.Context) float64 {
	records := s.attendance.List(ctx)
	if len(records) == 0 {
		return 0
	}
	counted := 0
	for _, record := range records {
		if record.Status.Counted() {
			counted++
		}
	}
	return round1(float64(counted) / float64(len(records)) * 100)
}

// popularCourses ranks courses by enrollments summed across all their
// assignments. Ties keep catalog insertion order.
func (s *DashboardService) popularCourses(ctx context.Context, courses []models.Course) []dto.PopularCourse {
	assignmentCourse := make(map[int64]int64)
	for _, assignment := range s.assignments.List(ctx) {
		assignmentCourse[assignment.ID] = assignment.CourseID
	}

	enrollmentTotals := make(map[int64]int)
	for _, enrollment := range s.enrollments.List(ctx) {
		if courseID, ok := assignmentCourse[enrollment.CourseAssignmentID]; ok {
			enrollmentTotals[courseID]++
		}
	}

	ranked := make([]dto.PopularCourse, 0, len(courses))
	for _, course := range courses {
		ranked = append(ranked, dto.PopularCourse{
			ID:           course.ID,
			Code:         course.Code,
			Title:        course.Title,
			StudentCount: enrollmentTotals[course.ID],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].StudentCount > ranked[j].StudentCount
	})
	if len(ranked) > s.cfg.PopularCoursesSize {
		ranked = ranked[:s.cfg.PopularCoursesSize]
	}
	return ranked
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
