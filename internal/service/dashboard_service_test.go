package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
)

func newDashboardService(store *repository.Store) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Students:    store.Students,
		Faculty:     store.Faculty,
		Courses:     store.Courses,
		Assignments: store.Assignments,
		Enrollments: store.Enrollments,
		Attendance:  store.Attendance,
	})
}

type unreachableCacheRepo struct{}

func (unreachableCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
}

func (unreachableCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
}

func (unreachableCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	return errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
}

func TestDashboardStatsSurvivesCacheOutage(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore()
	for _, c := range []models.Course{
		{Code: "C1", Title: "One", Credits: 3, Department: "CS", Status: models.CourseStatusActive},
		{Code: "C2", Title: "Two", Credits: 3, Department: "CS", Status: models.CourseStatusPending},
	} {
		_, err := store.Courses.Create(ctx, c)
		require.NoError(t, err)
	}

	svc := NewDashboardService(DashboardServiceParams{
		Students:    store.Students,
		Faculty:     store.Faculty,
		Courses:     store.Courses,
		Assignments: store.Assignments,
		Enrollments: store.Enrollments,
		Attendance:  store.Attendance,
		Cache:       NewCacheService(unreachableCacheRepo{}, nil, time.Minute, nil, true),
	})

	stats, cached, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, stats.TotalCourses)
	assert.Equal(t, 1, stats.ActiveCourses)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	store := repository.NewStore()
	svc := newDashboardService(store)

	stats, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Zero(t, stats.TotalStudents)
	assert.Zero(t, stats.TotalCourses)
	assert.Zero(t, stats.AttendanceRate)
	assert.Zero(t, stats.CourseStatistics.Active.Percentage)
	assert.Empty(t, stats.PopularCourses)
}

func TestDashboardStatsCourseBreakdown(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore()

	for _, c := range []models.Course{
		{Code: "C1", Title: "One", Credits: 3, Department: "CS", Status: models.CourseStatusActive},
		{Code: "C2", Title: "Two", Credits: 3, Department: "CS", Status: models.CourseStatusActive},
		{Code: "C3", Title: "Three", Credits: 3, Department: "CS", Status: models.CourseStatusPending},
		{Code: "C4", Title: "Four", Credits: 3, Department: "CS", Status: models.CourseStatusArchived},
	} {
		_, err := store.Courses.Create(ctx, c)
		require.NoError(t, err)
	}

	stats, _, err := newDashboardService(store).Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalCourses)
	assert.Equal(t, 2, stats.ActiveCourses)
	assert.Equal(t, 2, stats.CourseStatistics.Active.Count)
	assert.InDelta(t, 50.0, stats.CourseStatistics.Active.Percentage, 0.001)
	assert.Equal(t, 1, stats.CourseStatistics.Pending.Count)
	assert.InDelta(t, 25.0, stats.CourseStatistics.Pending.Percentage, 0.001)
	assert.Equal(t, 1, stats.CourseStatistics.Archived.Count)
	assert.InDelta(t, 25.0, stats.CourseStatistics.Archived.Percentage, 0.001)
}

func TestDashboardStatsAttendanceRate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore()

	// Present and late count as attended; absent and excused do not.
	statuses := []models.AttendanceStatus{
		models.AttendanceStatusPresent,
		models.AttendanceStatusPresent,
		models.AttendanceStatusLate,
		models.AttendanceStatusAbsent,
		models.AttendanceStatusExcused,
	}
	for _, status := range statuses {
		_, err := store.Attendance.Create(ctx, models.Attendance{EnrollmentID: 1, Date: time.Now(), Status: status})
		require.NoError(t, err)
	}

	stats, _, err := newDashboardService(store).Stats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, stats.AttendanceRate, 0.001)
}

func TestDashboardStatsAttendanceRateRounding(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore()

	// 1 of 3 attended: 33.333... rounds to 33.3.
	for _, status := range []models.AttendanceStatus{
		models.AttendanceStatusPresent,
		models.AttendanceStatusAbsent,
		models.AttendanceStatusAbsent,
	} {
		_, err := store.Attendance.Create(ctx, models.Attendance{EnrollmentID: 1, Date: time.Now(), Status: status})
		require.NoError(t, err)
	}

	stats, _, err := newDashboardService(store).Stats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 33.3, stats.AttendanceRate, 0.001)
}

func TestDashboardStatsPopularCourses(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore()

	codes := []string{"A", "B", "C", "D"}
	courses := make([]models.Course, 0, len(codes))
	assignments := make([]models.CourseAssignment, 0, len(codes))
	for _, code := range codes {
		course, err := store.Courses.Create(ctx, models.Course{Code: code, Title: code, Credits: 3, Department: "CS", Status: models.CourseStatusActive})
		require.NoError(t, err)
		courses = append(courses, course)
		assignment, err := store.Assignments.Create(ctx, models.CourseAssignment{CourseID: course.ID, FacultyID: 1, Semester: "Spring", Year: 2026})
		require.NoError(t, err)
		assignments = append(assignments, assignment)
	}

	// Enrollment volume: B=3, A=2, C=1, D=0.
	counts := map[int]int{0: 2, 1: 3, 2: 1}
	studentID := int64(1)
	for idx, n := range counts {
		for i := 0; i < n; i++ {
			_, err := store.Enrollments.Create(ctx, models.Enrollment{StudentID: studentID, CourseAssignmentID: assignments[idx].ID, EnrollmentDate: time.Now(), Status: models.EnrollmentStatusEnrolled})
			require.NoError(t, err)
			studentID++
		}
	}

	stats, _, err := newDashboardService(store).Stats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.PopularCourses, 3)
	assert.Equal(t, "B", stats.PopularCourses[0].Code)
	assert.Equal(t, 3, stats.PopularCourses[0].StudentCount)
	assert.Equal(t, "A", stats.PopularCourses[1].Code)
	assert.Equal(t, 2, stats.PopularCourses[1].StudentCount)
	assert.Equal(t, "C", stats.PopularCourses[2].Code)
	assert.Equal(t, 1, stats.PopularCourses[2].StudentCount)
}

func TestDashboardStatsPopularCoursesTieKeepsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore()

	for _, code := range []string{"A", "B"} {
		_, err := store.Courses.Create(ctx, models.Course{Code: code, Title: code, Credits: 3, Department: "CS", Status: models.CourseStatusActive})
		require.NoError(t, err)
	}

	stats, _, err := newDashboardService(store).Stats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.PopularCourses, 2)
	assert.Equal(t, "A", stats.PopularCourses[0].Code)
	assert.Equal(t, "B", stats.PopularCourses[1].Code)
}

func TestDashboardStatsSkipsDanglingEnrollments(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore()

	course, err := store.Courses.Create(ctx, models.Course{Code: "A", Title: "A", Credits: 3, Department: "CS", Status: models.CourseStatusActive})
	require.NoError(t, err)
	_, err = store.Enrollments.Create(ctx, models.Enrollment{StudentID: 1, CourseAssignmentID: 999, EnrollmentDate: time.Now(), Status: models.EnrollmentStatusEnrolled})
	require.NoError(t, err)

	stats, _, err := newDashboardService(store).Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.PopularCourses, 1)
	assert.Equal(t, course.Code, stats.PopularCourses[0].Code)
	assert.Zero(t, stats.PopularCourses[0].StudentCount)
}
