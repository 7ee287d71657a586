package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type enrollmentFixture struct {
	store      *repository.Store
	svc        *EnrollmentService
	student    models.Student
	assignment models.CourseAssignment
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewStore()

	user, err := store.Users.Create(ctx, models.User{Username: "adiaz", Password: "pw", FullName: "Ana Diaz", Role: models.RoleStudent})
	require.NoError(t, err)
	student, err := store.Students.Create(ctx, models.Student{UserID: user.ID, StudentID: "S-1", Program: "CS", YearLevel: 2, Status: models.ProfileStatusActive, EnrollmentDate: time.Now()})
	require.NoError(t, err)
	course, err := store.Courses.Create(ctx, models.Course{Code: "CS101", Title: "Intro", Credits: 3, Department: "CS", Status: models.CourseStatusActive})
	require.NoError(t, err)
	assignment, err := store.Assignments.Create(ctx, models.CourseAssignment{CourseID: course.ID, FacultyID: 1, Semester: "Spring", Year: 2026})
	require.NoError(t, err)

	svc := NewEnrollmentService(store.Enrollments, store.Students, store.Assignments, nil, nil)
	return &enrollmentFixture{store: store, svc: svc, student: student, assignment: assignment}
}

func TestEnrollmentCreateDefaultsStatusAndDate(t *testing.T) {
	f := newEnrollmentFixture(t)
	fixed := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }

	enrollment, err := f.svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:          f.student.ID,
		CourseAssignmentID: f.assignment.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusEnrolled, enrollment.Status)
	assert.Equal(t, fixed, enrollment.EnrollmentDate)
}

func TestEnrollmentCreateUnknownStudent(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:          999,
		CourseAssignmentID: f.assignment.ID,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentCreateUnknownAssignment(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.svc.Create(context.Background(), CreateEnrollmentRequest{
		StudentID:          f.student.ID,
		CourseAssignmentID: 999,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentUpdateStatus(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	enrollment, err := f.svc.Create(ctx, CreateEnrollmentRequest{StudentID: f.student.ID, CourseAssignmentID: f.assignment.ID})
	require.NoError(t, err)

	dropped := models.EnrollmentStatusDropped
	updated, err := f.svc.Update(ctx, enrollment.ID, models.EnrollmentPatch{Status: &dropped})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusDropped, updated.Status)
	assert.Equal(t, f.student.ID, updated.StudentID)
}

func TestEnrollmentUpdateRejectsInvalidStatus(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	enrollment, err := f.svc.Create(ctx, CreateEnrollmentRequest{StudentID: f.student.ID, CourseAssignmentID: f.assignment.ID})
	require.NoError(t, err)

	bogus := models.EnrollmentStatus("suspended")
	_, err = f.svc.Update(ctx, enrollment.ID, models.EnrollmentPatch{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentUpdateRetargetChecked(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	enrollment, err := f.svc.Create(ctx, CreateEnrollmentRequest{StudentID: f.student.ID, CourseAssignmentID: f.assignment.ID})
	require.NoError(t, err)

	missing := int64(404)
	_, err = f.svc.Update(ctx, enrollment.ID, models.EnrollmentPatch{CourseAssignmentID: &missing})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentDeleteLeavesDependents(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	enrollment, err := f.svc.Create(ctx, CreateEnrollmentRequest{StudentID: f.student.ID, CourseAssignmentID: f.assignment.ID})
	require.NoError(t, err)
	_, err = f.store.Attendance.Create(ctx, models.Attendance{EnrollmentID: enrollment.ID, Date: time.Now(), Status: models.AttendanceStatusPresent})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, enrollment.ID))
	assert.Zero(t, f.store.Enrollments.CountByAssignment(ctx, f.assignment.ID))
	assert.Len(t, f.store.Attendance.List(ctx), 1)

	err = f.svc.Delete(ctx, enrollment.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
