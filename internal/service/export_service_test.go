package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

func newExportService(store *repository.Store) *ExportService {
	students := newStudentService(store, JoinLenient)
	courses := NewCourseService(store.Courses, store.Assignments, store.Faculty, store.Users, nil, nil)
	return NewExportService(ExportServiceParams{
		Students:    students,
		StudentRepo: store.Students,
		Users:       store.Users,
		Courses:     courses,
		Assignments: store.Assignments,
		Enrollments: store.Enrollments,
	})
}

func TestExportRosterCSV(t *testing.T) {
	fx := seedRecordFixture(t)
	svc := newExportService(fx.store)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	result, err := svc.Roster(context.Background(), fx.course.ID, ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "roster_CS101_20260301_120000.csv", result.Filename)

	body := string(result.Payload)
	assert.True(t, strings.HasPrefix(body, "Student ID,Name,Semester,Year,Status,Enrolled On"))
	assert.Contains(t, body, "S-20001")
	assert.Contains(t, body, "Ana Diaz")
	assert.Contains(t, body, "Spring")
}

func TestExportRosterExcel(t *testing.T) {
	fx := seedRecordFixture(t)
	svc := newExportService(fx.store)

	result, err := svc.Roster(context.Background(), fx.course.ID, ExportFormatExcel)
	require.NoError(t, err)
	assert.Equal(t, ExportFormatExcel.ContentType(), result.ContentType)
	assert.NotEmpty(t, result.Payload)
}

func TestExportRosterUnknownCourse(t *testing.T) {
	svc := newExportService(repository.NewStore())

	_, err := svc.Roster(context.Background(), 42, ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportRosterUnsupportedFormat(t *testing.T) {
	fx := seedRecordFixture(t)
	svc := newExportService(fx.store)

	_, err := svc.Roster(context.Background(), fx.course.ID, ExportFormat("docx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportTranscriptPDF(t *testing.T) {
	fx := seedRecordFixture(t)
	svc := newExportService(fx.store)

	result, err := svc.Transcript(context.Background(), fx.student.ID)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "transcript_S-20001_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportTranscriptUnknownStudent(t *testing.T) {
	svc := newExportService(repository.NewStore())

	_, err := svc.Transcript(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
