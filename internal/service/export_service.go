package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
	"github.com/campuskit/campus-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatExcel ExportFormat = "xlsx"
	ExportFormatPDF   ExportFormat = "pdf"
)

// ContentType returns the MIME type for download responses.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportFormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type excelRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type studentDetailsProvider interface {
	Details(ctx context.Context, id int64) (*models.StudentRecord, error)
}

type courseGetter interface {
	Get(ctx context.Context, id int64) (models.Course, error)
}

type rosterEnrollmentLister interface {
	ListByAssignment(ctx context.Context, assignmentID int64) []models.Enrollment
}

// ExportResult carries a rendered payload ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders course rosters and student transcripts.
type ExportService struct {
	students    studentDetailsProvider
	studentRepo studentReader
	users       userReader
	courses     courseGetter
	assignments assignmentsByCourseLister
	enrollments rosterEnrollmentLister
	csv         csvRenderer
	excel       excelRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
	now         func() time.Time
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Students    studentDetailsProvider
	StudentRepo studentReader
	Users       userReader
	Courses     courseGetter
	Assignments assignmentsByCourseLister
	Enrollments rosterEnrollmentLister
	Logger      *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:    params.Students,
		studentRepo: params.StudentRepo,
		users:       params.Users,
		courses:     params.Courses,
		assignments: params.Assignments,
		enrollments: params.Enrollments,
		csv:         export.NewCSVExporter(),
		excel:       export.NewExcelExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
		now:         time.Now,
	}
}

// Roster renders the enrollment roster for one course as CSV or Excel.
func (s *ExportService) Roster(ctx context.Context, courseID int64, format ExportFormat) (*ExportResult, error) {
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Student ID", "Name", "Semester", "Year", "Status", "Enrolled On"},
		Rows:    []map[string]string{},
	}
	for _, assignment := range s.assignments.ListByCourse(ctx, courseID) {
		for _, enrollment := range s.enrollments.ListByAssignment(ctx, assignment.ID) {
			row := map[string]string{
				"Semester":    assignment.Semester,
				"Year":        fmt.Sprintf("%d", assignment.Year),
				"Status":      string(enrollment.Status),
				"Enrolled On": enrollment.EnrollmentDate.UTC().Format("2006-01-02"),
			}
			if student, err := s.studentRepo.FindByID(ctx, enrollment.StudentID); err == nil {
				row["Student ID"] = student.StudentID
				if user, err := s.users.FindByID(ctx, student.UserID); err == nil {
					row["Name"] = user.FullName
				}
			}
			dataset.Rows = append(dataset.Rows, row)
		}
	}

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatExcel:
		payload, err = s.excel.Render(dataset, "Roster")
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported roster format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}

	return &ExportResult{
		Filename:    s.buildFilename("roster", course.Code, string(format)),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

// Transcript renders a student's full academic record as PDF.
func (s *ExportService) Transcript(ctx context.Context, studentID int64) (*ExportResult, error) {
	record, err := s.students.Details(ctx, studentID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Course", "Semester", "Year", "Status", "Grade Items", "Average (%)"},
		Rows:    []map[string]string{},
	}
	for _, enrollment := range record.Enrollments {
		row := map[string]string{
			"Course":      "",
			"Semester":    enrollment.Semester,
			"Year":        fmt.Sprintf("%d", enrollment.Year),
			"Status":      string(enrollment.Status),
			"Grade Items": fmt.Sprintf("%d", len(enrollment.Grades)),
			"Average (%)": gradeAverage(enrollment.Grades),
		}
		if enrollment.Course != nil {
			row["Course"] = fmt.Sprintf("%s %s", enrollment.Course.Code, enrollment.Course.Title)
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	title := fmt.Sprintf("Transcript %s %s", record.StudentID, record.User.FullName)
	payload, err := s.pdf.Render(dataset, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}

	return &ExportResult{
		Filename:    s.buildFilename("transcript", record.StudentID, "pdf"),
		ContentType: ExportFormatPDF.ContentType(),
		Payload:     payload,
	}, nil
}

func (s *ExportService) buildFilename(kind, key, ext string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", kind, sanitizeFilename(key), timestamp, ext)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func gradeAverage(grades []models.Grade) string {
	if len(grades) == 0 {
		return ""
	}
	var total float64
	for _, grade := range grades {
		if grade.MaxScore > 0 {
			total += grade.Score / grade.MaxScore * 100
		}
	}
	return fmt.Sprintf("%.2f", total/float64(len(grades)))
}
