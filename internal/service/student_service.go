package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type studentRepository interface {
	Create(ctx context.Context, student models.Student) (models.Student, error)
	FindByID(ctx context.Context, id int64) (models.Student, error)
	FindByStudentID(ctx context.Context, code string) (models.Student, error)
	FindByUserID(ctx context.Context, userID int64) (models.Student, error)
	List(ctx context.Context) []models.Student
	Update(ctx context.Context, id int64, patch models.StudentPatch) (models.Student, error)
	Delete(ctx context.Context, id int64) bool
}

type userReader interface {
	FindByID(ctx context.Context, id int64) (models.User, error)
}

type enrollmentsByStudentLister interface {
	ListByStudent(ctx context.Context, studentID int64) []models.Enrollment
}

type assignmentReader interface {
	FindByID(ctx context.Context, id int64) (models.CourseAssignment, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id int64) (models.Course, error)
}

type facultyReader interface {
	FindByID(ctx context.Context, id int64) (models.Faculty, error)
}

type attendanceByEnrollmentLister interface {
	ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Attendance
}

type gradesByEnrollmentLister interface {
	ListByEnrollment(ctx context.Context, enrollmentID int64) []models.Grade
}

// CreateStudentRequest describes the payload for student profile creation.
type CreateStudentRequest struct {
	UserID         int64     `json:"user_id" validate:"required"`
	StudentID      string    `json:"student_id" validate:"required"`
	Program        string    `json:"program" validate:"required"`
	YearLevel      int       `json:"year_level" validate:"gte=1"`
	Status         string    `json:"status"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// StudentService orchestrates student profiles and the denormalized
// student record view.
type StudentService struct {
	repo        studentRepository
	users       userReader
	enrollments enrollmentsByStudentLister
	assignments assignmentReader
	courses     courseReader
	faculty     facultyReader
	attendance  attendanceByEnrollmentLister
	grades      gradesByEnrollmentLister
	validator   *validator.Validate
	logger      *zap.Logger
	joinMode    JoinMode
}

// StudentServiceParams groups constructor dependencies.
type StudentServiceParams struct {
	Repo        studentRepository
	Users       userReader
	Enrollments enrollmentsByStudentLister
	Assignments assignmentReader
	Courses     courseReader
	Faculty     facultyReader
	Attendance  attendanceByEnrollmentLister
	Grades      gradesByEnrollmentLister
	Validator   *validator.Validate
	Logger      *zap.Logger
	JoinMode    JoinMode
}

// NewStudentService constructs a StudentService.
func NewStudentService(params StudentServiceParams) *StudentService {
	v := params.Validator
	if v == nil {
		v = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:        params.Repo,
		users:       params.Users,
		enrollments: params.Enrollments,
		assignments: params.Assignments,
		courses:     params.Courses,
		faculty:     params.Faculty,
		attendance:  params.Attendance,
		grades:      params.Grades,
		validator:   v,
		logger:      logger,
		joinMode:    params.JoinMode,
	}
}

// Create registers a student profile for an existing user. A user carries at
// most one student profile.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if existing, err := s.repo.FindByUserID(ctx, req.UserID); err == nil {
		s.logger.Debug("student profile exists", zap.Int64("user_id", req.UserID), zap.Int64("student_id", existing.ID))
		return models.Student{}, appErrors.Clone(appErrors.ErrConflict, "user already has a student profile")
	}

	status := models.ProfileStatus(req.Status)
	if status == "" {
		status = models.ProfileStatusActive
	}
	enrollmentDate := req.EnrollmentDate
	if enrollmentDate.IsZero() {
		enrollmentDate = time.Now().UTC()
	}

	student, err := s.repo.Create(ctx, models.Student{
		UserID:         req.UserID,
		StudentID:      req.StudentID,
		Program:        req.Program,
		YearLevel:      req.YearLevel,
		Status:         status,
		EnrollmentDate: enrollmentDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Student{}, appErrors.Clone(appErrors.ErrConflict, "student id already taken")
		}
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Get fetches a student profile by id.
func (s *StudentService) Get(ctx context.Context, id int64) (models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// GetByStudentID fetches a student profile by its student code.
func (s *StudentService) GetByStudentID(ctx context.Context, code string) (models.Student, error) {
	student, err := s.repo.FindByStudentID(ctx, code)
	if err != nil {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// GetByUserID fetches the student profile owned by a user.
func (s *StudentService) GetByUserID(ctx context.Context, userID int64) (models.Student, error) {
	student, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// List returns all student profiles.
func (s *StudentService) List(ctx context.Context) []models.Student {
	return s.repo.List(ctx)
}

// Update merges a partial patch into the student profile.
func (s *StudentService) Update(ctx context.Context, id int64, patch models.StudentPatch) (models.Student, error) {
	student, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Student{}, appErrors.Clone(appErrors.ErrConflict, "student id already taken")
		}
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// Delete removes the student profile without cascading to enrollments.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}

// Details assembles the denormalized student record: profile and user
// identity plus one block per enrollment carrying the offering, its course
// and faculty, and the attendance and grade rows for that enrollment.
// Under the lenient join mode an enrollment whose offering no longer
// resolves is dropped from the result; missing course or faculty rows leave
// that field null without failing the view.
func (s *StudentService) Details(ctx context.Context, id int64) (*models.StudentRecord, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	user, err := s.users.FindByID(ctx, student.UserID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	record := &models.StudentRecord{
		Student:     student,
		User:        user,
		Enrollments: []models.EnrollmentRecord{},
	}

	for _, enrollment := range s.enrollments.ListByStudent(ctx, id) {
		assignment, err := s.assignments.FindByID(ctx, enrollment.CourseAssignmentID)
		if err != nil {
			if s.joinMode == JoinStrict {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "course assignment not found")
			}
			continue
		}

		block := models.EnrollmentRecord{
			Enrollment: enrollment,
			Semester:   assignment.Semester,
			Year:       assignment.Year,
			Attendance: s.attendance.ListByEnrollment(ctx, enrollment.ID),
			Grades:     s.grades.ListByEnrollment(ctx, enrollment.ID),
		}
		if block.Attendance == nil {
			block.Attendance = []models.Attendance{}
		}
		if block.Grades == nil {
			block.Grades = []models.Grade{}
		}

		if course, err := s.courses.FindByID(ctx, assignment.CourseID); err == nil {
			block.Course = &course
		} else if s.joinMode == JoinStrict {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}

		if faculty, err := s.faculty.FindByID(ctx, assignment.FacultyID); err == nil {
			block.Faculty = &faculty
			if facultyUser, err := s.users.FindByID(ctx, faculty.UserID); err == nil {
				block.FacultyName = facultyUser.FullName
			}
		} else if s.joinMode == JoinStrict {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}

		record.Enrollments = append(record.Enrollments, block)
	}

	return record, nil
}
