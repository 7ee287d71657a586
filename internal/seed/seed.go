// Package seed loads a small demo roster into an empty store so the API is
// explorable right after boot.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
)

func strPtr(s string) *string { return &s }

// Load populates the store with demo users, courses, enrollments and a few
// weeks of attendance and grades. It is a no-op when users already exist.
func Load(ctx context.Context, store *repository.Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(store.Users.List(ctx)) > 0 {
		logger.Info("seed skipped, store not empty")
		return nil
	}

	now := time.Now().UTC()
	termStart := time.Date(now.Year(), time.January, 12, 0, 0, 0, 0, time.UTC)

	admin, err := store.Users.Create(ctx, models.User{
		Username: "admin",
		Password: "admin123",
		Email:    "admin@campuskit.edu",
		FullName: "System Administrator",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	facultyUsers := []models.User{
		{Username: "mreyes", Password: "faculty123", Email: "m.reyes@campuskit.edu", FullName: "Maria Reyes", Role: models.RoleFaculty},
		{Username: "jtan", Password: "faculty123", Email: "j.tan@campuskit.edu", FullName: "Jonathan Tan", Role: models.RoleFaculty},
	}
	faculty := make([]models.Faculty, 0, len(facultyUsers))
	for i, u := range facultyUsers {
		created, err := store.Users.Create(ctx, u)
		if err != nil {
			return fmt.Errorf("seed faculty user %s: %w", u.Username, err)
		}
		member, err := store.Faculty.Create(ctx, models.Faculty{
			UserID:    created.ID,
			FacultyID: fmt.Sprintf("F-%04d", 1001+i),
			Department: []string{
				"Computer Science",
				"Mathematics",
			}[i],
			Position: "Assistant Professor",
			JoinDate: termStart.AddDate(-2, 0, 0),
			Status:   models.ProfileStatusActive,
		})
		if err != nil {
			return fmt.Errorf("seed faculty %s: %w", u.Username, err)
		}
		faculty = append(faculty, member)
	}

	studentUsers := []models.User{
		{Username: "adiaz", Password: "student123", Email: "a.diaz@campuskit.edu", FullName: "Ana Diaz", Role: models.RoleStudent},
		{Username: "bsantos", Password: "student123", Email: "b.santos@campuskit.edu", FullName: "Bruno Santos", Role: models.RoleStudent},
		{Username: "clim", Password: "student123", Email: "c.lim@campuskit.edu", FullName: "Carla Lim", Role: models.RoleStudent},
		{Username: "dcruz", Password: "student123", Email: "d.cruz@campuskit.edu", FullName: "Diego Cruz", Role: models.RoleStudent},
	}
	students := make([]models.Student, 0, len(studentUsers))
	for i, u := range studentUsers {
		created, err := store.Users.Create(ctx, u)
		if err != nil {
			return fmt.Errorf("seed student user %s: %w", u.Username, err)
		}
		student, err := store.Students.Create(ctx, models.Student{
			UserID:         created.ID,
			StudentID:      fmt.Sprintf("S-%05d", 20001+i),
			Program:        "BS Computer Science",
			YearLevel:      1 + i%3,
			Status:         models.ProfileStatusActive,
			EnrollmentDate: termStart,
		})
		if err != nil {
			return fmt.Errorf("seed student %s: %w", u.Username, err)
		}
		students = append(students, student)
	}

	courseDefs := []models.Course{
		{Code: "CS101", Title: "Introduction to Programming", Description: strPtr("Foundations of programming with hands-on labs."), Credits: 3, Department: "Computer Science", Status: models.CourseStatusActive},
		{Code: "CS204", Title: "Data Structures", Credits: 4, Department: "Computer Science", Status: models.CourseStatusActive},
		{Code: "MATH110", Title: "Calculus I", Credits: 4, Department: "Mathematics", Status: models.CourseStatusActive},
		{Code: "CS330", Title: "Operating Systems", Credits: 3, Department: "Computer Science", Status: models.CourseStatusPending},
	}
	courses := make([]models.Course, 0, len(courseDefs))
	for _, def := range courseDefs {
		course, err := store.Courses.Create(ctx, def)
		if err != nil {
			return fmt.Errorf("seed course %s: %w", def.Code, err)
		}
		courses = append(courses, course)
	}

	assignmentDefs := []models.CourseAssignment{
		{CourseID: courses[0].ID, FacultyID: faculty[0].ID, Semester: "Spring", Year: now.Year()},
		{CourseID: courses[1].ID, FacultyID: faculty[0].ID, Semester: "Spring", Year: now.Year()},
		{CourseID: courses[2].ID, FacultyID: faculty[1].ID, Semester: "Spring", Year: now.Year()},
	}
	assignments := make([]models.CourseAssignment, 0, len(assignmentDefs))
	for _, def := range assignmentDefs {
		assignment, err := store.Assignments.Create(ctx, def)
		if err != nil {
			return fmt.Errorf("seed assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	enrollmentPlan := []struct {
		student    int
		assignment int
	}{
		{0, 0}, {0, 2},
		{1, 0}, {1, 1},
		{2, 1}, {2, 2},
		{3, 0},
	}
	enrollments := make([]models.Enrollment, 0, len(enrollmentPlan))
	for _, plan := range enrollmentPlan {
		enrollment, err := store.Enrollments.Create(ctx, models.Enrollment{
			StudentID:          students[plan.student].ID,
			CourseAssignmentID: assignments[plan.assignment].ID,
			EnrollmentDate:     termStart,
			Status:             models.EnrollmentStatusEnrolled,
		})
		if err != nil {
			return fmt.Errorf("seed enrollment: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	attendancePattern := []models.AttendanceStatus{
		models.AttendanceStatusPresent,
		models.AttendanceStatusPresent,
		models.AttendanceStatusLate,
		models.AttendanceStatusAbsent,
		models.AttendanceStatusPresent,
	}
	for _, enrollment := range enrollments {
		for week, status := range attendancePattern {
			if _, err := store.Attendance.Create(ctx, models.Attendance{
				EnrollmentID: enrollment.ID,
				Date:         termStart.AddDate(0, 0, week*7),
				Status:       status,
			}); err != nil {
				return fmt.Errorf("seed attendance: %w", err)
			}
		}
		for i, item := range []struct {
			name   string
			score  float64
			weight float64
		}{
			{"Quiz 1", 82, 20},
			{"Midterm", 88, 30},
		} {
			if _, err := store.Grades.Create(ctx, models.Grade{
				EnrollmentID:   enrollment.ID,
				AssignmentName: item.name,
				Score:          item.score,
				MaxScore:       100,
				Weight:         item.weight,
				Date:           termStart.AddDate(0, 0, (i+2)*14),
			}); err != nil {
				return fmt.Errorf("seed grade: %w", err)
			}
		}
	}

	eventDefs := []models.Event{
		{Title: "Spring Orientation", StartDate: termStart, EndDate: termStart.Add(6 * time.Hour), Location: strPtr("Main Auditorium"), Type: models.EventTypeAcademic},
		{Title: "Faculty Senate Meeting", StartDate: now.AddDate(0, 0, 7), EndDate: now.AddDate(0, 0, 7).Add(2 * time.Hour), Type: models.EventTypeAdministrative},
		{Title: "Robotics Club Expo", Description: strPtr("Student-built robots on display."), StartDate: now.AddDate(0, 0, 21), EndDate: now.AddDate(0, 0, 21).Add(8 * time.Hour), Location: strPtr("Engineering Hall"), Type: models.EventTypeExtracurricular},
	}
	for _, def := range eventDefs {
		if _, err := store.Events.Create(ctx, def); err != nil {
			return fmt.Errorf("seed event %s: %w", def.Title, err)
		}
	}

	logger.Info("seed loaded",
		zap.Int64("admin_id", admin.ID),
		zap.Int("students", len(students)),
		zap.Int("faculty", len(faculty)),
		zap.Int("courses", len(courses)),
		zap.Int("enrollments", len(enrollments)),
	)
	return nil
}
