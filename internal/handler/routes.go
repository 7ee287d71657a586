package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/campus-api/internal/middleware"
	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/service"
)

// Handlers groups every HTTP handler for route registration.
type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Students    *StudentHandler
	Faculty     *FacultyHandler
	Courses     *CourseHandler
	Assignments *AssignmentHandler
	Enrollments *EnrollmentHandler
	Attendance  *AttendanceHandler
	Grades      *GradeHandler
	Events      *EventHandler
	Dashboard   *DashboardHandler
	Exports     *ExportHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes mounts the API surface under the given prefix. Writes to the
// protected resource groups invalidate the cached dashboard payload.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService, dashboards *service.DashboardService) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty)
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty, models.RoleStudent)

	api := r.Group(prefix)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", middleware.JWT(auth), h.Auth.Logout)
	authGroup.GET("/me", middleware.JWT(auth), h.Auth.Me)

	protected := api.Group("")
	protected.Use(middleware.JWT(auth))
	protected.Use(middleware.InvalidateStats(dashboards))

	users := protected.Group("/users")
	users.GET("", admin, h.Users.List)
	users.POST("", admin, h.Users.Create)
	users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.Self), h.Users.Get)
	users.PATCH("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.Self), h.Users.Update)
	users.DELETE("/:id", admin, h.Users.Delete)

	students := protected.Group("/students")
	students.GET("", staff, h.Students.List)
	students.POST("", admin, h.Students.Create)
	students.GET("/:id", anyRole, h.Students.Get)
	students.GET("/:id/details", anyRole, h.Students.Details)
	students.GET("/:id/transcript", staff, h.Exports.Transcript)
	students.PATCH("/:id", admin, h.Students.Update)
	students.DELETE("/:id", admin, h.Students.Delete)
	protected.GET("/users/:id/student", anyRole, h.Students.GetByUser)

	faculty := protected.Group("/faculty")
	faculty.GET("", anyRole, h.Faculty.List)
	faculty.POST("", admin, h.Faculty.Create)
	faculty.GET("/:id", anyRole, h.Faculty.Get)
	faculty.GET("/:id/detail", anyRole, h.Faculty.Detail)
	faculty.PATCH("/:id", admin, h.Faculty.Update)
	faculty.DELETE("/:id", admin, h.Faculty.Delete)
	protected.GET("/users/:id/faculty", anyRole, h.Faculty.GetByUser)

	courses := protected.Group("/courses")
	courses.GET("", anyRole, h.Courses.List)
	courses.POST("", admin, h.Courses.Create)
	courses.GET("/:id", anyRole, h.Courses.Get)
	courses.GET("/:id/detail", anyRole, h.Courses.Detail)
	courses.GET("/:id/roster", staff, h.Exports.Roster)
	courses.PATCH("/:id", admin, h.Courses.Update)
	courses.DELETE("/:id", admin, h.Courses.Delete)

	assignments := protected.Group("/assignments")
	assignments.GET("", anyRole, h.Assignments.List)
	assignments.POST("", admin, h.Assignments.Create)
	assignments.GET("/:id", anyRole, h.Assignments.Get)
	assignments.PATCH("/:id", admin, h.Assignments.Update)
	assignments.DELETE("/:id", admin, h.Assignments.Delete)

	enrollments := protected.Group("/enrollments")
	enrollments.GET("", staff, h.Enrollments.List)
	enrollments.POST("", staff, h.Enrollments.Create)
	enrollments.GET("/:id", anyRole, h.Enrollments.Get)
	enrollments.PATCH("/:id", staff, h.Enrollments.Update)
	enrollments.DELETE("/:id", staff, h.Enrollments.Delete)

	attendance := protected.Group("/attendance")
	attendance.GET("", staff, h.Attendance.List)
	attendance.POST("", staff, h.Attendance.Create)
	attendance.GET("/:id", anyRole, h.Attendance.Get)
	attendance.PATCH("/:id", staff, h.Attendance.Update)
	attendance.DELETE("/:id", staff, h.Attendance.Delete)

	grades := protected.Group("/grades")
	grades.GET("", staff, h.Grades.List)
	grades.POST("", staff, h.Grades.Create)
	grades.GET("/:id", anyRole, h.Grades.Get)
	grades.PATCH("/:id", staff, h.Grades.Update)
	grades.DELETE("/:id", staff, h.Grades.Delete)

	events := protected.Group("/events")
	events.GET("", anyRole, h.Events.List)
	events.GET("/upcoming", anyRole, h.Events.Upcoming)
	events.POST("", admin, h.Events.Create)
	events.GET("/:id", anyRole, h.Events.Get)
	events.PATCH("/:id", admin, h.Events.Update)
	events.DELETE("/:id", admin, h.Events.Delete)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/stats", staff, h.Dashboard.Stats)
	dashboard.POST("/refresh", admin, h.Dashboard.Refresh)

	protected.GET("/system/metrics", admin, h.Metrics.Snapshot)
}
