package dto

// StatusStat is one slice of the course status breakdown.
type StatusStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CourseStatistics breaks the catalog down by lifecycle status.
type CourseStatistics struct {
	Active   StatusStat `json:"active"`
	Pending  StatusStat `json:"pending"`
	Archived StatusStat `json:"archived"`
}

// PopularCourse is a catalog entry ranked by enrollment volume.
type PopularCourse struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	StudentCount int    `json:"student_count"`
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalStudents    int              `json:"total_students"`
	TotalFaculty     int              `json:"total_faculty"`
	TotalCourses     int              `json:"total_courses"`
	ActiveCourses    int              `json:"active_courses"`
	AttendanceRate   float64          `json:"attendance_rate"`
	CourseStatistics CourseStatistics `json:"course_statistics"`
	PopularCourses   []PopularCourse  `json:"popular_courses"`
}
