package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// Counted reports whether the status counts toward the attendance rate.
func (s AttendanceStatus) Counted() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusLate
}

// Attendance represents one session record for an enrollment.
type Attendance struct {
	ID           int64            `json:"id"`
	EnrollmentID int64            `json:"enrollment_id"`
	Date         time.Time        `json:"date"`
	Status       AttendanceStatus `json:"status"`
	Notes        *string          `json:"notes,omitempty"`
}

// AttendancePatch carries a partial update; only non-nil fields are applied.
type AttendancePatch struct {
	EnrollmentID *int64            `json:"enrollment_id,omitempty"`
	Date         *time.Time        `json:"date,omitempty"`
	Status       *AttendanceStatus `json:"status,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
}
