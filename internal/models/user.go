package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleFaculty UserRole = "faculty"
	RoleStudent UserRole = "student"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	default:
		return false
	}
}

// User represents an application account, the root identity for all people.
type User struct {
	ID              int64    `json:"id"`
	Username        string   `json:"username"`
	Password        string   `json:"-"`
	Email           string   `json:"email"`
	FullName        string   `json:"full_name"`
	Role            UserRole `json:"role"`
	ProfileImageURL *string  `json:"profile_image_url,omitempty"`
}

// UserPatch carries a partial update; only non-nil fields are applied.
type UserPatch struct {
	Username        *string   `json:"username,omitempty"`
	Password        *string   `json:"password,omitempty"`
	Email           *string   `json:"email,omitempty"`
	FullName        *string   `json:"full_name,omitempty"`
	Role            *UserRole `json:"role,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
}

// Credentials is the pair checked on login.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
