package repository

import (
	"context"
	"strings"

	"github.com/campuskit/campus-api/internal/models"
)

// UserRepository manages the in-memory users table.
type UserRepository struct {
	table *Table[models.User]
}

// NewUserRepository constructs an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{table: NewTable[models.User]()}
}

// Create inserts a new user. Usernames are unique case-insensitively;
// a duplicate returns ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	return r.table.Insert(
		func(id int64) models.User {
			user.ID = id
			return user
		},
		func(existing models.User) bool {
			return strings.EqualFold(existing.Username, user.Username)
		},
	)
}

// FindByID fetches a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	return r.table.Get(id)
}

// FindByUsername scans for a case-insensitive username match.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.table.Find(func(u models.User) bool {
		return strings.EqualFold(u.Username, username)
	})
}

// FindByCredentials returns the user whose username matches case-insensitively
// and whose password matches exactly. Absence means authentication failure.
func (r *UserRepository) FindByCredentials(ctx context.Context, creds models.Credentials) (models.User, error) {
	return r.table.Find(func(u models.User) bool {
		return strings.EqualFold(u.Username, creds.Username) && u.Password == creds.Password
	})
}

// List returns all users in insertion order.
func (r *UserRepository) List(ctx context.Context) []models.User {
	return r.table.List()
}

// Update merges the patch into the stored user; only supplied fields change.
func (r *UserRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	var username string
	updated, err := r.table.Update(id,
		func(u models.User) models.User {
			if patch.Username != nil {
				u.Username = *patch.Username
			}
			if patch.Password != nil {
				u.Password = *patch.Password
			}
			if patch.Email != nil {
				u.Email = *patch.Email
			}
			if patch.FullName != nil {
				u.FullName = *patch.FullName
			}
			if patch.Role != nil {
				u.Role = *patch.Role
			}
			if patch.ProfileImageURL != nil {
				u.ProfileImageURL = patch.ProfileImageURL
			}
			username = u.Username
			return u
		},
		func(other models.User) bool {
			return patch.Username != nil && strings.EqualFold(other.Username, username)
		},
	)
	return updated, err
}

// Delete removes the user and reports whether a row existed.
func (r *UserRepository) Delete(ctx context.Context, id int64) bool {
	return r.table.Delete(id)
}
