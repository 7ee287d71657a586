package repository

import (
	"context"
	"time"

	"github.com/campuskit/campus-api/internal/models"
)

// TokenRepository manages refresh tokens. Like everything else in the store
// it is volatile: a restart logs everyone out.
type TokenRepository struct {
	table *Table[models.RefreshToken]
}

// NewTokenRepository constructs an empty TokenRepository.
func NewTokenRepository() *TokenRepository {
	return &TokenRepository{table: NewTable[models.RefreshToken]()}
}

// Create inserts a new refresh token row.
func (r *TokenRepository) Create(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	return r.table.Insert(func(id int64) models.RefreshToken {
		token.ID = id
		return token
	}, nil)
}

// FindByToken scans for the opaque token value.
func (r *TokenRepository) FindByToken(ctx context.Context, value string) (models.RefreshToken, error) {
	return r.table.Find(func(t models.RefreshToken) bool { return t.Token == value })
}

// Revoke marks the token unusable.
func (r *TokenRepository) Revoke(ctx context.Context, id int64) error {
	_, err := r.table.Update(id, func(t models.RefreshToken) models.RefreshToken {
		t.Revoked = true
		return t
	}, nil)
	return err
}

// RevokeByUser revokes every live token belonging to the user.
func (r *TokenRepository) RevokeByUser(ctx context.Context, userID int64) {
	for _, token := range r.table.Filter(func(t models.RefreshToken) bool {
		return t.UserID == userID && !t.Revoked
	}) {
		_ = r.Revoke(ctx, token.ID)
	}
}

// PurgeExpired drops tokens past their expiry.
func (r *TokenRepository) PurgeExpired(ctx context.Context, now time.Time) int {
	expired := r.table.Filter(func(t models.RefreshToken) bool { return now.After(t.ExpiresAt) })
	for _, token := range expired {
		r.table.Delete(token.ID)
	}
	return len(expired)
}
