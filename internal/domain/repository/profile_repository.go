package repository

import (
	"context"

	"github.com/festify/festify-web/internal/domain/entity"
)

// ProfileRepository is the subset of profile operations the session layer
// depends on.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*entity.Profile, error)
}
