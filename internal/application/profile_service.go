package application

import (
	"context"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/domain/repository"
)

const profilesPath = "/api/profiles"

// ProfileService wraps /api/profiles. Every call is authenticated.
type ProfileService struct {
	api API
}

var _ repository.ProfileRepository = (*ProfileService)(nil)

func NewProfileService(api API) *ProfileService {
	return &ProfileService{api: api}
}

func (s *ProfileService) GetAll(ctx context.Context) ([]entity.Profile, error) {
	var out []entity.Profile
	if err := s.api.Get(ctx, profilesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return s.one(ctx, pathOf(profilesPath, id))
}

// GetByUserID looks a profile up by the identity provider's user id.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return s.one(ctx, pathOf(profilesPath, "user", userID))
}

func (s *ProfileService) GetByRole(ctx context.Context, role entity.Role) ([]entity.Profile, error) {
	var out []entity.Profile
	if err := s.api.Get(ctx, pathOf(profilesPath, "role", string(role)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProfileService) Create(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	var out entity.Profile
	if err := s.api.Post(ctx, profilesPath, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProfileService) Update(ctx context.Context, id string, p *entity.Profile) (*entity.Profile, error) {
	return s.put(ctx, id, p)
}

// UpdateFields sends a partial update keyed by backend field names.
func (s *ProfileService) UpdateFields(ctx context.Context, id string, fields map[string]any) (*entity.Profile, error) {
	return s.put(ctx, id, fields)
}

func (s *ProfileService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, pathOf(profilesPath, id))
}

func (s *ProfileService) one(ctx context.Context, path string) (*entity.Profile, error) {
	var out entity.Profile
	if err := s.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProfileService) put(ctx context.Context, id string, body any) (*entity.Profile, error) {
	var out entity.Profile
	if err := s.api.Put(ctx, pathOf(profilesPath, id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
