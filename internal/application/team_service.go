package application

import (
	"context"

	"github.com/festify/festify-web/internal/domain/entity"
)

const teamsPath = "/api/teams"

// TeamService wraps /api/teams. Every call is authenticated.
type TeamService struct {
	api API
}

func NewTeamService(api API) *TeamService {
	return &TeamService{api: api}
}

func (s *TeamService) GetAll(ctx context.Context) ([]entity.Team, error) {
	var out []entity.Team
	if err := s.api.Get(ctx, teamsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TeamService) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	var out entity.Team
	if err := s.api.Get(ctx, pathOf(teamsPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TeamService) GetByEvent(ctx context.Context, eventID string) ([]entity.Team, error) {
	var out []entity.Team
	if err := s.api.Get(ctx, pathOf(teamsPath, "event", eventID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TeamService) Create(ctx context.Context, t *entity.Team) (*entity.Team, error) {
	var out entity.Team
	if err := s.api.Post(ctx, teamsPath, t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, pathOf(teamsPath, id))
}
