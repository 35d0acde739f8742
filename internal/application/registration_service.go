package application

import (
	"context"

	"github.com/festify/festify-web/internal/domain/entity"
)

const registrationsPath = "/api/registrations"

// RegistrationService wraps /api/registrations. Every call is authenticated.
type RegistrationService struct {
	api API
}

func NewRegistrationService(api API) *RegistrationService {
	return &RegistrationService{api: api}
}

func (s *RegistrationService) list(ctx context.Context, path string) ([]entity.Registration, error) {
	var out []entity.Registration
	if err := s.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RegistrationService) GetAll(ctx context.Context) ([]entity.Registration, error) {
	return s.list(ctx, registrationsPath)
}

func (s *RegistrationService) GetByID(ctx context.Context, id string) (*entity.Registration, error) {
	var out entity.Registration
	if err := s.api.Get(ctx, pathOf(registrationsPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RegistrationService) GetByEvent(ctx context.Context, eventID string) ([]entity.Registration, error) {
	return s.list(ctx, pathOf(registrationsPath, "event", eventID))
}

func (s *RegistrationService) GetByUser(ctx context.Context, userID string) ([]entity.Registration, error) {
	return s.list(ctx, pathOf(registrationsPath, "user", userID))
}

func (s *RegistrationService) Create(ctx context.Context, r *entity.Registration) (*entity.Registration, error) {
	var out entity.Registration
	if err := s.api.Post(ctx, registrationsPath, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus changes only the registration status.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id string, status entity.RegistrationStatus) (*entity.Registration, error) {
	var out entity.Registration
	body := map[string]string{"registrationStatus": string(status)}
	if err := s.api.Patch(ctx, pathOf(registrationsPath, id, "status"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel deletes the registration.
func (s *RegistrationService) Cancel(ctx context.Context, id string) error {
	return s.api.Delete(ctx, pathOf(registrationsPath, id))
}
