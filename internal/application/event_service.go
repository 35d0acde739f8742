package application

import (
	"context"

	"github.com/festify/festify-web/internal/domain/entity"
)

const eventsPath = "/api/events"

// EventService wraps /api/events. Reads are public.
type EventService struct {
	api API
}

func NewEventService(api API) *EventService {
	return &EventService{api: api}
}

func (s *EventService) list(ctx context.Context, path string) ([]entity.Event, error) {
	var out []entity.Event
	if err := s.api.PublicGet(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *EventService) GetAll(ctx context.Context) ([]entity.Event, error) {
	return s.list(ctx, eventsPath)
}

func (s *EventService) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var out entity.Event
	if err := s.api.PublicGet(ctx, pathOf(eventsPath, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EventService) GetByCollege(ctx context.Context, collegeID string) ([]entity.Event, error) {
	return s.list(ctx, pathOf(eventsPath, "college", collegeID))
}

func (s *EventService) GetByCategory(ctx context.Context, categoryID string) ([]entity.Event, error) {
	return s.list(ctx, pathOf(eventsPath, "category", categoryID))
}

func (s *EventService) GetByOrganizer(ctx context.Context, organizerID string) ([]entity.Event, error) {
	return s.list(ctx, pathOf(eventsPath, "organizer", organizerID))
}

func (s *EventService) GetByStatus(ctx context.Context, status entity.EventStatus) ([]entity.Event, error) {
	return s.list(ctx, pathOf(eventsPath, "status", string(status)))
}

func (s *EventService) GetFeatured(ctx context.Context) ([]entity.Event, error) {
	return s.list(ctx, pathOf(eventsPath, "featured"))
}

func (s *EventService) Create(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	var out entity.Event
	if err := s.api.Post(ctx, eventsPath, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EventService) Update(ctx context.Context, id string, e *entity.Event) (*entity.Event, error) {
	var out entity.Event
	if err := s.api.Put(ctx, pathOf(eventsPath, id), e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, pathOf(eventsPath, id))
}
