package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/infrastructure/cache"
	"github.com/festify/festify-web/pkg/batch"
)

const collegesPath = "/api/colleges"

func collegeKey(id string) string { return "college:" + id }

// CollegeService wraps /api/colleges. GetByID reads through the cache and
// writes invalidate it.
type CollegeService struct {
	api         API
	events      *EventService
	cache       cache.Cache
	concurrency int
	logger      *logrus.Logger
}

// NewCollegeService builds the service. concurrency bounds the fan-out of
// EventCounts.
func NewCollegeService(api API, events *EventService, c cache.Cache, concurrency int, logger *logrus.Logger) *CollegeService {
	if logger == nil {
		logger = discardLogger()
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &CollegeService{api: api, events: events, cache: c, concurrency: concurrency, logger: logger}
}

func (s *CollegeService) GetAll(ctx context.Context) ([]entity.College, error) {
	var out []entity.College
	if err := s.api.PublicGet(ctx, collegesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CollegeService) GetByID(ctx context.Context, id string) (*entity.College, error) {
	var out entity.College
	if cachedGet(ctx, s.cache, s.logger, collegeKey(id), &out) {
		return &out, nil
	}
	if err := s.api.PublicGet(ctx, pathOf(collegesPath, id), &out); err != nil {
		return nil, err
	}
	cachedSet(ctx, s.cache, s.logger, collegeKey(id), &out)
	return &out, nil
}

func (s *CollegeService) Create(ctx context.Context, c *entity.College) (*entity.College, error) {
	var out entity.College
	if err := s.api.Post(ctx, collegesPath, c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollegeService) Update(ctx context.Context, id string, c *entity.College) (*entity.College, error) {
	var out entity.College
	if err := s.api.Put(ctx, pathOf(collegesPath, id), c, &out); err != nil {
		return nil, err
	}
	cachedDelete(ctx, s.cache, s.logger, collegeKey(id))
	return &out, nil
}

func (s *CollegeService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, pathOf(collegesPath, id)); err != nil {
		return err
	}
	cachedDelete(ctx, s.cache, s.logger, collegeKey(id))
	return nil
}

type collegeCount struct {
	id    string
	count int
}

// EventCounts fetches the events of every college, at most concurrency at a
// time, and returns the number per college id.
func (s *CollegeService) EventCounts(ctx context.Context, colleges []entity.College) (map[string]int, error) {
	tasks := make([]batch.Task[collegeCount], 0, len(colleges))
	for _, c := range colleges {
		id := c.ID
		tasks = append(tasks, func(ctx context.Context) (collegeCount, error) {
			events, err := s.events.GetByCollege(ctx, id)
			if err != nil {
				return collegeCount{}, err
			}
			return collegeCount{id: id, count: len(events)}, nil
		})
	}
	results, err := batch.Run(ctx, s.concurrency, tasks)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(results))
	for _, r := range results {
		out[r.id] = r.count
	}
	return out, nil
}
