package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/infrastructure/cache"
)

const categoriesPath = "/api/categories"

func categoryKey(id string) string { return "category:" + id }

// CategoryService wraps /api/categories. GetByID reads through the cache and
// writes invalidate it.
type CategoryService struct {
	api    API
	cache  cache.Cache
	logger *logrus.Logger
}

// NewCategoryService builds the service. c may be nil to disable caching.
func NewCategoryService(api API, c cache.Cache, logger *logrus.Logger) *CategoryService {
	if logger == nil {
		logger = discardLogger()
	}
	return &CategoryService{api: api, cache: c, logger: logger}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	if err := s.api.PublicGet(ctx, categoriesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out entity.Category
	if cachedGet(ctx, s.cache, s.logger, categoryKey(id), &out) {
		return &out, nil
	}
	if err := s.api.PublicGet(ctx, pathOf(categoriesPath, id), &out); err != nil {
		return nil, err
	}
	cachedSet(ctx, s.cache, s.logger, categoryKey(id), &out)
	return &out, nil
}

func (s *CategoryService) Create(ctx context.Context, cat *entity.Category) (*entity.Category, error) {
	var out entity.Category
	if err := s.api.Post(ctx, categoriesPath, cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, cat *entity.Category) (*entity.Category, error) {
	var out entity.Category
	if err := s.api.Put(ctx, pathOf(categoriesPath, id), cat, &out); err != nil {
		return nil, err
	}
	cachedDelete(ctx, s.cache, s.logger, categoryKey(id))
	return &out, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, pathOf(categoriesPath, id)); err != nil {
		return err
	}
	cachedDelete(ctx, s.cache, s.logger, categoryKey(id))
	return nil
}

// Cache failures degrade to a backend call; they are logged, never returned.

func cachedGet(ctx context.Context, c cache.Cache, logger *logrus.Logger, key string, dest any) bool {
	if c == nil {
		return false
	}
	found, err := c.Get(ctx, key, dest)
	if err != nil {
		logger.WithError(err).WithField("key", key).Warn("cache get failed")
		return false
	}
	return found
}

func cachedSet(ctx context.Context, c cache.Cache, logger *logrus.Logger, key string, value any) {
	if c == nil {
		return
	}
	if err := c.Set(ctx, key, value); err != nil {
		logger.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

func cachedDelete(ctx context.Context, c cache.Cache, logger *logrus.Logger, key string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, key); err != nil {
		logger.WithError(err).WithField("key", key).Warn("cache delete failed")
	}
}
