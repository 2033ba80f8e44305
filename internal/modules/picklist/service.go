package picklist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"memberreg/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 12 * time.Hour

// Service serves the enumerated field options. Each field is fetched once per
// process and is immutable afterwards; redis sits between the process cache
// and the database so restarts stay cheap. Cache failures fall through to the
// database.
type Service struct {
	source OptionsSource
	cache  *redis.Client // nil disables redis
	log    *zap.Logger

	mu     sync.RWMutex
	loaded map[domain.PicklistField][]domain.PicklistOption
}

func NewService(source OptionsSource, cache *redis.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		source: source,
		cache:  cache,
		log:    log,
		loaded: make(map[domain.PicklistField][]domain.PicklistOption),
	}
}

func cacheKey(field domain.PicklistField) string {
	return "picklist:" + string(field)
}

// Options returns the option list for one enumerated field.
func (s *Service) Options(ctx context.Context, field domain.PicklistField) ([]domain.PicklistOption, error) {
	s.mu.RLock()
	options, ok := s.loaded[field]
	s.mu.RUnlock()
	if ok {
		return options, nil
	}

	options, err := s.fetch(ctx, field)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Another caller may have raced us here; either result is the same
	// immutable list.
	s.loaded[field] = options
	s.mu.Unlock()

	return options, nil
}

func (s *Service) fetch(ctx context.Context, field domain.PicklistField) ([]domain.PicklistOption, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey(field)).Result()
		if err == nil {
			var options []domain.PicklistOption
			if jsonErr := json.Unmarshal([]byte(raw), &options); jsonErr == nil {
				return options, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("picklist cache read failed", zap.String("field", string(field)), zap.Error(err))
		}
	}

	options, err := s.source.GetOptions(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("fetch options for %s: %w", field, err)
	}

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(options); jsonErr == nil {
			if err := s.cache.Set(ctx, cacheKey(field), raw, cacheTTL).Err(); err != nil {
				s.log.Warn("picklist cache write failed", zap.String("field", string(field)), zap.Error(err))
			}
		}
	}
	return options, nil
}

// WarmUp fetches every field once, the explicit initialization step at
// service start. Errors are reported but do not abort startup; the field
// loads lazily on first request instead.
func (s *Service) WarmUp(ctx context.Context) {
	for _, field := range domain.PicklistFields {
		if _, err := s.Options(ctx, field); err != nil {
			s.log.Warn("picklist warmup failed", zap.String("field", string(field)), zap.Error(err))
		}
	}
}
