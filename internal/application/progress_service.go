// internal/application/progress_service.go
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
	"github.com/mahabubulhasibshawon/rider-tracker/pkg/events"
)

type progressSource interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	DeliveryHistory(ctx context.Context, userID string) ([]*domain.Delivery, error)
	Streak(ctx context.Context, userID string) (*domain.Streak, error)
	Now() time.Time
}

// ProgressService serves dashboard summaries, caching one per user and day.
// Store events drop a user's cached summaries and bump the user's
// generation; a summary computed under an older generation is not cached.
type ProgressService struct {
	src         progressSource
	cache       ports.CachePort
	log         logger.Logger
	unsubscribe func()

	mu          sync.Mutex
	generations map[string]uint64
}

func NewProgressService(src progressSource, cache ports.CachePort, bus *events.Bus, log logger.Logger) *ProgressService {
	s := &ProgressService{src: src, cache: cache, log: log, unsubscribe: func() {}, generations: make(map[string]uint64)}
	if bus != nil {
		s.unsubscribe = bus.Subscribe(s.onEvent)
	}
	return s
}

func progressKeyPrefix(userID string) string {
	return "progress:" + userID + ":"
}

func progressKey(userID string, day time.Time) string {
	return progressKeyPrefix(userID) + day.Format("2006-01-02")
}

func (s *ProgressService) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

func (s *ProgressService) Summary(ctx context.Context, userID string) (*domain.ProgressSummary, error) {
	gen := s.generation(userID)
	today := s.src.Now()
	key := progressKey(userID, domain.Day(today))

	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached domain.ProgressSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		case !errors.Is(err, ports.ErrCacheMiss):
			s.log.Warnf("failed to read cached progress for %s: %v", userID, err)
		}
	}

	user, err := s.src.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.src.DeliveryHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load deliveries: %w", err)
	}
	streak, err := s.src.Streak(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	summary := domain.Summarize(userID, deliveries, user.DailyTarget, *streak, today)
	if s.cache != nil {
		s.store(ctx, userID, gen, key, summary)
	}
	return &summary, nil
}

// store caches summary unless an event arrived after gen was read. The lock
// is held across Set so an event either sees the entry and deletes it or
// bumps the generation first.
func (s *ProgressService) store(ctx context.Context, userID string, gen uint64, key string, summary domain.ProgressSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != gen {
		return
	}
	if err := s.cache.Set(ctx, key, summary); err != nil {
		s.log.Warnf("failed to cache progress for %s: %v", userID, err)
	}
}

func (s *ProgressService) onEvent(e events.Event) {
	if s.cache == nil || e.UserID == "" || e.Kind == events.SessionChanged {
		return
	}
	s.mu.Lock()
	s.generations[e.UserID]++
	s.mu.Unlock()
	if err := s.cache.DeleteByPrefix(context.Background(), progressKeyPrefix(e.UserID)); err != nil {
		s.log.Warnf("failed to invalidate progress for %s: %v", e.UserID, err)
	}
}

// Close stops listening for store events.
func (s *ProgressService) Close() {
	s.unsubscribe()
}
