// internal/adapters/repository/memory.go
package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
)

// MemoryRepository keeps everything in process memory. Values are copied in
// and out so callers never share state with the store.
type MemoryRepository struct {
	mu           sync.RWMutex
	users        map[string]*domain.User
	usernames    map[string]string               // username -> id
	deliveries   map[string]*domain.Delivery     // id -> delivery
	userIndex    map[string][]string             // userID -> delivery ids, insertion order
	orderIndex   map[string]string               // userID|orderID -> delivery id
	achievements map[string][]domain.Achievement // userID -> achievements, insertion order
	streaks      map[string]*domain.Streak
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]*domain.User),
		usernames:    make(map[string]string),
		deliveries:   make(map[string]*domain.Delivery),
		userIndex:    make(map[string][]string),
		orderIndex:   make(map[string]string),
		achievements: make(map[string][]domain.Achievement),
		streaks:      make(map[string]*domain.Streak),
	}
}

// --- users ---

func (r *MemoryRepository) CreateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrConflict)
	}
	if _, ok := r.usernames[user.Username]; ok {
		return fmt.Errorf("username %s: %w", user.Username, domain.ErrConflict)
	}
	u := *user
	r.users[u.ID] = &u
	r.usernames[u.Username] = u.ID
	return nil
}

func (r *MemoryRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	c := *u
	return &c, nil
}

func (r *MemoryRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.usernames[username]
	if !ok {
		return nil, fmt.Errorf("username %s: %w", username, domain.ErrNotFound)
	}
	c := *r.users[id]
	return &c, nil
}

func (r *MemoryRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	if old.Username != user.Username {
		if _, taken := r.usernames[user.Username]; taken {
			return fmt.Errorf("username %s: %w", user.Username, domain.ErrConflict)
		}
		delete(r.usernames, old.Username)
		r.usernames[user.Username] = user.ID
	}
	u := *user
	r.users[u.ID] = &u
	return nil
}

// --- deliveries ---

func orderKey(userID, orderID string) string {
	return userID + "|" + orderID
}

func (r *MemoryRepository) CreateDelivery(ctx context.Context, delivery *domain.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deliveries[delivery.ID]; ok {
		return fmt.Errorf("delivery %s: %w", delivery.ID, domain.ErrConflict)
	}
	if delivery.OrderID != "" {
		key := orderKey(delivery.UserID, delivery.OrderID)
		if _, ok := r.orderIndex[key]; ok {
			return fmt.Errorf("order %s: %w", delivery.OrderID, domain.ErrConflict)
		}
		r.orderIndex[key] = delivery.ID
	}
	r.deliveries[delivery.ID] = copyDelivery(delivery)
	r.userIndex[delivery.UserID] = append(r.userIndex[delivery.UserID], delivery.ID)
	return nil
}

func (r *MemoryRepository) FindDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.deliveries[id]
	if !ok {
		return nil, fmt.Errorf("delivery %s: %w", id, domain.ErrNotFound)
	}
	return copyDelivery(d), nil
}

func (r *MemoryRepository) FindDeliveryByOrderID(ctx context.Context, userID, orderID string) (*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.orderIndex[orderKey(userID, orderID)]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return copyDelivery(r.deliveries[id]), nil
}

func (r *MemoryRepository) TransitionDelivery(ctx context.Context, id string, from, to domain.DeliveryStatus, at time.Time) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deliveries[id]
	if !ok {
		return nil, fmt.Errorf("delivery %s: %w", id, domain.ErrNotFound)
	}
	if d.Status != from || !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("delivery %s is %s: %w", id, d.Status, domain.ErrInvalidTransition)
	}
	d.Status = to
	if to == domain.StatusCompleted {
		t := at
		d.DeliveryTime = &t
	}
	return copyDelivery(d), nil
}

// ListDeliveries returns the user's deliveries, most recent first.
func (r *MemoryRepository) ListDeliveries(ctx context.Context, userID string) ([]*domain.Delivery, error) {
	r.mu.RLock()
	ids := r.userIndex[userID]
	out := make([]*domain.Delivery, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyDelivery(r.deliveries[id]))
	}
	r.mu.RUnlock()

	domain.SortMostRecentFirst(out)
	return out, nil
}

func copyDelivery(d *domain.Delivery) *domain.Delivery {
	c := *d
	if d.DeliveryTime != nil {
		t := *d.DeliveryTime
		c.DeliveryTime = &t
	}
	return &c
}

// --- achievements ---

func (r *MemoryRepository) AddAchievement(ctx context.Context, a domain.Achievement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.achievements[a.UserID] {
		if existing.Label == a.Label {
			return false, nil
		}
	}
	r.achievements[a.UserID] = append(r.achievements[a.UserID], a)
	return true, nil
}

func (r *MemoryRepository) ListAchievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Achievement, len(r.achievements[userID]))
	copy(out, r.achievements[userID])
	return out, nil
}

// --- streaks ---

func (r *MemoryRepository) GetStreak(ctx context.Context, userID string) (*domain.Streak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.streaks[userID]
	if !ok {
		return &domain.Streak{UserID: userID}, nil
	}
	c := *s
	if s.LastActive != nil {
		t := *s.LastActive
		c.LastActive = &t
	}
	return &c, nil
}

func (r *MemoryRepository) SaveStreak(ctx context.Context, streak *domain.Streak) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *streak
	if streak.LastActive != nil {
		t := *streak.LastActive
		c.LastActive = &t
	}
	r.streaks[streak.UserID] = &c
	return nil
}

var _ ports.RepositoryPort = (*MemoryRepository)(nil)
