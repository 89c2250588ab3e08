// internal/ports/ports.go
package ports

//go:generate mockgen -destination=mock_ports.go -package=ports . RepositoryPort,SessionPort,RevocationPort

import (
	"context"
	"errors"
	"time"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
)

type UserRepositoryPort interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

type DeliveryRepositoryPort interface {
	CreateDelivery(ctx context.Context, delivery *domain.Delivery) error
	FindDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	FindDeliveryByOrderID(ctx context.Context, userID, orderID string) (*domain.Delivery, error)
	// TransitionDelivery moves a delivery from one status to another, failing
	// with domain.ErrInvalidTransition when it is not currently in from.
	TransitionDelivery(ctx context.Context, id string, from, to domain.DeliveryStatus, at time.Time) (*domain.Delivery, error)
	ListDeliveries(ctx context.Context, userID string) ([]*domain.Delivery, error)
}

type AchievementRepositoryPort interface {
	AddAchievement(ctx context.Context, achievement domain.Achievement) (bool, error)
	ListAchievements(ctx context.Context, userID string) ([]domain.Achievement, error)
}

type StreakRepositoryPort interface {
	GetStreak(ctx context.Context, userID string) (*domain.Streak, error)
	SaveStreak(ctx context.Context, streak *domain.Streak) error
}

// RepositoryPort is everything the user store persists. Lookups that find
// nothing return domain.ErrNotFound.
type RepositoryPort interface {
	UserRepositoryPort
	DeliveryRepositoryPort
	AchievementRepositoryPort
	StreakRepositoryPort
}

// ErrCacheMiss is returned by CachePort.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

type CachePort interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

// SessionPort persists the device session flag.
type SessionPort interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

type RevocationPort interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
