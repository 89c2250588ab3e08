// internal/application/user_store.go
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
	"github.com/mahabubulhasibshawon/rider-tracker/pkg/events"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the single mutation authority for users, deliveries,
// achievements and streaks. It also tracks the device's current session.
// Mutations are serialized; events are published after the lock is released.
type UserStore struct {
	repo     ports.RepositoryPort
	sessions ports.SessionPort
	bus      *events.Bus
	log      logger.Logger
	now      func() time.Time
	hashCost int

	mu sync.Mutex

	sessionMu sync.RWMutex
	currentID string
}

type StoreOption func(*UserStore)

// WithClock overrides time.Now. The clock's location decides calendar days.
func WithClock(now func() time.Time) StoreOption {
	return func(s *UserStore) { s.now = now }
}

func WithSessionPort(sessions ports.SessionPort) StoreOption {
	return func(s *UserStore) { s.sessions = sessions }
}

func WithBus(bus *events.Bus) StoreOption {
	return func(s *UserStore) { s.bus = bus }
}

func WithHashCost(cost int) StoreOption {
	return func(s *UserStore) { s.hashCost = cost }
}

func NewUserStore(repo ports.RepositoryPort, log logger.Logger, opts ...StoreOption) *UserStore {
	s := &UserStore{
		repo:     repo,
		log:      log,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = events.NewBus()
	}
	return s
}

func (s *UserStore) Events() *events.Bus {
	return s.bus
}

func (s *UserStore) Now() time.Time {
	return s.now()
}

func (s *UserStore) publish(evts ...events.Event) {
	for _, e := range evts {
		s.bus.Publish(e)
	}
}

// --- users ---

// AddUser registers a user. It does not log them in.
func (s *UserStore) AddUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = domain.DefaultRole
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	u.PasswordHash = string(hashed)

	if err := s.repo.CreateUser(ctx, &u); err != nil {
		return nil, err
	}
	s.log.Infof("registered user %s (%s)", u.Username, u.ID)
	s.publish(events.Event{Kind: events.UserAdded, UserID: u.ID, At: u.CreatedAt})
	return &u, nil
}

// Authenticate checks credentials without touching the session.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.repo.FindUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

// Login makes the matching user the current session. A mismatch returns false
// and leaves any previous session in place. There is no attempt limiting.
func (s *UserStore) Login(ctx context.Context, username, password string) (bool, error) {
	u, err := s.Authenticate(ctx, username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		s.log.Warnf("failed login for %q", username)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.sessionMu.Lock()
	s.currentID = u.ID
	s.sessionMu.Unlock()

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, domain.Session{IsLoggedIn: true, Email: u.Email, Username: u.Username}); err != nil {
			s.log.Errorf("failed to persist session for %s: %v", u.Username, err)
		}
	}
	s.publish(events.Event{Kind: events.SessionChanged, UserID: u.ID, At: s.now()})
	return true, nil
}

func (s *UserStore) Logout(ctx context.Context) error {
	s.sessionMu.Lock()
	prev := s.currentID
	s.currentID = ""
	s.sessionMu.Unlock()

	if s.sessions != nil {
		if err := s.sessions.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}
	s.publish(events.Event{Kind: events.SessionChanged, UserID: prev, At: s.now()})
	return nil
}

func (s *UserStore) currentUserID() string {
	s.sessionMu.RLock()
	defer s.sessionMu.RUnlock()
	return s.currentID
}

// CurrentUser returns the session user, or nil when nobody is logged in.
func (s *UserStore) CurrentUser(ctx context.Context) (*domain.User, error) {
	id := s.currentUserID()
	if id == "" {
		return nil, nil
	}
	u, err := s.repo.FindUserByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// RestoreSession re-establishes the session saved by a previous Login.
func (s *UserStore) RestoreSession(ctx context.Context) (*domain.User, error) {
	if s.sessions == nil {
		return nil, nil
	}
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.IsLoggedIn || session.Username == "" {
		return nil, nil
	}
	u, err := s.repo.FindUserByUsername(ctx, session.Username)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Warnf("saved session for unknown user %q dropped", session.Username)
		return nil, s.sessions.Clear(ctx)
	}
	if err != nil {
		return nil, err
	}
	s.sessionMu.Lock()
	s.currentID = u.ID
	s.sessionMu.Unlock()
	return u, nil
}

func (s *UserStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// UpdateUser replaces the profile stored under updated.ID. The id, password
// hash and creation time are kept.
func (s *UserStore) UpdateUser(ctx context.Context, updated *domain.User) (*domain.User, error) {
	if err := domain.ValidateUser(updated); err != nil {
		return nil, err
	}

	s.mu.Lock()
	existing, err := s.repo.FindUserByID(ctx, updated.ID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	u := *updated
	u.PasswordHash = existing.PasswordHash
	u.CreatedAt = existing.CreatedAt
	if u.Role == "" {
		u.Role = existing.Role
	}
	err = s.repo.UpdateUser(ctx, &u)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.publish(events.Event{Kind: events.UserUpdated, UserID: u.ID, At: s.now()})
	return &u, nil
}

func (s *UserStore) UpdateDailyTarget(ctx context.Context, userID string, target int) error {
	if target < 0 {
		return domain.NewValidationError("daily_target", "must not be negative")
	}

	s.mu.Lock()
	u, err := s.repo.FindUserByID(ctx, userID)
	if err == nil {
		u.DailyTarget = target
		err = s.repo.UpdateUser(ctx, u)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Infof("daily target for %s set to %d", userID, target)
	s.publish(events.Event{Kind: events.UserUpdated, UserID: userID, At: s.now()})
	return nil
}

// --- deliveries ---

// AddDelivery stores a delivery as given, filling in id, status and dates.
func (s *UserStore) AddDelivery(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	s.mu.Lock()
	d, err := s.addDelivery(ctx, delivery)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.publish(events.Event{Kind: events.DeliveryAdded, UserID: d.UserID, DeliveryID: d.ID, At: d.ScanTime})
	return d, nil
}

func (s *UserStore) addDelivery(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	if err := domain.ValidateDelivery(delivery); err != nil {
		return nil, err
	}
	d := *delivery
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = domain.StatusOngoing
	}
	if d.ScanTime.IsZero() {
		d.ScanTime = s.now()
	}
	if d.Date.IsZero() {
		d.Date = d.ScanTime
	}
	d.Date = domain.Day(d.Date)
	switch {
	case d.Status == domain.StatusCompleted && d.DeliveryTime == nil:
		t := d.ScanTime
		d.DeliveryTime = &t
	case d.Status != domain.StatusCompleted && d.DeliveryTime != nil:
		return nil, domain.NewValidationError("delivery_time", "is only set on completed deliveries")
	case d.DeliveryTime != nil && d.DeliveryTime.Before(d.ScanTime):
		return nil, domain.NewValidationError("delivery_time", "must not precede scan_time")
	}

	if err := s.repo.CreateDelivery(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// StartDeliveryFromQR opens an Ongoing delivery for the session user.
func (s *UserStore) StartDeliveryFromQR(ctx context.Context, payload string) (*domain.Delivery, error) {
	userID := s.currentUserID()
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.StartDelivery(ctx, userID, payload)
}

// StartDelivery opens an Ongoing delivery for userID from a pickup payload.
// Rescanning a payload whose order id is already known returns the existing
// delivery instead of creating a duplicate.
func (s *UserStore) StartDelivery(ctx context.Context, userID, payload string) (*domain.Delivery, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	pickup, err := domain.ParsePickup(payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if pickup.OrderID != "" {
		existing, err := s.repo.FindDeliveryByOrderID(ctx, userID, pickup.OrderID)
		if err == nil {
			s.mu.Unlock()
			s.log.Debugf("order %s already scanned by %s", pickup.OrderID, userID)
			return existing, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.mu.Unlock()
			return nil, err
		}
	}
	now := s.now()
	d, err := s.addDelivery(ctx, &domain.Delivery{
		UserID:       userID,
		OrderID:      pickup.OrderID,
		CustomerName: pickup.CustomerName,
		TotalAmount:  pickup.Amount,
		Date:         now,
		ScanTime:     now,
		Status:       domain.StatusOngoing,
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Infof("delivery %s started for %s (%s, %.2f)", d.ID, userID, d.CustomerName, d.TotalAmount)
	s.publish(events.Event{Kind: events.DeliveryAdded, UserID: userID, DeliveryID: d.ID, At: now})
	return d, nil
}

func (s *UserStore) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	return s.repo.FindDelivery(ctx, id)
}

// OwnedDelivery looks up a delivery and hides those of other users.
func (s *UserStore) OwnedDelivery(ctx context.Context, userID, id string) (*domain.Delivery, error) {
	d, err := s.repo.FindDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// CompleteDelivery moves an Ongoing delivery to Completed once the buyer's QR
// code is scanned, then updates streak and achievements.
func (s *UserStore) CompleteDelivery(ctx context.Context, deliveryID, confirmation string) (*domain.Delivery, error) {
	orderID, err := domain.ParseConfirmation(confirmation)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	d, err := s.repo.FindDelivery(ctx, deliveryID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if d.Status != domain.StatusOngoing {
		s.mu.Unlock()
		return nil, fmt.Errorf("delivery %s is %s: %w", d.ID, d.Status, domain.ErrInvalidTransition)
	}
	if d.OrderID != "" && d.OrderID != orderID {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: confirmation is for order %s, delivery is %s", domain.ErrInvalidPayload, orderID, d.OrderID)
	}

	at := s.now()
	if at.Before(d.ScanTime) {
		at = d.ScanTime
	}
	completed, err := s.repo.TransitionDelivery(ctx, d.ID, domain.StatusOngoing, domain.StatusCompleted, at)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	evts := []events.Event{{Kind: events.DeliveryCompleted, UserID: completed.UserID, DeliveryID: completed.ID, At: at}}
	more, err := s.recordProgress(ctx, completed, at)
	s.mu.Unlock()

	evts = append(evts, more...)
	s.publish(evts...)
	if err != nil {
		// The transition is already committed; only the derived data lags.
		s.log.Errorf("delivery %s completed but progress update failed: %v", completed.ID, err)
	}
	s.log.Infof("delivery %s completed by %s", completed.ID, completed.UserID)
	return completed, nil
}

// recordProgress awards achievements and advances the streak after a
// completion. The streak day is the civil day of the completion instant in
// the store clock's location; the target check counts completions on that day.
func (s *UserStore) recordProgress(ctx context.Context, d *domain.Delivery, at time.Time) ([]events.Event, error) {
	var evts []events.Event
	award := func(label string) error {
		e, err := s.addAchievement(ctx, d.UserID, label, at)
		if e != nil {
			evts = append(evts, *e)
		}
		return err
	}

	if err := award(domain.AchievementFirstDelivery); err != nil {
		return evts, err
	}

	u, err := s.repo.FindUserByID(ctx, d.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return evts, nil
	}
	if err != nil {
		return evts, err
	}
	if u.DailyTarget <= 0 {
		return evts, nil
	}

	deliveries, err := s.repo.ListDeliveries(ctx, d.UserID)
	if err != nil {
		return evts, err
	}
	loc := s.now().Location()
	day := domain.Day(at.In(loc))
	if domain.CountCompletedOn(deliveries, day, loc) < u.DailyTarget {
		return evts, nil
	}
	if err := award(domain.AchievementDailyTarget); err != nil {
		return evts, err
	}

	streak, err := s.repo.GetStreak(ctx, d.UserID)
	if err != nil {
		return evts, err
	}
	if !streak.Record(day) {
		return evts, nil
	}
	if err := s.repo.SaveStreak(ctx, streak); err != nil {
		return evts, err
	}
	if streak.Current >= 7 {
		if err := award(domain.AchievementWeekStreak); err != nil {
			return evts, err
		}
	}
	return evts, nil
}

func (s *UserStore) CancelDelivery(ctx context.Context, deliveryID string) (*domain.Delivery, error) {
	s.mu.Lock()
	d, err := s.repo.TransitionDelivery(ctx, deliveryID, domain.StatusOngoing, domain.StatusCancelled, s.now())
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.log.Infof("delivery %s cancelled", d.ID)
	s.publish(events.Event{Kind: events.DeliveryCancelled, UserID: d.UserID, DeliveryID: d.ID, At: s.now()})
	return d, nil
}

// DeliveryHistory lists a user's deliveries, most recent first.
func (s *UserStore) DeliveryHistory(ctx context.Context, userID string) ([]*domain.Delivery, error) {
	deliveries, err := s.repo.ListDeliveries(ctx, userID)
	if err != nil {
		return nil, err
	}
	domain.SortMostRecentFirst(deliveries)
	return deliveries, nil
}

func (s *UserStore) DeliveriesOnDate(ctx context.Context, userID string, date time.Time) ([]*domain.Delivery, error) {
	deliveries, err := s.DeliveryHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []*domain.Delivery{}
	for _, d := range deliveries {
		if domain.SameDay(d.Date, date) {
			out = append(out, d)
		}
	}
	return out, nil
}

// --- achievements & streaks ---

// MarkAchievement unlocks label for userID and reports whether it was new.
func (s *UserStore) MarkAchievement(ctx context.Context, userID, label string) (bool, error) {
	e, err := s.addAchievement(ctx, userID, label, s.now())
	if err != nil {
		return false, err
	}
	if e == nil {
		return false, nil
	}
	s.publish(*e)
	return true, nil
}

// ClaimAchievement is MarkAchievement for rider-initiated unlocks such as a
// finished assessment. Labels the delivery flow awards are refused.
func (s *UserStore) ClaimAchievement(ctx context.Context, userID string, req *AchievementRequest) (bool, error) {
	if err := validateStruct(req); err != nil {
		return false, err
	}
	label := strings.TrimSpace(req.Label)
	if domain.AwardedAutomatically(label) {
		return false, domain.NewValidationError("label", "is awarded automatically")
	}
	return s.MarkAchievement(ctx, userID, label)
}

func (s *UserStore) addAchievement(ctx context.Context, userID, label string, at time.Time) (*events.Event, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "is required")
	}
	if label == "" {
		return nil, domain.NewValidationError("label", "is required")
	}
	inserted, err := s.repo.AddAchievement(ctx, domain.Achievement{UserID: userID, Label: label, UnlockedAt: at})
	if err != nil || !inserted {
		return nil, err
	}
	s.log.Infof("achievement %q unlocked for %s", label, userID)
	return &events.Event{Kind: events.AchievementUnlocked, UserID: userID, Label: label, At: at}, nil
}

// Achievements lists unlocked labels in the order they were earned.
func (s *UserStore) Achievements(ctx context.Context, userID string) ([]string, error) {
	list, err := s.repo.ListAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(list))
	for _, a := range list {
		labels = append(labels, a.Label)
	}
	return labels, nil
}

func (s *UserStore) Streak(ctx context.Context, userID string) (*domain.Streak, error) {
	return s.repo.GetStreak(ctx, userID)
}

// StreakDays is the session user's streak as of today.
func (s *UserStore) StreakDays(ctx context.Context) (int, error) {
	userID := s.currentUserID()
	if userID == "" {
		return 0, domain.ErrNotAuthenticated
	}
	streak, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return 0, err
	}
	return streak.Days(s.now()), nil
}
