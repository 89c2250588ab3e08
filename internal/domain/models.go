// internal/domain/models.go
package domain

import "time"

const (
	DefaultDailyTarget = 5
	DefaultRole        = "Rider"
)

type VehicleType string

const (
	VehicleBike  VehicleType = "bike"
	VehicleTruck VehicleType = "truck"
)

type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	VehicleType  VehicleType `json:"vehicle_type,omitempty"`
	VehicleBrand string      `json:"vehicle_brand,omitempty"`
	VehiclePlate string      `json:"vehicle_plate,omitempty"`
	BikeCC       int         `json:"bike_cc,omitempty"`
	CapacityTons float64     `json:"capacity_tons,omitempty"`
	DailyTarget  int         `json:"daily_target"`
	Role         string      `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewUser returns a rider with the default target and role.
func NewUser(username, name string) *User {
	return &User{
		Username:    username,
		Name:        name,
		DailyTarget: DefaultDailyTarget,
		Role:        DefaultRole,
	}
}

type DeliveryStatus string

const (
	StatusOngoing   DeliveryStatus = "Ongoing"
	StatusCompleted DeliveryStatus = "Completed"
	StatusCancelled DeliveryStatus = "Cancelled"
)

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave s.
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to DeliveryStatus) bool {
	return from == StatusOngoing && to.IsTerminal()
}

func (s DeliveryStatus) String() string {
	return string(s)
}

type Delivery struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	OrderID      string         `json:"order_id,omitempty"`
	CustomerName string         `json:"customer_name"`
	TotalAmount  float64        `json:"total_amount"`
	Date         time.Time      `json:"date"` // civil date, see Day
	ScanTime     time.Time      `json:"scan_time"`
	Status       DeliveryStatus `json:"status"`
	DeliveryTime *time.Time     `json:"delivery_time,omitempty"`
}

type Achievement struct {
	UserID     string    `json:"user_id"`
	Label      string    `json:"label"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

const (
	AchievementFirstDelivery = "First Delivery"
	AchievementDailyTarget   = "Daily Target Reached"
	AchievementWeekStreak    = "7-Day Streak"
	AchievementAssessment    = "Assessment Completed"
)

// Session is the persisted device login flag.
type Session struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	Email      string `json:"email"`
	Username   string `json:"username"`
}

// AwardedAutomatically reports whether label is granted by the delivery flow
// rather than claimed by the rider.
func AwardedAutomatically(label string) bool {
	switch label {
	case AchievementFirstDelivery, AchievementDailyTarget, AchievementWeekStreak:
		return true
	}
	return false
}
