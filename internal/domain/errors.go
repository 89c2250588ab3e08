// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError names the offending field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateUser checks the fields every stored user must carry.
func ValidateUser(u *User) error {
	if u == nil {
		return NewValidationError("user", "is required")
	}
	if u.Username == "" {
		return NewValidationError("username", "is required")
	}
	if u.Name == "" {
		return NewValidationError("name", "is required")
	}
	if u.DailyTarget < 0 {
		return NewValidationError("daily_target", "must not be negative")
	}
	return nil
}

func ValidateDelivery(d *Delivery) error {
	if d == nil {
		return NewValidationError("delivery", "is required")
	}
	if d.UserID == "" {
		return NewValidationError("user_id", "is required")
	}
	if d.CustomerName == "" {
		return NewValidationError("customer_name", "is required")
	}
	if d.TotalAmount < 0 {
		return NewValidationError("total_amount", "must not be negative")
	}
	if d.Status != "" && !d.Status.IsValid() {
		return NewValidationError("status", "unknown status "+string(d.Status))
	}
	return nil
}
