// internal/application/validation.go
package application

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
)

var validate = validator.New()

type SignupRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=64"`
	Password     string  `json:"password" validate:"required,min=3"`
	Name         string  `json:"name" validate:"required"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email" validate:"omitempty,email"`
	VehicleType  string  `json:"vehicle_type" validate:"omitempty,oneof=bike truck"`
	VehicleBrand string  `json:"vehicle_brand"`
	VehiclePlate string  `json:"vehicle_plate"`
	BikeCC       int     `json:"bike_cc" validate:"gte=0"`
	CapacityTons float64 `json:"capacity_tons" validate:"gte=0"`
	DailyTarget  *int    `json:"daily_target" validate:"omitempty,gte=0"`
}

// User builds the record to register. An absent target takes the default.
func (r *SignupRequest) User() *domain.User {
	u := domain.NewUser(strings.TrimSpace(r.Username), strings.TrimSpace(r.Name))
	u.Phone = r.Phone
	u.Email = r.Email
	u.VehicleType = domain.VehicleType(r.VehicleType)
	u.VehicleBrand = r.VehicleBrand
	u.VehiclePlate = r.VehiclePlate
	u.BikeCC = r.BikeCC
	u.CapacityTons = r.CapacityTons
	if r.DailyTarget != nil {
		u.DailyTarget = *r.DailyTarget
	}
	return u
}

type UpdateProfileRequest struct {
	Name         string  `json:"name" validate:"required"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email" validate:"omitempty,email"`
	VehicleType  string  `json:"vehicle_type" validate:"omitempty,oneof=bike truck"`
	VehicleBrand string  `json:"vehicle_brand"`
	VehiclePlate string  `json:"vehicle_plate"`
	BikeCC       int     `json:"bike_cc" validate:"gte=0"`
	CapacityTons float64 `json:"capacity_tons" validate:"gte=0"`
}

// Apply copies the editable fields onto u.
func (r *UpdateProfileRequest) Apply(u *domain.User) {
	u.Name = strings.TrimSpace(r.Name)
	u.Phone = r.Phone
	u.Email = r.Email
	u.VehicleType = domain.VehicleType(r.VehicleType)
	u.VehicleBrand = r.VehicleBrand
	u.VehiclePlate = r.VehiclePlate
	u.BikeCC = r.BikeCC
	u.CapacityTons = r.CapacityTons
}

type AchievementRequest struct {
	Label string `json:"label" validate:"required,max=64"`
}

// validateStruct runs the struct tags and reports the first failure as a
// domain.ValidationError keyed by the json field name.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return domain.NewValidationError(toSnake(fe.Field()), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must not be negative"
	default:
		return "failed " + fe.Tag()
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
