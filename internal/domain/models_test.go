// internal/domain/models_test.go
package domain

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	statuses := []DeliveryStatus{StatusOngoing, StatusCompleted, StatusCancelled}
	allowed := map[[2]DeliveryStatus]bool{
		{StatusOngoing, StatusCompleted}: true,
		{StatusOngoing, StatusCancelled}: true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]DeliveryStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if CanTransition(StatusOngoing, "Lost") {
		t.Error("CanTransition to an unknown status should be false")
	}
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name      string
		user      *User
		wantField string
	}{
		{name: "Valid", user: NewUser("rider", "Demo Rider")},
		{name: "Nil", user: nil, wantField: "user"},
		{name: "No username", user: NewUser("", "Demo Rider"), wantField: "username"},
		{name: "No name", user: NewUser("rider", ""), wantField: "name"},
		{name: "Negative target", user: &User{Username: "rider", Name: "Demo", DailyTarget: -1}, wantField: "daily_target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUser(tt.user)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateUser() unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Errorf("ValidateUser() error = %v, want field %q", err, tt.wantField)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ValidateUser() error %v does not match ErrValidation", err)
			}
		})
	}
}

func TestValidateDelivery(t *testing.T) {
	tests := []struct {
		name      string
		delivery  *Delivery
		wantField string
	}{
		{name: "Valid", delivery: &Delivery{UserID: "u1", CustomerName: "Asha"}},
		{name: "Nil", wantField: "delivery"},
		{name: "No user", delivery: &Delivery{CustomerName: "Asha"}, wantField: "user_id"},
		{name: "No customer", delivery: &Delivery{UserID: "u1"}, wantField: "customer_name"},
		{name: "Negative amount", delivery: &Delivery{UserID: "u1", CustomerName: "Asha", TotalAmount: -5}, wantField: "total_amount"},
		{name: "Unknown status", delivery: &Delivery{UserID: "u1", CustomerName: "Asha", Status: "Lost"}, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDelivery(tt.delivery)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateDelivery() unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Errorf("ValidateDelivery() error = %v, want field %q", err, tt.wantField)
			}
		})
	}
}

func TestAwardedAutomatically(t *testing.T) {
	cases := map[string]bool{
		AchievementFirstDelivery: true,
		AchievementDailyTarget:   true,
		AchievementWeekStreak:    true,
		AchievementAssessment:    false,
		"Safety Quiz":            false,
	}
	for label, want := range cases {
		if got := AwardedAutomatically(label); got != want {
			t.Errorf("AwardedAutomatically(%q) = %v, want %v", label, got, want)
		}
	}
}
