// internal/domain/payload.go
package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const payloadSeparator = "|"

// Pickup is the decoded content of a vendor's pickup QR code.
type Pickup struct {
	OrderID      string
	CustomerName string
	Amount       float64
}

// ParsePickup accepts "customerName|amount" or "orderId|customerName|amount".
func ParsePickup(raw string) (*Pickup, error) {
	parts := splitPayload(raw)
	var p Pickup
	var amount string
	switch len(parts) {
	case 2:
		p.CustomerName, amount = parts[0], parts[1]
	case 3:
		p.OrderID, p.CustomerName, amount = parts[0], parts[1], parts[2]
		if p.OrderID == "" {
			return nil, fmt.Errorf("%w: empty order id", ErrInvalidPayload)
		}
	default:
		return nil, fmt.Errorf("%w: expected 2 or 3 fields, got %d", ErrInvalidPayload, len(parts))
	}
	if p.CustomerName == "" {
		return nil, fmt.Errorf("%w: empty customer name", ErrInvalidPayload)
	}
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: bad amount %q", ErrInvalidPayload, amount)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: negative amount", ErrInvalidPayload)
	}
	p.Amount = v
	return &p, nil
}

// ParseConfirmation returns the order id carried by a buyer QR code: either a
// bare order id or a full pickup payload whose first field is the order id.
func ParseConfirmation(raw string) (string, error) {
	parts := splitPayload(raw)
	if len(parts) == 0 || parts[0] == "" {
		return "", fmt.Errorf("%w: empty confirmation", ErrInvalidPayload)
	}
	return parts[0], nil
}

func splitPayload(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, payloadSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
