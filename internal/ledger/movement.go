package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidRange  = errors.New("invalid date range: end is before start")
	ErrAppendFailed  = errors.New("appending movement failed")
)

// MovementType is the source of a movement.
type MovementType string

const (
	TypeOpening MovementType = "opening"
	TypeCounter MovementType = "counter"
	TypeOnline  MovementType = "online"
)

// IsOnline reports whether the movement counts as an online sale. Anything that
// is neither a till opening nor a counter sale (delivery, pickup, ...) does.
func (t MovementType) IsOnline() bool {
	return t != TypeOpening && t != TypeCounter
}

// PaymentMethod is how a movement was paid. The zero value means unknown.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
)

// IsDigital reports whether the money went anywhere but the drawer.
func (p PaymentMethod) IsDigital() bool {
	return p == PaymentTransfer || p == PaymentCard
}

// Status represents the lifecycle state of a movement.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Item is a single order line.
type Item struct {
	Name     string
	Quantity int
	Price    int64 // Unit price in cents
}

// Movement is an order row read as a ledger entry. Only Status may change after
// it has been stored.
type Movement struct {
	ID            uuid.UUID
	RestaurantID  uuid.UUID
	CreatedAt     time.Time
	Type          MovementType
	PaymentMethod PaymentMethod
	Total         int64 // Total in cents
	Items         []Item
	Status        Status
	CustomerName  string
}

// ReconcileOpen builds the movement that puts the opening float in the drawer.
func ReconcileOpen(amount int64) (*Movement, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Movement{
		Type:          TypeOpening,
		PaymentMethod: PaymentCash,
		Total:         amount,
		Items:         []Item{},
		Status:        StatusCompleted,
	}, nil
}

// CloseAdjustment builds the counter sale registering cash found in the drawer
// beyond what the system expected. It returns nil when there is nothing to register.
func CloseAdjustment(res CloseResult) *Movement {
	if res.AmountToRegister <= 0 {
		return nil
	}

	return &Movement{
		Type:          TypeCounter,
		PaymentMethod: PaymentCash,
		Total:         res.AmountToRegister,
		Items:         []Item{},
		Status:        StatusCompleted,
	}
}
