package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListMovements(ctx context.Context, filter ListFilter) ([]*Movement, error)
	AppendMovement(ctx context.Context, m *Movement) error
}

type ListFilter struct {
	RestaurantID     uuid.UUID
	From             *time.Time
	To               *time.Time // exclusive
	ExcludeCancelled bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Movements returns the non-cancelled movements of a restaurant inside r, oldest first.
func (s *Service) Movements(ctx context.Context, restaurantID uuid.UUID, r DateRange) ([]*Movement, error) {
	if !r.Valid() {
		return nil, ErrInvalidRange
	}

	from, to := r.Bounds()

	movements, err := s.repo.ListMovements(ctx, ListFilter{
		RestaurantID:     restaurantID,
		From:             &from,
		To:               &to,
		ExcludeCancelled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}

	return movements, nil
}

func (s *Service) Snapshot(ctx context.Context, restaurantID uuid.UUID, r DateRange) (Snapshot, error) {
	movements, err := s.Movements(ctx, restaurantID, r)
	if err != nil {
		return Snapshot{}, err
	}

	return Compute(movements, r), nil
}

// OpenTill appends the opening float movement.
func (s *Service) OpenTill(ctx context.Context, restaurantID uuid.UUID, amount int64) (*Movement, error) {
	m, err := ReconcileOpen(amount)
	if err != nil {
		return nil, err
	}

	m.RestaurantID = restaurantID

	if err := s.repo.AppendMovement(ctx, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAppendFailed, err)
	}

	return m, nil
}

type CloseOutcome struct {
	Snapshot Snapshot
	Result   CloseResult
	// Adjustment is the appended counter sale, nil when the counted cash did
	// not exceed the expected drawer total.
	Adjustment *Movement
}

// CloseTill reconciles the counted cash against the range's snapshot and
// registers any surplus as a counter cash sale. A close without surplus
// writes nothing.
func (s *Service) CloseTill(ctx context.Context, restaurantID uuid.UUID, countedCash int64, r DateRange) (*CloseOutcome, error) {
	if countedCash <= 0 {
		return nil, ErrInvalidAmount
	}

	snap, err := s.Snapshot(ctx, restaurantID, r)
	if err != nil {
		return nil, err
	}

	out := &CloseOutcome{
		Snapshot: snap,
		Result:   ReconcileClose(countedCash, snap),
	}

	adj := CloseAdjustment(out.Result)
	if adj == nil {
		return out, nil
	}

	adj.RestaurantID = restaurantID

	if err := s.repo.AppendMovement(ctx, adj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAppendFailed, err)
	}

	out.Adjustment = adj

	return out, nil
}
