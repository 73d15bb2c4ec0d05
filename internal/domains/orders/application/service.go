package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
	"github.com/Apurer/order-management-api/internal/domains/orders/ports"
)

// ErrInvalidDateRange is returned when the range starts after it ends.
var ErrInvalidDateRange = errors.New("start date must not be after end date")

// Service orchestrates order use cases and owns the lifecycle rules.
type Service struct {
	repo   ports.Repository
	events ports.EventPublisher
	now    func() time.Time
}

type Option func(*Service)

// WithEventPublisher routes lifecycle events to publisher.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, events: ports.NoopEventPublisher, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.list(ctx, ports.Filter{})
}

// GetOrder returns (nil, nil) when no order has the identifier.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	if !status.IsValid() {
		return nil, mapError(fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status))
	}
	return s.list(ctx, ports.Filter{Statuses: []domain.Status{status}})
}

// ListByDateRange returns orders created on any calendar day from start to end, both inclusive.
// Only the UTC date of start and end is considered.
func (s *Service) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	from := startOfDay(start)
	to := startOfDay(end)
	if from.After(to) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidDateRange)
	}
	return s.list(ctx, ports.Filter{CreatedFrom: from, CreatedBefore: to.AddDate(0, 0, 1)})
}

// ListByUser returns an empty list for identifiers no user can own.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if userID <= 0 {
		return []*domain.Order{}, nil
	}
	return s.list(ctx, ports.Filter{OwnerUserID: userID})
}

func (s *Service) ListPendingByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if userID <= 0 {
		return []*domain.Order{}, nil
	}
	return s.list(ctx, ports.Filter{OwnerUserID: userID, Statuses: domain.PendingStatuses()})
}

func (s *Service) CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(input, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ports.EventOrderCreated, saved, "")
	return saved, nil
}

func (s *Service) UpdateOrder(ctx context.Context, id int64, input domain.OrderInput) (*domain.Order, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := existing.Status
	if err := existing.Apply(input); err != nil {
		return nil, mapError(err)
	}
	existing.UpdatedAt = s.now().UTC()
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	if saved.Status != previous {
		s.publish(ctx, ports.EventOrderStatusChanged, saved, previous)
	}
	return saved, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.events.Publish(ctx, ports.Event{Type: ports.EventOrderDeleted, OrderID: id, OccurredAt: s.now().UTC()})
	return nil
}

// TransitionOrder moves the order to target if the transition table allows it.
func (s *Service) TransitionOrder(ctx context.Context, id int64, target domain.Status) (*domain.Order, error) {
	return s.mutateStatus(ctx, id, func(order *domain.Order) error {
		return order.TransitionTo(target)
	})
}

// Checkout requires a PENDING or PENDING_PAYMENT order and marks it PAID.
func (s *Service) Checkout(ctx context.Context, id int64) (*domain.Order, error) {
	return s.mutateStatus(ctx, id, func(order *domain.Order) error {
		return order.Checkout()
	})
}

func (s *Service) mutateStatus(ctx context.Context, id int64, mutate func(*domain.Order) error) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := order.Status
	if err := mutate(order); err != nil {
		return nil, mapError(err)
	}
	order.UpdatedAt = s.now().UTC()
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ports.EventOrderStatusChanged, saved, previous)
	return saved, nil
}

func (s *Service) list(ctx context.Context, filter ports.Filter) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// publish is best effort; adapters report their own delivery failures.
func (s *Service) publish(ctx context.Context, eventType ports.EventType, order *domain.Order, from domain.Status) {
	_ = s.events.Publish(ctx, ports.Event{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.OwnerUserID,
		FromStatus: from,
		ToStatus:   order.Status,
		OccurredAt: s.now().UTC(),
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ ports.Service = (*Service)(nil)
