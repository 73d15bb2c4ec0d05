package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
	"github.com/Apurer/order-management-api/internal/domains/orders/ports"
)

func newOrder(t *testing.T, owner int64, createdAt time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(domain.OrderInput{
		ClientName:  "Alice",
		Address:     "1 Main St",
		Phone:       "555-1111",
		OwnerUserID: owner,
	}, createdAt)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAssignsSequentialIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, newOrder(t, 1, time.Now()))
	require.NoError(t, err)
	second, err := repo.Save(ctx, newOrder(t, 1, time.Now()))
	require.NoError(t, err)

	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
}

func TestRepository_SaveUnknownIDIsNotFound(t *testing.T) {
	repo := NewRepository()
	order := newOrder(t, 1, time.Now())
	order.ID = 42

	_, err := repo.Save(context.Background(), order)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, newOrder(t, 1, time.Now()))
	require.NoError(t, err)

	saved.Status = domain.StatusCancelled
	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, fetched.Status)
}

func TestRepository_ListFilters(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.Save(ctx, newOrder(t, 1, day.Add(-time.Nanosecond)))
	require.NoError(t, err)
	inRange, err := repo.Save(ctx, newOrder(t, 1, day))
	require.NoError(t, err)
	other, err := repo.Save(ctx, newOrder(t, 2, day.Add(23*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newOrder(t, 2, day.AddDate(0, 0, 1)))
	require.NoError(t, err)

	list, err := repo.List(ctx, ports.Filter{CreatedFrom: day, CreatedBefore: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, inRange.ID, list[0].ID)
	require.Equal(t, other.ID, list[1].ID)

	list, err = repo.List(ctx, ports.Filter{OwnerUserID: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)

	list, err = repo.List(ctx, ports.Filter{Statuses: []domain.Status{domain.StatusPaid}})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRepository_DeleteAndReset(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, newOrder(t, 1, time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByID(ctx, saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)

	_, err = repo.Save(ctx, newOrder(t, 1, time.Now()))
	require.NoError(t, err)
	repo.Reset()
	again, err := repo.Save(ctx, newOrder(t, 1, time.Now()))
	require.NoError(t, err)
	require.Equal(t, int64(1), again.ID)
}
