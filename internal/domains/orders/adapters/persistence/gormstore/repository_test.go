package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
	"github.com/Apurer/order-management-api/internal/domains/orders/ports"
)

func TestRecordMapping(t *testing.T) {
	courier := int64(5)
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	order := &domain.Order{
		ID:               3,
		ClientName:       "Alice",
		Address:          "1 Main St",
		Phone:            "555-1111",
		Status:           domain.StatusShipped,
		OwnerUserID:      7,
		DeliveryPersonID: &courier,
		CreatedAt:        created,
		UpdatedAt:        created,
	}

	record := toRecord(order)
	require.Equal(t, "SHIPPED", record.Status)
	require.Equal(t, int64(7), record.UserID)
	require.Equal(t, time.UTC, record.CreatedAt.Location())

	back := record.toDomain()
	require.Equal(t, order.ID, back.ID)
	require.Equal(t, order.Status, back.Status)
	require.True(t, back.CreatedAt.Equal(created))
	require.Equal(t, int64(5), *back.DeliveryPersonID)
	require.Equal(t, "orders", orderRecord{}.TableName())
}

func TestUnconfiguredRepository(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.Order{})
	require.Error(t, err)
	_, err = repo.GetByID(ctx, 1)
	require.Error(t, err)
	require.Error(t, repo.Delete(ctx, 1))
	_, err = repo.List(ctx, ports.Filter{})
	require.Error(t, err)
	require.Error(t, repo.Ping(ctx))
}
