//go:build integration

package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
	"github.com/Apurer/order-management-api/internal/domains/orders/ports"
	"github.com/Apurer/order-management-api/internal/platform/database"
	"github.com/Apurer/order-management-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("orders_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Connect(ctx, database.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, migrations.Run(db))
	return db
}

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
	repo := NewRepository(setupOrdersPostgresContainer(t))
	ctx := context.Background()
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	first, err := repo.Save(ctx, newOrder(t, 7, created))
	require.NoError(t, err)
	second, err := repo.Save(ctx, newOrder(t, 7, created))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	fetched, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, fetched.Status)
	assert.True(t, fetched.CreatedAt.Equal(created))
	assert.Nil(t, fetched.DeliveryPersonID)
}

func TestRepository_UpdateStatusAndCourier(t *testing.T) {
	repo := NewRepository(setupOrdersPostgresContainer(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, newOrder(t, 7, time.Now()))
	require.NoError(t, err)

	require.NoError(t, saved.Checkout())
	courier := int64(12)
	saved.DeliveryPersonID = &courier
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, updated.Status)
	require.NotNil(t, updated.DeliveryPersonID)
	assert.Equal(t, int64(12), *updated.DeliveryPersonID)

	missing := newOrder(t, 7, time.Now())
	missing.ID = 999
	_, err = repo.Save(ctx, missing)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListFilters(t *testing.T) {
	repo := NewRepository(setupOrdersPostgresContainer(t))
	ctx := context.Background()
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	early, err := repo.Save(ctx, newOrder(t, 7, day.Add(-time.Second)))
	require.NoError(t, err)
	inRange, err := repo.Save(ctx, newOrder(t, 7, day))
	require.NoError(t, err)
	other, err := repo.Save(ctx, newOrder(t, 8, day.Add(12*time.Hour)))
	require.NoError(t, err)
	require.NoError(t, other.Checkout())
	_, err = repo.Save(ctx, other)
	require.NoError(t, err)

	all, err := repo.List(ctx, ports.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUser, err := repo.List(ctx, ports.Filter{OwnerUserID: 7})
	require.NoError(t, err)
	assert.Equal(t, []int64{early.ID, inRange.ID}, ids(byUser))

	byDay, err := repo.List(ctx, ports.Filter{CreatedFrom: day, CreatedBefore: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Equal(t, []int64{inRange.ID, other.ID}, ids(byDay))

	paid, err := repo.List(ctx, ports.Filter{Statuses: []domain.Status{domain.StatusPaid}})
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID}, ids(paid))

	pending, err := repo.List(ctx, ports.Filter{OwnerUserID: 8, Statuses: domain.PendingStatuses()})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRepository_DeleteAndPing(t *testing.T) {
	repo := NewRepository(setupOrdersPostgresContainer(t))
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	saved, err := repo.Save(ctx, newOrder(t, 0, time.Now()))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, saved.ID))

	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)
}

func ids(orders []*domain.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
