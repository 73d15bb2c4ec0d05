package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/order-management-api/internal/domains/orders/domain"
	"github.com/Apurer/order-management-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders through GORM. It only issues portable SQL, so the
// same adapter serves the PostgreSQL and MySQL dialects. Caller manages DB lifecycle
// and schema (see platform/migrations).
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID               int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ClientName       string    `gorm:"column:client_name;size:255;not null"`
	Address          string    `gorm:"column:address;size:512;not null"`
	Phone            string    `gorm:"column:phone;size:64;not null"`
	Status           string    `gorm:"column:status;type:varchar(32);not null;index:idx_orders_user_status"`
	UserID           int64     `gorm:"column:user_id;index:idx_orders_user_status"`
	DeliveryPersonID *int64    `gorm:"column:delivery_person_id"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts new orders (ID == 0) and updates existing ones.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
		return r.GetByID(ctx, record.ID)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing orderRecord
		if err := tx.Select("id").First(&existing, "id = ?", record.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		return tx.Model(&orderRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
			"client_name":        record.ClientName,
			"address":            record.Address,
			"phone":              record.Phone,
			"status":             record.Status,
			"user_id":            record.UserID,
			"delivery_person_id": record.DeliveryPersonID,
			"updated_at":         record.UpdatedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns the orders matching filter, ordered by identifier.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.OwnerUserID != 0 {
		query = query.Where("user_id = ?", filter.OwnerUserID)
	}
	if !filter.CreatedFrom.IsZero() {
		query = query.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if !filter.CreatedBefore.IsZero() {
		query = query.Where("created_at < ?", filter.CreatedBefore.UTC())
	}
	var records []orderRecord
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// Ping verifies the underlying connection is usable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:               order.ID,
		ClientName:       order.ClientName,
		Address:          order.Address,
		Phone:            order.Phone,
		Status:           string(order.Status),
		UserID:           order.OwnerUserID,
		DeliveryPersonID: order.DeliveryPersonID,
		CreatedAt:        order.CreatedAt.UTC(),
		UpdatedAt:        order.UpdatedAt.UTC(),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:               r.ID,
		ClientName:       r.ClientName,
		Address:          r.Address,
		Phone:            r.Phone,
		Status:           domain.Status(r.Status),
		OwnerUserID:      r.UserID,
		DeliveryPersonID: r.DeliveryPersonID,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}
