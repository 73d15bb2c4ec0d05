package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the orders bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders GORM adapter.
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
