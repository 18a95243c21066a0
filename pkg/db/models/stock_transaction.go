package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotelworks/hotelstock-backend/pkg/enums"
)

// StockTransaction is one immutable ledger entry. PreviousStock and NewStock
// snapshot the catalog value around the change so the audit trail stands on
// its own; ItemName is denormalized so history survives item deletion.
// Rows are inserted once and never updated.
type StockTransaction struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID        uuid.UUID             `gorm:"column:item_id;type:uuid;not null;index"`
	ItemName      string                `gorm:"column:item_name;not null"`
	Type          enums.TransactionType `gorm:"column:type;type:text;not null"`
	Quantity      int                   `gorm:"column:quantity;not null"`
	PreviousStock int                   `gorm:"column:previous_stock;not null"`
	NewStock      int                   `gorm:"column:new_stock;not null"`
	ActorID       uuid.UUID             `gorm:"column:actor_id;type:uuid;not null"`
	RoomID        *uuid.UUID            `gorm:"column:room_id;type:uuid"`
	Notes         *string               `gorm:"column:notes"`
	IsAutomatic   bool                  `gorm:"column:is_automatic;not null;default:false"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
}
