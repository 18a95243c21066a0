package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

// InventoryItem is the catalog row holding current stock and reorder
// parameters. CurrentStock is only ever mutated through the stock engine;
// IsLowStock is derived and recomputed on every stock write.
type InventoryItem struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string             `gorm:"column:name;not null"`
	Category        enums.ItemCategory `gorm:"column:category;type:text;not null"`
	UnitType        enums.UnitType     `gorm:"column:unit_type;type:text;not null"`
	CurrentStock    int                `gorm:"column:current_stock;not null;default:0"`
	MinThreshold    int                `gorm:"column:min_threshold;not null;default:0"`
	ReorderQuantity int                `gorm:"column:reorder_quantity;not null;default:1"`
	CostPerUnit     decimal.Decimal    `gorm:"column:cost_per_unit;type:numeric(12,2);not null"`
	Supplier        types.Supplier     `gorm:"column:supplier;type:jsonb;serializer:json"`
	StorageLocation string             `gorm:"column:storage_location;not null;default:'Main Storage'"`
	Notes           *string            `gorm:"column:notes"`
	IsLowStock      bool               `gorm:"column:is_low_stock;not null;default:false"`
	LastRestockDate *time.Time         `gorm:"column:last_restock_date"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// ComputeLowStock reports whether the given stock level sits at or below the
// item's minimum threshold.
func (i *InventoryItem) ComputeLowStock(stock int) bool {
	return stock <= i.MinThreshold
}

// IsOutOfStock reports whether the item has no stock left.
func (i *InventoryItem) IsOutOfStock() bool {
	return i.CurrentStock == 0
}

// NeedsReorder reports whether the item sits at or below its threshold.
func (i *InventoryItem) NeedsReorder() bool {
	return i.CurrentStock <= i.MinThreshold
}
