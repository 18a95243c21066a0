package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

// ItemDTO is the catalog item shape returned to callers, including the alert
// flags list views compute on the fly.
type ItemDTO struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Category        enums.ItemCategory `json:"category"`
	UnitType        enums.UnitType     `json:"unit_type"`
	CurrentStock    int                `json:"current_stock"`
	MinThreshold    int                `json:"min_threshold"`
	ReorderQuantity int                `json:"reorder_quantity"`
	CostPerUnit     decimal.Decimal    `json:"cost_per_unit"`
	Supplier        types.Supplier     `json:"supplier"`
	StorageLocation string             `json:"storage_location"`
	Notes           *string            `json:"notes,omitempty"`
	IsLowStock      bool               `json:"is_low_stock"`
	IsOutOfStock    bool               `json:"is_out_of_stock"`
	NeedsReorder    bool               `json:"needs_reorder"`
	LastRestockDate *time.Time         `json:"last_restock_date,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewItemDTO maps a catalog row to its API shape.
func NewItemDTO(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		UnitType:        item.UnitType,
		CurrentStock:    item.CurrentStock,
		MinThreshold:    item.MinThreshold,
		ReorderQuantity: item.ReorderQuantity,
		CostPerUnit:     item.CostPerUnit,
		Supplier:        item.Supplier,
		StorageLocation: item.StorageLocation,
		Notes:           item.Notes,
		IsLowStock:      item.IsLowStock,
		IsOutOfStock:    item.IsOutOfStock(),
		NeedsReorder:    item.NeedsReorder(),
		LastRestockDate: item.LastRestockDate,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// NewItemDTOs maps a slice of catalog rows.
func NewItemDTOs(items []models.InventoryItem) []*ItemDTO {
	out := make([]*ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, NewItemDTO(&items[i]))
	}
	return out
}
