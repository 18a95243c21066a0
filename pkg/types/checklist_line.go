package types

import (
	"github.com/google/uuid"

	"github.com/hotelworks/hotelstock-backend/pkg/enums"
)

// ChecklistLine is a single entry on a room inventory checklist. It carries a
// reference to the catalog item plus a quantity/status snapshot; it never
// duplicates catalog stock state.
type ChecklistLine struct {
	ItemID   uuid.UUID                 `json:"item_id"`
	Name     string                    `json:"name,omitempty"`
	Status   enums.ChecklistItemStatus `json:"status"`
	Quantity int                       `json:"quantity"`
}

// ChecklistLines is the jsonb-serialized collection stored on a checklist row.
type ChecklistLines []ChecklistLine
