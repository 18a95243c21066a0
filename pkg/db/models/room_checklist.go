package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

// RoomChecklist tracks the items expected to be used during one housekeeping
// task in one room. Lines reference catalog items by id only. Once the status
// reaches completed the checklist is frozen.
type RoomChecklist struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID      uuid.UUID             `gorm:"column:room_id;type:uuid;not null;uniqueIndex:idx_room_task"`
	TaskID      uuid.UUID             `gorm:"column:task_id;type:uuid;not null;uniqueIndex:idx_room_task"`
	CheckedBy   uuid.UUID             `gorm:"column:checked_by;type:uuid;not null"`
	Lines       types.ChecklistLines  `gorm:"column:lines;type:jsonb;serializer:json"`
	Status      enums.ChecklistStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	CompletedAt *time.Time            `gorm:"column:completed_at"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// IsCompleted reports whether the checklist reached its terminal state.
func (c *RoomChecklist) IsCompleted() bool {
	return c.Status == enums.ChecklistStatusCompleted
}
