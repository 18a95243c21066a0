package checklists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
)

// Repository manages persistence for room checklists.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a checklist repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the checklist row.
func (r *Repository) Create(ctx context.Context, checklist *models.RoomChecklist) (*models.RoomChecklist, error) {
	if err := r.db.WithContext(ctx).Create(checklist).Error; err != nil {
		return nil, err
	}
	return checklist, nil
}

// FindByID loads one checklist.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RoomChecklist, error) {
	var checklist models.RoomChecklist
	if err := r.db.WithContext(ctx).First(&checklist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &checklist, nil
}

// FindByRoomTask loads the checklist for one room and housekeeping task.
func (r *Repository) FindByRoomTask(ctx context.Context, roomID, taskID uuid.UUID) (*models.RoomChecklist, error) {
	var checklist models.RoomChecklist
	if err := r.db.WithContext(ctx).
		First(&checklist, "room_id = ? AND task_id = ?", roomID, taskID).Error; err != nil {
		return nil, err
	}
	return &checklist, nil
}

// Save persists the full checklist state.
func (r *Repository) Save(ctx context.Context, checklist *models.RoomChecklist) (*models.RoomChecklist, error) {
	if err := r.db.WithContext(ctx).Save(checklist).Error; err != nil {
		return nil, err
	}
	return checklist, nil
}
