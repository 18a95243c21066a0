package checklists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelworks/hotelstock-backend/internal/stock"
	"github.com/hotelworks/hotelstock-backend/pkg/db"
	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

// catalogReader is the slice of the catalog the checklist engine needs to
// build placeholder lists.
type catalogReader interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
}

// stockApplier is the slice of the stock engine used for auto-deduction.
type stockApplier interface {
	Apply(ctx context.Context, input stock.ApplyInput) (*stock.Result, error)
}

// Service exposes room checklist operations.
type Service interface {
	GetOrInit(ctx context.Context, roomID, taskID uuid.UUID) (*ChecklistView, error)
	Create(ctx context.Context, input CreateInput) (*ChecklistDTO, error)
	Update(ctx context.Context, checklistID uuid.UUID, input UpdateInput) (*ChecklistDTO, error)
}

// CreateInput holds the payload to persist a new draft checklist.
type CreateInput struct {
	RoomID  uuid.UUID
	TaskID  uuid.UUID
	ActorID uuid.UUID
	Lines   types.ChecklistLines
}

// UpdateInput holds the mutation payload for a checklist. A status of
// completed triggers the auto-deduction fan-out.
type UpdateInput struct {
	ActorID   uuid.UUID
	ActorRole enums.ActorRole
	Lines     *types.ChecklistLines
	Status    *enums.ChecklistStatus
}

// PlaceholderItem is a catalog item offered for checklist population before a
// checklist exists, deduplicated by name.
type PlaceholderItem struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Category enums.ItemCategory `json:"category"`
}

// ChecklistDTO is the checklist shape returned to callers.
type ChecklistDTO struct {
	ID          uuid.UUID             `json:"id"`
	RoomID      uuid.UUID             `json:"room_id"`
	TaskID      uuid.UUID             `json:"task_id"`
	CheckedBy   uuid.UUID             `json:"checked_by"`
	Lines       types.ChecklistLines  `json:"lines"`
	Status      enums.ChecklistStatus `json:"status"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ChecklistView is the read response for a room+task: either the stored
// checklist, or a placeholder item list when none exists yet.
type ChecklistView struct {
	Checklist *ChecklistDTO     `json:"checklist"`
	Items     []PlaceholderItem `json:"items,omitempty"`
}

type service struct {
	repo    *Repository
	catalog catalogReader
	engine  stockApplier
	logg    *logger.Logger

	// beforeInsert runs between the duplicate lookup and the insert. Tests
	// use it to interleave a competing create.
	beforeInsert func(ctx context.Context)
}

// NewService constructs a checklist service instance.
func NewService(repo *Repository, catalog catalogReader, engine stockApplier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checklist repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if engine == nil {
		return nil, fmt.Errorf("stock engine required")
	}
	return &service{repo: repo, catalog: catalog, engine: engine, logg: logg}, nil
}

// GetOrInit returns the stored checklist for the room+task when present and
// non-empty. Otherwise it returns a generated placeholder list, one entry per
// distinct item name, with no persistence side effect.
func (s *service) GetOrInit(ctx context.Context, roomID, taskID uuid.UUID) (*ChecklistView, error) {
	if roomID == uuid.Nil || taskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id and task id are required")
	}

	checklist, err := s.repo.FindByRoomTask(ctx, roomID, taskID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load checklist")
	}
	if checklist != nil && len(checklist.Lines) > 0 {
		return &ChecklistView{Checklist: newChecklistDTO(checklist)}, nil
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list catalog items")
	}

	seen := map[string]struct{}{}
	placeholders := make([]PlaceholderItem, 0, len(items))
	for i := range items {
		item := &items[i]
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		placeholders = append(placeholders, PlaceholderItem{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
		})
	}
	return &ChecklistView{Items: placeholders}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ChecklistDTO, error) {
	if input.RoomID == uuid.Nil || input.TaskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id and task id are required")
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id is required")
	}
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByRoomTask(ctx, input.RoomID, input.TaskID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load checklist")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checklist already exists for this room and task")
	}

	if s.beforeInsert != nil {
		s.beforeInsert(ctx)
	}

	checklist := &models.RoomChecklist{
		ID:        uuid.New(),
		RoomID:    input.RoomID,
		TaskID:    input.TaskID,
		CheckedBy: input.ActorID,
		Lines:     input.Lines,
		Status:    enums.ChecklistStatusDraft,
	}
	if _, err := s.repo.Create(ctx, checklist); err != nil {
		// Unique index on (room_id, task_id) backstops the lookup above.
		if db.IsUniqueViolation(err, "uq_room_checklists_room_task") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "checklist already exists for this room and task")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert checklist")
	}
	return newChecklistDTO(checklist), nil
}

// Update merges the line list and, on the draft to completed transition,
// drives one room_allocation per used line. Each deduction is independent:
// a line that cannot be applied is logged and skipped so the checklist still
// records what housekeeping reported.
func (s *service) Update(ctx context.Context, checklistID uuid.UUID, input UpdateInput) (*ChecklistDTO, error) {
	if checklistID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checklist id is required")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid checklist status %q", *input.Status))
	}
	if input.Lines != nil {
		if err := validateLines(*input.Lines); err != nil {
			return nil, err
		}
	}

	checklist, err := s.repo.FindByID(ctx, checklistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checklist not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load checklist")
	}

	// Completed checklists are frozen: a second completion would re-run the
	// auto-deduction and double-charge the catalog.
	if checklist.IsCompleted() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checklist is already completed")
	}

	if input.Lines != nil {
		checklist.Lines = *input.Lines
	}

	completing := input.Status != nil && *input.Status == enums.ChecklistStatusCompleted
	if completing {
		now := time.Now().UTC()
		checklist.Status = enums.ChecklistStatusCompleted
		checklist.CompletedAt = &now
		s.deductUsedLines(ctx, checklist, input)
	}

	if _, err := s.repo.Save(ctx, checklist); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update checklist")
	}
	return newChecklistDTO(checklist), nil
}

func (s *service) deductUsedLines(ctx context.Context, checklist *models.RoomChecklist, input UpdateInput) {
	roomID := checklist.RoomID
	note := fmt.Sprintf("Auto-deducted for room %s", roomID)
	if s.logg != nil {
		ctx = s.logg.WithRoomID(ctx, roomID.String())
	}

	for _, line := range checklist.Lines {
		if line.Status != enums.ChecklistItemStatusUsed || line.Quantity <= 0 {
			continue
		}

		_, err := s.engine.Apply(ctx, stock.ApplyInput{
			ItemID:      line.ItemID,
			Type:        enums.TransactionTypeRoomAllocation,
			Quantity:    line.Quantity,
			ActorID:     input.ActorID,
			ActorRole:   input.ActorRole,
			RoomID:      &roomID,
			Notes:       &note,
			IsAutomatic: true,
		})
		if err == nil {
			continue
		}
		if s.logg != nil {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"checklist_id": checklist.ID.String(),
				"item_id":      line.ItemID.String(),
				"quantity":     line.Quantity,
				"error":        err.Error(),
			})
			s.logg.Warn(lctx, "checklist.deduction.skipped")
		}
	}
}

func validateLines(lines types.ChecklistLines) error {
	for i, line := range lines {
		if line.ItemID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %d: item id is required", i))
		}
		if !line.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %d: invalid status %q", i, line.Status))
		}
		if line.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %d: quantity cannot be negative", i))
		}
	}
	return nil
}

func newChecklistDTO(checklist *models.RoomChecklist) *ChecklistDTO {
	if checklist == nil {
		return nil
	}
	return &ChecklistDTO{
		ID:          checklist.ID,
		RoomID:      checklist.RoomID,
		TaskID:      checklist.TaskID,
		CheckedBy:   checklist.CheckedBy,
		Lines:       checklist.Lines,
		Status:      checklist.Status,
		CompletedAt: checklist.CompletedAt,
		CreatedAt:   checklist.CreatedAt,
		UpdatedAt:   checklist.UpdatedAt,
	}
}
