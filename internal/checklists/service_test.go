package checklists

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hotelworks/hotelstock-backend/internal/stock"
	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

func setupChecklistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:checklist_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS room_checklists (
  id TEXT PRIMARY KEY,
  room_id TEXT NOT NULL,
  task_id TEXT NOT NULL,
  checked_by TEXT NOT NULL,
  lines TEXT,
  status TEXT NOT NULL DEFAULT 'draft',
  completed_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (room_id, task_id)
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

type stubCatalog struct {
	items []models.InventoryItem
	err   error
}

func (s *stubCatalog) List(_ context.Context) ([]models.InventoryItem, error) {
	return s.items, s.err
}

type stubApplier struct {
	inputs  []stock.ApplyInput
	failFor map[uuid.UUID]error
}

func (s *stubApplier) Apply(_ context.Context, input stock.ApplyInput) (*stock.Result, error) {
	s.inputs = append(s.inputs, input)
	if err, ok := s.failFor[input.ItemID]; ok {
		return nil, err
	}
	return &stock.Result{}, nil
}

func newChecklistService(t *testing.T, conn *gorm.DB, catalog *stubCatalog, applier *stubApplier) Service {
	t.Helper()
	if catalog == nil {
		catalog = &stubCatalog{}
	}
	if applier == nil {
		applier = &stubApplier{}
	}
	svc, err := NewService(NewRepository(conn), catalog, applier, nil)
	require.NoError(t, err)
	return svc
}

func draftLines(itemID uuid.UUID) types.ChecklistLines {
	return types.ChecklistLines{
		{ItemID: itemID, Name: "Bath Towel", Status: enums.ChecklistItemStatusExpected, Quantity: 2},
	}
}

func TestGetOrInitReturnsPlaceholdersDedupedByName(t *testing.T) {
	conn := setupChecklistTestDB(t)
	catalog := &stubCatalog{items: []models.InventoryItem{
		{ID: uuid.New(), Name: "Bath Towel", Category: enums.ItemCategoryHousekeeping},
		{ID: uuid.New(), Name: "Bath Towel", Category: enums.ItemCategoryHousekeeping},
		{ID: uuid.New(), Name: "Shampoo", Category: enums.ItemCategoryHousekeeping},
	}}
	svc := newChecklistService(t, conn, catalog, nil)

	view, err := svc.GetOrInit(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, view.Checklist)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Bath Towel", view.Items[0].Name)
	assert.Equal(t, "Shampoo", view.Items[1].Name)
}

func TestGetOrInitReturnsStoredChecklist(t *testing.T) {
	conn := setupChecklistTestDB(t)
	svc := newChecklistService(t, conn, nil, nil)

	roomID := uuid.New()
	taskID := uuid.New()
	created, err := svc.Create(context.Background(), CreateInput{
		RoomID:  roomID,
		TaskID:  taskID,
		ActorID: uuid.New(),
		Lines:   draftLines(uuid.New()),
	})
	require.NoError(t, err)

	view, err := svc.GetOrInit(context.Background(), roomID, taskID)
	require.NoError(t, err)
	require.NotNil(t, view.Checklist)
	assert.Equal(t, created.ID, view.Checklist.ID)
	assert.Empty(t, view.Items)
}

func TestCreateRejectsDuplicateRoomTask(t *testing.T) {
	conn := setupChecklistTestDB(t)
	svc := newChecklistService(t, conn, nil, nil)

	input := CreateInput{
		RoomID:  uuid.New(),
		TaskID:  uuid.New(),
		ActorID: uuid.New(),
		Lines:   draftLines(uuid.New()),
	}
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateValidatesLines(t *testing.T) {
	conn := setupChecklistTestDB(t)
	svc := newChecklistService(t, conn, nil, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		RoomID:  uuid.New(),
		TaskID:  uuid.New(),
		ActorID: uuid.New(),
		Lines: types.ChecklistLines{
			{ItemID: uuid.New(), Name: "Towel", Status: "misplaced", Quantity: 1},
		},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateMergesLinesWhileDraft(t *testing.T) {
	conn := setupChecklistTestDB(t)
	svc := newChecklistService(t, conn, nil, nil)

	created, err := svc.Create(context.Background(), CreateInput{
		RoomID:  uuid.New(),
		TaskID:  uuid.New(),
		ActorID: uuid.New(),
		Lines:   draftLines(uuid.New()),
	})
	require.NoError(t, err)

	newLines := types.ChecklistLines{
		{ItemID: uuid.New(), Name: "Soap", Status: enums.ChecklistItemStatusUsed, Quantity: 3},
	}
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{
		ActorID: uuid.New(),
		Lines:   &newLines,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChecklistStatusDraft, updated.Status)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, "Soap", updated.Lines[0].Name)
	assert.Nil(t, updated.CompletedAt)
}

func TestCompleteDeductsUsedLinesOnly(t *testing.T) {
	conn := setupChecklistTestDB(t)
	applier := &stubApplier{}
	svc := newChecklistService(t, conn, nil, applier)

	usedID := uuid.New()
	roomID := uuid.New()
	lines := types.ChecklistLines{
		{ItemID: usedID, Name: "Towel", Status: enums.ChecklistItemStatusUsed, Quantity: 2},
		{ItemID: uuid.New(), Name: "Soap", Status: enums.ChecklistItemStatusNotUsed, Quantity: 1},
		{ItemID: uuid.New(), Name: "Shampoo", Status: enums.ChecklistItemStatusUsed, Quantity: 0},
	}
	created, err := svc.Create(context.Background(), CreateInput{
		RoomID:  roomID,
		TaskID:  uuid.New(),
		ActorID: uuid.New(),
		Lines:   lines,
	})
	require.NoError(t, err)

	actorID := uuid.New()
	status := enums.ChecklistStatusCompleted
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{
		ActorID:   actorID,
		ActorRole: enums.ActorRoleHousekeeping,
		Status:    &status,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChecklistStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	require.Len(t, applier.inputs, 1)
	deduction := applier.inputs[0]
	assert.Equal(t, usedID, deduction.ItemID)
	assert.Equal(t, enums.TransactionTypeRoomAllocation, deduction.Type)
	assert.Equal(t, 2, deduction.Quantity)
	assert.Equal(t, actorID, deduction.ActorID)
	assert.True(t, deduction.IsAutomatic)
	require.NotNil(t, deduction.RoomID)
	assert.Equal(t, roomID, *deduction.RoomID)
	require.NotNil(t, deduction.Notes)
	assert.Equal(t, fmt.Sprintf("Auto-deducted for room %s", roomID), *deduction.Notes)
}

func TestCompleteSkipsFailedDeductions(t *testing.T) {
	conn := setupChecklistTestDB(t)

	failingID := uuid.New()
	okID := uuid.New()
	applier := &stubApplier{failFor: map[uuid.UUID]error{
		failingID: pkgerrors.New(pkgerrors.CodeInsufficient, "insufficient stock available"),
	}}
	svc := newChecklistService(t, conn, nil, applier)

	created, err := svc.Create(context.Background(), CreateInput{
		RoomID:  uuid.New(),
		TaskID:  uuid.New(),
		ActorID: uuid.New(),
		Lines: types.ChecklistLines{
			{ItemID: failingID, Name: "Towel", Status: enums.ChecklistItemStatusUsed, Quantity: 5},
			{ItemID: okID, Name: "Soap", Status: enums.ChecklistItemStatusUsed, Quantity: 1},
		},
	})
	require.NoError(t, err)

	status := enums.ChecklistStatusCompleted
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{
		ActorID: uuid.New(),
		Status:  &status,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChecklistStatusCompleted, updated.Status)

	// both deductions attempted, one failed, completion stands
	require.Len(t, applier.inputs, 2)
}

func TestCompletedChecklistIsFrozen(t *testing.T) {
	conn := setupChecklistTestDB(t)
	applier := &stubApplier{}
	svc := newChecklistService(t, conn, nil, applier)

	created, err := svc.Create(context.Background(), CreateInput{
		RoomID:  uuid.New(),
		TaskID:  uuid.New(),
		ActorID: uuid.New(),
		Lines: types.ChecklistLines{
			{ItemID: uuid.New(), Name: "Towel", Status: enums.ChecklistItemStatusUsed, Quantity: 1},
		},
	})
	require.NoError(t, err)

	status := enums.ChecklistStatusCompleted
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{ActorID: uuid.New(), Status: &status})
	require.NoError(t, err)
	require.Len(t, applier.inputs, 1)

	// a second completion must not deduct again
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{ActorID: uuid.New(), Status: &status})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	assert.Len(t, applier.inputs, 1)
}

func TestUpdateNotFound(t *testing.T) {
	conn := setupChecklistTestDB(t)
	svc := newChecklistService(t, conn, nil, nil)

	status := enums.ChecklistStatusCompleted
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{ActorID: uuid.New(), Status: &status})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateRacingDuplicateMapsToConflict(t *testing.T) {
	conn := setupChecklistTestDB(t)
	repo := NewRepository(conn)
	svc := newChecklistService(t, conn, nil, nil)

	roomID := uuid.New()
	taskID := uuid.New()

	// A competing create lands after the duplicate lookup but before the
	// insert, so only the unique index can catch it.
	svc.(*service).beforeInsert = func(ctx context.Context) {
		_, err := repo.Create(ctx, &models.RoomChecklist{
			ID:        uuid.New(),
			RoomID:    roomID,
			TaskID:    taskID,
			CheckedBy: uuid.New(),
			Status:    enums.ChecklistStatusDraft,
		})
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), CreateInput{
		RoomID:  roomID,
		TaskID:  taskID,
		ActorID: uuid.New(),
		Lines:   draftLines(uuid.New()),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.RoomChecklist{}).
		Where("room_id = ? AND task_id = ?", roomID, taskID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteSkipLogCarriesRoom(t *testing.T) {
	conn := setupChecklistTestDB(t)

	failingID := uuid.New()
	applier := &stubApplier{failFor: map[uuid.UUID]error{
		failingID: pkgerrors.New(pkgerrors.CodeInsufficient, "insufficient stock available"),
	}}
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})
	svc, err := NewService(NewRepository(conn), &stubCatalog{}, applier, logg)
	require.NoError(t, err)

	roomID := uuid.New()
	created, err := svc.Create(context.Background(), CreateInput{
		RoomID:  roomID,
		TaskID:  uuid.New(),
		ActorID: uuid.New(),
		Lines: types.ChecklistLines{
			{ItemID: failingID, Name: "Towel", Status: enums.ChecklistItemStatusUsed, Quantity: 5},
		},
	})
	require.NoError(t, err)

	status := enums.ChecklistStatusCompleted
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{
		ActorID: uuid.New(),
		Status:  &status,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "checklist.deduction.skipped")
	assert.Contains(t, buf.String(), fmt.Sprintf("%q:%q", "room_id", roomID.String()))
}
