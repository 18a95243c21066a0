package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hotelworks/hotelstock-backend/api/middleware"
	"github.com/hotelworks/hotelstock-backend/api/responses"
	"github.com/hotelworks/hotelstock-backend/api/validators"
	"github.com/hotelworks/hotelstock-backend/internal/checklists"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

type checklistLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Name     string    `json:"name,omitempty"`
	Status   string    `json:"status" validate:"required"`
	Quantity int       `json:"quantity" validate:"min=0"`
}

type createChecklistRequest struct {
	RoomID uuid.UUID              `json:"room_id" validate:"required"`
	TaskID uuid.UUID              `json:"task_id" validate:"required"`
	Lines  []checklistLineRequest `json:"lines" validate:"dive"`
}

type updateChecklistRequest struct {
	Lines  *[]checklistLineRequest `json:"lines,omitempty" validate:"omitempty,dive"`
	Status *string                 `json:"status,omitempty"`
}

// GetRoomChecklist returns the stored checklist for a room and task, or a
// placeholder item list when none exists yet.
func GetRoomChecklist(svc checklists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID, err := parseQueryUUID(r, "room_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		taskID, err := parseQueryUUID(r, "task_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetOrInit(r.Context(), roomID, taskID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CreateChecklist(svc checklists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createChecklistRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		checklist, err := svc.Create(r.Context(), checklists.CreateInput{
			RoomID:  req.RoomID,
			TaskID:  req.TaskID,
			ActorID: actorID,
			Lines:   toChecklistLines(req.Lines),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, checklist)
	}
}

// UpdateChecklist merges line changes and, when the status moves to
// completed, triggers the stock auto-deduction.
func UpdateChecklist(svc checklists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checklistID, err := parseIDParam(r, "checklistID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateChecklistRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checklists.UpdateInput{
			ActorID:   actorID,
			ActorRole: middleware.ActorRoleFromContext(r.Context()),
		}
		if req.Lines != nil {
			lines := toChecklistLines(*req.Lines)
			input.Lines = &lines
		}
		if req.Status != nil {
			status := enums.ChecklistStatus(*req.Status)
			input.Status = &status
		}

		checklist, err := svc.Update(r.Context(), checklistID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checklist)
	}
}

func toChecklistLines(lines []checklistLineRequest) types.ChecklistLines {
	out := make(types.ChecklistLines, 0, len(lines))
	for _, line := range lines {
		out = append(out, types.ChecklistLine{
			ItemID:   line.ItemID,
			Name:     validators.SanitizeString(line.Name, 200),
			Status:   enums.ChecklistItemStatus(line.Status),
			Quantity: line.Quantity,
		})
	}
	return out
}

func parseQueryUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, key+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key)
	}
	return id, nil
}
