package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/pagination"
)

// DirectoryResolver translates actor and room ids into display names. The
// staff directory and room registry live outside this service; the default
// resolver echoes the raw ids.
type DirectoryResolver interface {
	ResolveActor(ctx context.Context, actorID uuid.UUID) string
	ResolveRoom(ctx context.Context, roomID uuid.UUID) string
}

// IdentityResolver is the fallback DirectoryResolver.
type IdentityResolver struct{}

func (IdentityResolver) ResolveActor(_ context.Context, actorID uuid.UUID) string {
	return actorID.String()
}

func (IdentityResolver) ResolveRoom(_ context.Context, roomID uuid.UUID) string {
	return roomID.String()
}

// Service exposes ledger read operations.
type Service interface {
	List(ctx context.Context, input ListInput) (*HistoryPage, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*TransactionDTO, error)
}

// ListInput holds the ledger list parameters.
type ListInput struct {
	ItemID *uuid.UUID
	Page   pagination.Params
}

// TransactionDTO is one ledger entry with identities resolved for display.
type TransactionDTO struct {
	ID            uuid.UUID             `json:"id"`
	ItemID        uuid.UUID             `json:"item_id"`
	ItemName      string                `json:"item_name"`
	Type          enums.TransactionType `json:"type"`
	Quantity      int                   `json:"quantity"`
	PreviousStock int                   `json:"previous_stock"`
	NewStock      int                   `json:"new_stock"`
	ActorID       uuid.UUID             `json:"actor_id"`
	ActorName     string                `json:"actor_name"`
	RoomID        *uuid.UUID            `json:"room_id,omitempty"`
	RoomName      string                `json:"room_name,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	IsAutomatic   bool                  `json:"is_automatic"`
	CreatedAt     time.Time             `json:"created_at"`
}

// HistoryPage is one page of ledger history.
type HistoryPage struct {
	Transactions []*TransactionDTO `json:"transactions"`
	NextCursor   string            `json:"next_cursor,omitempty"`
}

type service struct {
	repo     Repository
	resolver DirectoryResolver
}

// NewService wires a ledger service with the provided repository and resolver.
func NewService(repo Repository, resolver DirectoryResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if resolver == nil {
		resolver = IdentityResolver{}
	}
	return &service{repo: repo, resolver: resolver}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*HistoryPage, error) {
	cursor, err := pagination.ParseCursor(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Page.Limit)
	entries, err := s.repo.List(ctx, ListFilter{ItemID: input.ItemID}, pagination.LimitWithBuffer(input.Page.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions")
	}

	page := &HistoryPage{}
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	page.Transactions = s.toDTOs(ctx, entries)
	return page, nil
}

func (s *service) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*TransactionDTO, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	entries, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list item transactions")
	}
	return s.toDTOs(ctx, entries), nil
}

func (s *service) toDTOs(ctx context.Context, entries []models.StockTransaction) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(entries))
	for i := range entries {
		out = append(out, s.toDTO(ctx, &entries[i]))
	}
	return out
}

func (s *service) toDTO(ctx context.Context, entry *models.StockTransaction) *TransactionDTO {
	dto := &TransactionDTO{
		ID:            entry.ID,
		ItemID:        entry.ItemID,
		ItemName:      entry.ItemName,
		Type:          entry.Type,
		Quantity:      entry.Quantity,
		PreviousStock: entry.PreviousStock,
		NewStock:      entry.NewStock,
		ActorID:       entry.ActorID,
		ActorName:     s.resolver.ResolveActor(ctx, entry.ActorID),
		RoomID:        entry.RoomID,
		Notes:         entry.Notes,
		IsAutomatic:   entry.IsAutomatic,
		CreatedAt:     entry.CreatedAt,
	}
	if entry.RoomID != nil {
		dto.RoomName = s.resolver.ResolveRoom(ctx, *entry.RoomID)
	}
	return dto
}
