package layouts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// LayoutRepository exposes persistence operations for layouts.
type LayoutRepository interface {
	Create(ctx context.Context, layout *Layout) (*Layout, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Layout, error)
	GetByCode(ctx context.Context, code string) (*Layout, error)
	List(ctx context.Context) ([]*Layout, error)
	Update(ctx context.Context, layout *Layout) (*Layout, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CellRepository exposes persistence operations for layout cells.
type CellRepository interface {
	Create(ctx context.Context, cell *Cell) (*Cell, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Cell, error)
	// ListByLayout returns cells ordered by Position.
	ListByLayout(ctx context.Context, layoutID uuid.UUID) ([]*Cell, error)
	Update(ctx context.Context, cell *Cell) (*Cell, error)
	// UpdatePlacements stores row, column and updated_at for every cell in a
	// single write; either all cells are updated or none is.
	UpdatePlacements(ctx context.Context, cells []*Cell) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByLayout(ctx context.Context, layoutID uuid.UUID) error
}

// NotFoundError is returned when a layout resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
