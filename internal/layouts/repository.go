package layouts

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewLayoutRepository creates a repository for layouts.
func NewLayoutRepository(db *bun.DB) repository.Repository[*Layout] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Layout]{
		NewRecord:          func() *Layout { return &Layout{} },
		GetID:              func(layout *Layout) uuid.UUID { return layout.ID },
		SetID:              func(layout *Layout, id uuid.UUID) { layout.ID = id },
		GetIdentifier:      func() string { return "code" },
		GetIdentifierValue: func(layout *Layout) string { return layout.Code },
	})
}

// NewCellRepository creates a repository for layout cells.
func NewCellRepository(db *bun.DB) repository.Repository[*Cell] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Cell]{
		NewRecord:          func() *Cell { return &Cell{} },
		GetID:              func(cell *Cell) uuid.UUID { return cell.ID },
		SetID:              func(cell *Cell, id uuid.UUID) { cell.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(cell *Cell) string { return cell.ID.String() },
	})
}
