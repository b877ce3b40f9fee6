package layouts

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryLayoutRepository constructs an in-memory layout repository.
func NewMemoryLayoutRepository() LayoutRepository {
	return &memoryLayoutRepository{
		byID:   make(map[uuid.UUID]*Layout),
		byCode: make(map[string]uuid.UUID),
	}
}

type memoryLayoutRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Layout
	byCode map[string]uuid.UUID
}

func (m *memoryLayoutRepository) Create(_ context.Context, layout *Layout) (*Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneLayout(layout)
	m.byID[cloned.ID] = cloned
	m.byCode[cloned.Code] = cloned.ID
	return cloneLayout(cloned), nil
}

func (m *memoryLayoutRepository) GetByID(_ context.Context, id uuid.UUID) (*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "layout", Key: id.String()}
	}
	return cloneLayout(record), nil
}

func (m *memoryLayoutRepository) GetByCode(_ context.Context, code string) (*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, &NotFoundError{Resource: "layout", Key: code}
	}
	return cloneLayout(m.byID[id]), nil
}

func (m *memoryLayoutRepository) List(_ context.Context) ([]*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Layout, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneLayout(record))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })
	return records, nil
}

func (m *memoryLayoutRepository) Update(_ context.Context, layout *Layout) (*Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[layout.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "layout", Key: layout.ID.String()}
	}
	cloned := cloneLayout(layout)
	cloned.Code = existing.Code
	cloned.CreatedAt = existing.CreatedAt
	cloned.CreatedBy = existing.CreatedBy
	m.byID[cloned.ID] = cloned
	return cloneLayout(cloned), nil
}

func (m *memoryLayoutRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "layout", Key: id.String()}
	}
	delete(m.byCode, record.Code)
	delete(m.byID, id)
	return nil
}

// NewMemoryCellRepository constructs an in-memory cell repository.
func NewMemoryCellRepository() CellRepository {
	return &memoryCellRepository{
		byID: make(map[uuid.UUID]*Cell),
	}
}

type memoryCellRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Cell
}

func (m *memoryCellRepository) Create(_ context.Context, cell *Cell) (*Cell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneCell(cell)
	m.byID[cloned.ID] = cloned
	return cloneCell(cloned), nil
}

func (m *memoryCellRepository) GetByID(_ context.Context, id uuid.UUID) (*Cell, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "layout_cell", Key: id.String()}
	}
	return cloneCell(record), nil
}

func (m *memoryCellRepository) ListByLayout(_ context.Context, layoutID uuid.UUID) ([]*Cell, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Cell, 0)
	for _, record := range m.byID {
		if record.LayoutID == layoutID {
			records = append(records, cloneCell(record))
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Position == records[j].Position {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].Position < records[j].Position
	})
	return records, nil
}

func (m *memoryCellRepository) Update(_ context.Context, cell *Cell) (*Cell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[cell.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "layout_cell", Key: cell.ID.String()}
	}
	cloned := cloneCell(cell)
	cloned.LayoutID = existing.LayoutID
	cloned.CreatedAt = existing.CreatedAt
	m.byID[cloned.ID] = cloned
	return cloneCell(cloned), nil
}

func (m *memoryCellRepository) UpdatePlacements(_ context.Context, cells []*Cell) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cell := range cells {
		if _, ok := m.byID[cell.ID]; !ok {
			return &NotFoundError{Resource: "layout_cell", Key: cell.ID.String()}
		}
	}
	for _, cell := range cells {
		existing := m.byID[cell.ID]
		existing.Row = cell.Row
		existing.Column = cell.Column
		existing.UpdatedAt = cell.UpdatedAt
	}
	return nil
}

func (m *memoryCellRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "layout_cell", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryCellRepository) DeleteByLayout(_ context.Context, layoutID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.byID {
		if record.LayoutID == layoutID {
			delete(m.byID, id)
		}
	}
	return nil
}

func cloneLayout(src *Layout) *Layout {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Description != nil {
		description := *src.Description
		cloned.Description = &description
	}
	if src.CellSchema != nil {
		cloned.CellSchema = maps.Clone(src.CellSchema)
	}
	cloned.Cells = nil
	return &cloned
}

func cloneCell(src *Cell) *Cell {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Configuration != nil {
		cloned.Configuration = maps.Clone(src.Configuration)
	}
	cloned.Layout = nil
	return &cloned
}
