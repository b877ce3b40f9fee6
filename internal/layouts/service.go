package layouts

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-gridlayout/internal/grid"
	"github.com/goliatone/go-gridlayout/internal/identity"
	"github.com/goliatone/go-gridlayout/internal/logging"
	"github.com/goliatone/go-gridlayout/internal/validation"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

// Service manages table layouts and computes their logical grids.
type Service interface {
	CreateLayout(ctx context.Context, input CreateLayoutInput) (*Layout, error)
	GetLayout(ctx context.Context, id uuid.UUID) (*Layout, error)
	GetLayoutByCode(ctx context.Context, code string) (*Layout, error)
	ListLayouts(ctx context.Context) ([]*Layout, error)
	UpdateLayout(ctx context.Context, input UpdateLayoutInput) (*Layout, error)
	DeleteLayout(ctx context.Context, req DeleteLayoutRequest) error

	AddCell(ctx context.Context, input AddCellInput) (*Cell, error)
	UpdateCell(ctx context.Context, input UpdateCellInput) (*Cell, error)
	RemoveCell(ctx context.Context, cellID uuid.UUID) error
	ReorderCells(ctx context.Context, input ReorderCellsInput) ([]*Cell, error)

	RecomputeGrid(ctx context.Context, layoutID uuid.UUID) (*LayoutGrid, error)
	SyncDefinitions(ctx context.Context, definitions []Definition) error
}

// CreateLayoutInput describes a new layout.
type CreateLayoutInput struct {
	Code        string
	Name        string
	Description *string
	ColumnCount int
	CellSchema  map[string]any
	CreatedBy   uuid.UUID
}

// UpdateLayoutInput carries the mutable layout fields. Nil pointers leave
// the stored value alone.
type UpdateLayoutInput struct {
	LayoutID    uuid.UUID
	Name        *string
	Description *string
	ColumnCount *int
	CellSchema  map[string]any
	UpdatedBy   uuid.UUID
}

type DeleteLayoutRequest struct {
	LayoutID   uuid.UUID
	HardDelete bool
}

// AddCellInput describes a cell appended to a layout. A nil Position
// appends after the last cell.
type AddCellInput struct {
	LayoutID      uuid.UUID
	WidgetType    string
	Position      *int
	Row           int
	Column        int
	RowSpan       int
	ColSpan       int
	Pinned        bool
	Configuration map[string]any
}

// UpdateCellInput carries the mutable cell fields.
type UpdateCellInput struct {
	CellID        uuid.UUID
	WidgetType    *string
	Row           *int
	Column        *int
	RowSpan       *int
	ColSpan       *int
	Pinned        *bool
	Configuration map[string]any
}

// ReorderCellsInput lists every cell of a layout in its new document order.
type ReorderCellsInput struct {
	LayoutID uuid.UUID
	CellIDs  []uuid.UUID
}

// Definition seeds a layout from configuration. Cells are created once and
// left untouched on later syncs.
type Definition struct {
	Code        string
	Name        string
	Description *string
	ColumnCount int
	CellSchema  map[string]any
	Cells       []CellDefinition
}

// CellDefinition seeds one cell. Key must be unique within the layout.
type CellDefinition struct {
	Key           string
	WidgetType    string
	Row           int
	Column        int
	RowSpan       int
	ColSpan       int
	Pinned        bool
	Configuration map[string]any
}

var (
	ErrLayoutCodeRequired          = errors.New("layouts: code required")
	ErrLayoutCodeInvalid           = errors.New("layouts: code must be a valid slug")
	ErrLayoutCodeExists            = errors.New("layouts: code already exists")
	ErrLayoutNameRequired          = errors.New("layouts: name required")
	ErrLayoutIDRequired            = errors.New("layouts: layout id required")
	ErrLayoutColumnCountInvalid    = errors.New("layouts: column count out of range")
	ErrLayoutSoftDeleteUnsupported = errors.New("layouts: soft delete not supported")

	ErrCellIDRequired         = errors.New("layouts: cell id required")
	ErrCellWidgetTypeRequired = errors.New("layouts: widget type required")
	ErrCellSpanInvalid        = errors.New("layouts: span exceeds column count")
	ErrCellPositionInvalid    = errors.New("layouts: position cannot be negative")
	ErrCellPinnedInvalid      = errors.New("layouts: pinned cell needs a non-negative row and column")
	ErrCellOrderMismatch      = errors.New("layouts: reorder input must include every cell exactly once")
)

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures the layout service.
type ServiceOption func(*service)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxColumnCount caps the column count accepted for a layout.
func WithMaxColumnCount(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.maxColumns = limit
		}
	}
}

// WithDefaultColumnCount is used when CreateLayoutInput.ColumnCount is zero.
func WithDefaultColumnCount(count int) ServiceOption {
	return func(s *service) {
		if count > 0 {
			s.defaultColumns = count
		}
	}
}

type service struct {
	layouts        LayoutRepository
	cells          CellRepository
	now            func() time.Time
	id             IDGenerator
	logger         interfaces.Logger
	maxColumns     int
	defaultColumns int
}

// NewService constructs a layout service.
func NewService(layoutRepo LayoutRepository, cellRepo CellRepository, opts ...ServiceOption) Service {
	s := &service{
		layouts:        layoutRepo,
		cells:          cellRepo,
		now:            time.Now,
		id:             uuid.New,
		logger:         logging.NoOp(),
		maxColumns:     24,
		defaultColumns: 2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateLayout(ctx context.Context, input CreateLayoutInput) (*Layout, error) {
	return s.createLayout(ctx, input, uuid.Nil)
}

func (s *service) createLayout(ctx context.Context, input CreateLayoutInput, id uuid.UUID) (*Layout, error) {
	code, err := normalizeCode(input.Code)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrLayoutNameRequired
	}
	columns := input.ColumnCount
	if columns == 0 {
		columns = s.defaultColumns
	}
	if err := s.checkColumnCount(columns); err != nil {
		return nil, err
	}
	if err := validation.ValidateCellSchema(input.CellSchema); err != nil {
		return nil, err
	}

	if existing, err := s.layouts.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, ErrLayoutCodeExists
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now()
	layout := &Layout{
		ID:          id,
		Code:        code,
		Name:        name,
		Description: cloneString(input.Description),
		ColumnCount: columns,
		CellSchema:  maps.Clone(input.CellSchema),
		CreatedBy:   input.CreatedBy,
		UpdatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.layouts.Create(ctx, layout)
	if err != nil {
		return nil, err
	}
	logging.WithLayoutContext(s.logger, created.ID.String(), created.Code).
		Info("layouts.layout.created", "column_count", created.ColumnCount)
	return created, nil
}

func (s *service) GetLayout(ctx context.Context, id uuid.UUID) (*Layout, error) {
	if id == uuid.Nil {
		return nil, ErrLayoutIDRequired
	}
	layout, err := s.layouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cells, err := s.cells.ListByLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	layout.Cells = cells
	return layout, nil
}

func (s *service) GetLayoutByCode(ctx context.Context, code string) (*Layout, error) {
	normalized, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	layout, err := s.layouts.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return s.GetLayout(ctx, layout.ID)
}

func (s *service) ListLayouts(ctx context.Context) ([]*Layout, error) {
	return s.layouts.List(ctx)
}

func (s *service) UpdateLayout(ctx context.Context, input UpdateLayoutInput) (*Layout, error) {
	if input.LayoutID == uuid.Nil {
		return nil, ErrLayoutIDRequired
	}
	layout, err := s.layouts.GetByID(ctx, input.LayoutID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrLayoutNameRequired
		}
		layout.Name = name
	}
	if input.Description != nil {
		layout.Description = cloneString(input.Description)
	}
	if input.ColumnCount != nil {
		if err := s.checkColumnCount(*input.ColumnCount); err != nil {
			return nil, err
		}
		cells, err := s.cells.ListByLayout(ctx, layout.ID)
		if err != nil {
			return nil, err
		}
		for _, cell := range cells {
			if cell.ColSpan > *input.ColumnCount || (cell.Pinned && cell.Column+cell.ColSpan > *input.ColumnCount) {
				return nil, fmt.Errorf("%w: cell %s", ErrCellSpanInvalid, cell.ID)
			}
		}
		layout.ColumnCount = *input.ColumnCount
	}
	if input.CellSchema != nil {
		if err := validation.ValidateCellSchema(input.CellSchema); err != nil {
			return nil, err
		}
		layout.CellSchema = maps.Clone(input.CellSchema)
	}
	layout.UpdatedBy = input.UpdatedBy
	layout.UpdatedAt = s.now()

	return s.layouts.Update(ctx, layout)
}

func (s *service) DeleteLayout(ctx context.Context, req DeleteLayoutRequest) error {
	if req.LayoutID == uuid.Nil {
		return ErrLayoutIDRequired
	}
	if !req.HardDelete {
		return ErrLayoutSoftDeleteUnsupported
	}
	if _, err := s.layouts.GetByID(ctx, req.LayoutID); err != nil {
		return err
	}
	if err := s.cells.DeleteByLayout(ctx, req.LayoutID); err != nil {
		return err
	}
	if err := s.layouts.Delete(ctx, req.LayoutID); err != nil {
		return err
	}
	logging.WithLayoutContext(s.logger, req.LayoutID.String(), "").Info("layouts.layout.deleted")
	return nil
}

func (s *service) AddCell(ctx context.Context, input AddCellInput) (*Cell, error) {
	return s.addCell(ctx, input, uuid.Nil)
}

func (s *service) addCell(ctx context.Context, input AddCellInput, id uuid.UUID) (*Cell, error) {
	if input.LayoutID == uuid.Nil {
		return nil, ErrLayoutIDRequired
	}
	widgetType := strings.TrimSpace(input.WidgetType)
	if widgetType == "" {
		return nil, ErrCellWidgetTypeRequired
	}
	layout, err := s.layouts.GetByID(ctx, input.LayoutID)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now()
	cell := &Cell{
		ID:            id,
		LayoutID:      layout.ID,
		WidgetType:    widgetType,
		Row:           input.Row,
		Column:        input.Column,
		RowSpan:       normalizeSpan(input.RowSpan),
		ColSpan:       normalizeSpan(input.ColSpan),
		Pinned:        input.Pinned,
		Configuration: maps.Clone(input.Configuration),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := checkCell(layout, cell); err != nil {
		return nil, err
	}

	existing, err := s.cells.ListByLayout(ctx, layout.ID)
	if err != nil {
		return nil, err
	}
	cell.Position = len(existing)
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrCellPositionInvalid
		}
		if *input.Position < len(existing) {
			cell.Position = *input.Position
			for _, sibling := range existing[cell.Position:] {
				sibling.Position++
				sibling.UpdatedAt = now
				if _, err := s.cells.Update(ctx, sibling); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.cells.Create(ctx, cell)
}

func (s *service) UpdateCell(ctx context.Context, input UpdateCellInput) (*Cell, error) {
	if input.CellID == uuid.Nil {
		return nil, ErrCellIDRequired
	}
	cell, err := s.cells.GetByID(ctx, input.CellID)
	if err != nil {
		return nil, err
	}
	layout, err := s.layouts.GetByID(ctx, cell.LayoutID)
	if err != nil {
		return nil, err
	}

	if input.WidgetType != nil {
		widgetType := strings.TrimSpace(*input.WidgetType)
		if widgetType == "" {
			return nil, ErrCellWidgetTypeRequired
		}
		cell.WidgetType = widgetType
	}
	if input.Row != nil {
		cell.Row = *input.Row
	}
	if input.Column != nil {
		cell.Column = *input.Column
	}
	if input.RowSpan != nil {
		cell.RowSpan = normalizeSpan(*input.RowSpan)
	}
	if input.ColSpan != nil {
		cell.ColSpan = normalizeSpan(*input.ColSpan)
	}
	if input.Pinned != nil {
		cell.Pinned = *input.Pinned
	}
	if input.Configuration != nil {
		cell.Configuration = maps.Clone(input.Configuration)
	}
	if err := checkCell(layout, cell); err != nil {
		return nil, err
	}
	cell.UpdatedAt = s.now()
	return s.cells.Update(ctx, cell)
}

func (s *service) RemoveCell(ctx context.Context, cellID uuid.UUID) error {
	if cellID == uuid.Nil {
		return ErrCellIDRequired
	}
	cell, err := s.cells.GetByID(ctx, cellID)
	if err != nil {
		return err
	}
	if err := s.cells.Delete(ctx, cellID); err != nil {
		return err
	}

	remaining, err := s.cells.ListByLayout(ctx, cell.LayoutID)
	if err != nil {
		return err
	}
	return s.renumber(ctx, remaining)
}

func (s *service) ReorderCells(ctx context.Context, input ReorderCellsInput) ([]*Cell, error) {
	if input.LayoutID == uuid.Nil {
		return nil, ErrLayoutIDRequired
	}
	cells, err := s.cells.ListByLayout(ctx, input.LayoutID)
	if err != nil {
		return nil, err
	}
	if len(cells) != len(input.CellIDs) {
		return nil, ErrCellOrderMismatch
	}
	byID := make(map[uuid.UUID]*Cell, len(cells))
	for _, cell := range cells {
		byID[cell.ID] = cell
	}
	ordered := make([]*Cell, 0, len(cells))
	for _, id := range input.CellIDs {
		cell, ok := byID[id]
		if !ok {
			return nil, ErrCellOrderMismatch
		}
		delete(byID, id)
		ordered = append(ordered, cell)
	}
	if err := s.renumber(ctx, ordered); err != nil {
		return nil, err
	}
	return ordered, nil
}

// renumber writes contiguous positions for cells in slice order.
func (s *service) renumber(ctx context.Context, cells []*Cell) error {
	now := s.now()
	for idx, cell := range cells {
		if cell.Position == idx {
			continue
		}
		cell.Position = idx
		cell.UpdatedAt = now
		if _, err := s.cells.Update(ctx, cell); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) RecomputeGrid(ctx context.Context, layoutID uuid.UUID) (*LayoutGrid, error) {
	layout, err := s.GetLayout(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	logger := logging.WithLayoutContext(s.logger, layout.ID.String(), layout.Code).WithContext(ctx)

	type origin struct{ row, column int }
	before := make(map[uuid.UUID]origin, len(layout.Cells))
	for _, cell := range layout.Cells {
		before[cell.ID] = origin{cell.Row, cell.Column}
	}

	logical, err := grid.Place(Placeables(layout.Cells), layout.ColumnCount)
	if err != nil {
		logger.Error("layouts.grid.recompute_failed", "error", err)
		return nil, err
	}

	now := s.now()
	var moved []*Cell
	for _, cell := range layout.Cells {
		prev := before[cell.ID]
		if prev.row == cell.Row && prev.column == cell.Column {
			continue
		}
		cell.UpdatedAt = now
		moved = append(moved, cell)
	}
	if err := s.cells.UpdatePlacements(ctx, moved); err != nil {
		logger.Error("layouts.grid.persist_failed", "error", err, "moved", len(moved))
		return nil, err
	}

	logger.Info("layouts.grid.recomputed",
		"rows", logical.RowCount,
		"columns", logical.ColumnCount,
		"cells", len(layout.Cells),
		"moved", len(moved),
	)
	return &LayoutGrid{Layout: layout, Cells: layout.Cells, Grid: logical}, nil
}

func (s *service) SyncDefinitions(ctx context.Context, definitions []Definition) error {
	for _, def := range definitions {
		code, err := normalizeCode(def.Code)
		if err != nil {
			return err
		}
		layoutID := identity.LayoutUUID(code)

		layout, err := s.layouts.GetByID(ctx, layoutID)
		switch {
		case err == nil:
			name := strings.TrimSpace(def.Name)
			columns := def.ColumnCount
			update := UpdateLayoutInput{LayoutID: layout.ID, Description: def.Description, CellSchema: def.CellSchema}
			if name != "" && name != layout.Name {
				update.Name = &name
			}
			if columns > 0 && columns != layout.ColumnCount {
				update.ColumnCount = &columns
			}
			if _, err := s.UpdateLayout(ctx, update); err != nil {
				return fmt.Errorf("sync layout %s: %w", code, err)
			}
		case isNotFound(err):
			layout, err = s.createLayout(ctx, CreateLayoutInput{
				Code:        code,
				Name:        def.Name,
				Description: def.Description,
				ColumnCount: def.ColumnCount,
				CellSchema:  def.CellSchema,
			}, layoutID)
			if err != nil {
				return fmt.Errorf("sync layout %s: %w", code, err)
			}
		default:
			return err
		}

		added := 0
		for _, cellDef := range def.Cells {
			cellID := identity.CellUUID(layout.ID, cellDef.Key)
			if _, err := s.cells.GetByID(ctx, cellID); err == nil {
				continue
			} else if !isNotFound(err) {
				return err
			}
			if _, err := s.addCell(ctx, AddCellInput{
				LayoutID:      layout.ID,
				WidgetType:    cellDef.WidgetType,
				Row:           cellDef.Row,
				Column:        cellDef.Column,
				RowSpan:       cellDef.RowSpan,
				ColSpan:       cellDef.ColSpan,
				Pinned:        cellDef.Pinned,
				Configuration: cellDef.Configuration,
			}, cellID); err != nil {
				return fmt.Errorf("sync layout %s cell %s: %w", code, cellDef.Key, err)
			}
			added++
		}
		if added > 0 {
			if _, err := s.RecomputeGrid(ctx, layout.ID); err != nil {
				return fmt.Errorf("sync layout %s: %w", code, err)
			}
		}
	}
	return nil
}

func (s *service) checkColumnCount(columns int) error {
	if columns < 1 || columns > s.maxColumns {
		return goerrors.Wrap(ErrLayoutColumnCountInvalid, goerrors.CategoryValidation,
			fmt.Sprintf("column count must be between 1 and %d", s.maxColumns)).
			WithTextCode("LAYOUT_COLUMN_COUNT_INVALID")
	}
	return nil
}

func checkCell(layout *Layout, cell *Cell) error {
	if cell.ColSpan > layout.ColumnCount {
		return goerrors.Wrap(ErrCellSpanInvalid, goerrors.CategoryValidation,
			fmt.Sprintf("col span %d exceeds %d columns", cell.ColSpan, layout.ColumnCount)).
			WithTextCode("LAYOUT_CELL_SPAN_INVALID")
	}
	if cell.Pinned {
		if cell.Row < 0 || cell.Column < 0 || cell.Column+cell.ColSpan > layout.ColumnCount {
			return ErrCellPinnedInvalid
		}
	}
	return validation.ValidateConfiguration(layout.CellSchema, cell.Configuration)
}

func normalizeCode(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", ErrLayoutCodeRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || !slug.IsValid(normalized) {
		return "", ErrLayoutCodeInvalid
	}
	return normalized, nil
}

func normalizeSpan(span int) int {
	if span < 1 {
		return 1
	}
	return span
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
