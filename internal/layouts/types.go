package layouts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Layout is a table layout: a fixed number of columns holding cells in
// document order.
type Layout struct {
	bun.BaseModel `bun:"table:grid_layouts,alias:gl"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Code        string         `bun:"code,notnull,unique" json:"code"`
	Name        string         `bun:"name,notnull" json:"name"`
	Description *string        `bun:"description" json:"description,omitempty"`
	ColumnCount int            `bun:"column_count,notnull" json:"column_count"`
	CellSchema  map[string]any `bun:"cell_schema,type:jsonb" json:"cell_schema,omitempty"`
	CreatedBy   uuid.UUID      `bun:"created_by,type:uuid" json:"created_by"`
	UpdatedBy   uuid.UUID      `bun:"updated_by,type:uuid" json:"updated_by"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	// Cells is populated by GetLayout in document order.
	Cells []*Cell `bun:"rel:has-many,join:id=layout_id" json:"cells,omitempty"`
}

// Cell places a widget inside a layout. Row and Column are written by the
// recompute pass unless Pinned is set, in which case they are authoritative.
type Cell struct {
	bun.BaseModel `bun:"table:grid_layout_cells,alias:glc"`

	ID            uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	LayoutID      uuid.UUID      `bun:"layout_id,notnull,type:uuid" json:"layout_id"`
	WidgetType    string         `bun:"widget_type,notnull" json:"widget_type"`
	Position      int            `bun:"position,notnull,default:0" json:"position"`
	Row           int            `bun:"row_index,notnull,default:0" json:"row"`
	Column        int            `bun:"column_index,notnull,default:0" json:"column"`
	RowSpan       int            `bun:"row_span,notnull,default:1" json:"row_span"`
	ColSpan       int            `bun:"col_span,notnull,default:1" json:"col_span"`
	Pinned        bool           `bun:"pinned,notnull,default:false" json:"pinned"`
	Configuration map[string]any `bun:"configuration,type:jsonb" json:"configuration,omitempty"`
	CreatedAt     time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Layout *Layout `bun:"rel:belongs-to,join:layout_id=id" json:"layout,omitempty"`
}
