package layoutscmd

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-gridlayout/internal/grid"
	"github.com/goliatone/go-gridlayout/internal/layouts"
)

type fixture struct {
	service layouts.Service
	cells   layouts.CellRepository
	layout  *layouts.Layout
}

func newFixture(t *testing.T, columns int) fixture {
	t.Helper()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cellRepo := layouts.NewMemoryCellRepository()
	svc := layouts.NewService(layouts.NewMemoryLayoutRepository(), cellRepo, layouts.WithClock(func() time.Time { return now }))
	layout, err := svc.CreateLayout(context.Background(), layouts.CreateLayoutInput{
		Code:        "dashboard",
		Name:        "Dashboard",
		ColumnCount: columns,
	})
	if err != nil {
		t.Fatalf("create layout: %v", err)
	}
	return fixture{service: svc, cells: cellRepo, layout: layout}
}

func TestRecomputeLayoutCommandValidate(t *testing.T) {
	err := RecomputeLayoutCommand{}.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing layout id")
	}
	if err := (RecomputeLayoutCommand{LayoutID: uuid.New()}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
}

func TestAddLayoutCellCommandValidate(t *testing.T) {
	negative := -1
	cmd := AddLayoutCellCommand{RowSpan: -1, Pinned: true, Row: -1, Position: &negative}
	err := cmd.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		t.Fatalf("expected validation.Errors, got %T", err)
	}
	for _, field := range []string{"layout_id", "widget_type", "row_span", "pinned", "position"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s to be reported, got %v", field, err)
		}
	}
}

func TestRemoveLayoutCellCommandValidate(t *testing.T) {
	if err := (RemoveLayoutCellCommand{}).Validate(); err == nil {
		t.Fatal("expected validation error for missing cell id")
	}
}

func TestAddLayoutCellHandlerPlacesCell(t *testing.T) {
	fx := newFixture(t, 2)
	handler := NewAddLayoutCellHandler(fx.service, nil, FeatureGates{})
	ctx := context.Background()

	for _, widget := range []string{"header", "stat", "stat"} {
		span := 1
		if widget == "header" {
			span = 2
		}
		if err := handler.Execute(ctx, AddLayoutCellCommand{LayoutID: fx.layout.ID, WidgetType: widget, ColSpan: span}); err != nil {
			t.Fatalf("add %s: %v", widget, err)
		}
	}

	cells, err := fx.cells.ListByLayout(ctx, fx.layout.ID)
	if err != nil {
		t.Fatalf("list cells: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	want := [][2]int{{0, 0}, {1, 0}, {1, 1}}
	for i, cell := range cells {
		if cell.Row != want[i][0] || cell.Column != want[i][1] {
			t.Fatalf("cell %d: expected (%d,%d), got (%d,%d)", i, want[i][0], want[i][1], cell.Row, cell.Column)
		}
	}
}

func TestAddLayoutCellHandlerRollsBackUnplaceableCell(t *testing.T) {
	fx := newFixture(t, 2)
	handler := NewAddLayoutCellHandler(fx.service, nil, FeatureGates{})
	ctx := context.Background()

	if err := handler.Execute(ctx, AddLayoutCellCommand{LayoutID: fx.layout.ID, WidgetType: "pinned", Pinned: true}); err != nil {
		t.Fatalf("add pinned: %v", err)
	}
	err := handler.Execute(ctx, AddLayoutCellCommand{LayoutID: fx.layout.ID, WidgetType: "clash", Pinned: true})
	if !errors.Is(err, grid.ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}

	cells, err := fx.cells.ListByLayout(ctx, fx.layout.ID)
	if err != nil {
		t.Fatalf("list cells: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("expected rollback to leave 1 cell, got %d", len(cells))
	}
}

func TestRemoveLayoutCellHandlerRecomputes(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()
	add := NewAddLayoutCellHandler(fx.service, nil, FeatureGates{})
	for _, widget := range []string{"a", "b", "c"} {
		if err := add.Execute(ctx, AddLayoutCellCommand{LayoutID: fx.layout.ID, WidgetType: widget}); err != nil {
			t.Fatalf("add %s: %v", widget, err)
		}
	}
	cells, _ := fx.cells.ListByLayout(ctx, fx.layout.ID)

	remove := NewRemoveLayoutCellHandler(fx.service, fx.cells, nil, FeatureGates{})
	if err := remove.Execute(ctx, RemoveLayoutCellCommand{CellID: cells[0].ID}); err != nil {
		t.Fatalf("remove: %v", err)
	}

	remaining, err := fx.cells.ListByLayout(ctx, fx.layout.ID)
	if err != nil {
		t.Fatalf("list cells: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(remaining))
	}
	if remaining[0].WidgetType != "b" || remaining[0].Row != 0 || remaining[0].Column != 0 {
		t.Fatalf("expected b to move to (0,0), got %s at (%d,%d)", remaining[0].WidgetType, remaining[0].Row, remaining[0].Column)
	}
	if remaining[1].Row != 0 || remaining[1].Column != 1 {
		t.Fatalf("expected c at (0,1), got (%d,%d)", remaining[1].Row, remaining[1].Column)
	}
}

func TestHandlersRespectFeatureGate(t *testing.T) {
	fx := newFixture(t, 2)
	gates := FeatureGates{CommandsEnabled: func() bool { return false }}
	handler := NewRecomputeLayoutHandler(fx.service, nil, gates)

	err := handler.Execute(context.Background(), RecomputeLayoutCommand{LayoutID: fx.layout.ID})
	if !errors.Is(err, ErrLayoutsCommandsDisabled) {
		t.Fatalf("expected ErrLayoutsCommandsDisabled, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRecomputeLayoutHandlerUnknownLayout(t *testing.T) {
	fx := newFixture(t, 2)
	handler := NewRecomputeLayoutHandler(fx.service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), RecomputeLayoutCommand{LayoutID: uuid.New()})
	var notFound *layouts.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRecomputeAllLayoutsHandlerCronMetadata(t *testing.T) {
	fx := newFixture(t, 2)
	handler := NewRecomputeAllLayoutsHandler(fx.service, nil, FeatureGates{}, RecomputeAllWithCronExpression(" @daily "))

	if got := handler.CronOptions().Expression; got != "@daily" {
		t.Fatalf("expected cron override, got %q", got)
	}

	ctx := context.Background()
	for _, widget := range []string{"a", "b", "c"} {
		if _, err := fx.service.AddCell(ctx, layouts.AddCellInput{LayoutID: fx.layout.ID, WidgetType: widget}); err != nil {
			t.Fatalf("add %s: %v", widget, err)
		}
	}
	if err := handler.CronHandler()(); err != nil {
		t.Fatalf("cron run: %v", err)
	}

	cells, err := fx.cells.ListByLayout(ctx, fx.layout.ID)
	if err != nil {
		t.Fatalf("list cells: %v", err)
	}
	if last := cells[2]; last.Row != 1 || last.Column != 0 {
		t.Fatalf("expected third cell at (1,0), got (%d,%d)", last.Row, last.Column)
	}
}

func TestRecomputeAllLayoutsHandlerDefaultsToHourly(t *testing.T) {
	fx := newFixture(t, 2)
	handler := NewRecomputeAllLayoutsHandler(fx.service, nil, FeatureGates{})
	if got := handler.CronOptions().Expression; got != DefaultRecomputeAllCron {
		t.Fatalf("expected %q, got %q", DefaultRecomputeAllCron, got)
	}
}
