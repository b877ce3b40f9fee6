package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/goliatone/go-command/dispatcher"

	gridlayout "github.com/goliatone/go-gridlayout"
	layoutscmd "github.com/goliatone/go-gridlayout/internal/commands/layouts"
	"github.com/goliatone/go-gridlayout/internal/identity"
)

const (
	cellPitchX = 110
	cellPitchY = 60
	cellGap    = 10
)

func main() {
	storage := flag.String("storage", "memory", "storage provider: memory or sqlite")
	dsn := flag.String("dsn", "file:gridlayout_example?mode=memory&cache=shared", "sqlite dsn")
	logger := flag.String("logger", "console", "logging provider: console or gologger")
	flag.Parse()

	ctx := context.Background()

	cfg := gridlayout.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Features.Commands = true
	cfg.Logging.Provider = *logger
	cfg.Storage.Provider = *storage
	if strings.EqualFold(*storage, "sqlite") {
		cfg.Storage.DSN = *dsn
		cfg.Cache.Enabled = true
	}
	cfg.Layouts.Definitions = []gridlayout.LayoutDefinitionConfig{{
		Code:        "dashboard",
		Name:        "Dashboard",
		ColumnCount: 3,
		Cells: []gridlayout.CellDefinitionConfig{
			{Key: "header", WidgetType: "label", ColSpan: 3},
			{Key: "chart", WidgetType: "chart", RowSpan: 2, ColSpan: 2},
			{Key: "visits", WidgetType: "stat"},
			{Key: "sales", WidgetType: "stat"},
		},
	}}

	module, err := gridlayout.New(cfg)
	if err != nil {
		log.Fatalf("new module: %v", err)
	}
	defer func() {
		if err := module.Close(); err != nil {
			log.Printf("close module: %v", err)
		}
	}()

	layoutID := identity.LayoutUUID("dashboard")
	if err := dispatcher.Dispatch(ctx, layoutscmd.AddLayoutCellCommand{
		LayoutID:   layoutID,
		WidgetType: "footer",
		ColSpan:    3,
	}); err != nil {
		log.Fatalf("add footer: %v", err)
	}

	session := module.Session(layoutID)
	g, err := session.Refresh(ctx)
	if err != nil {
		log.Fatalf("refresh: %v", err)
	}

	fmt.Printf("grid: %d rows x %d columns\n", g.RowCount, g.ColumnCount)
	for _, cell := range session.Cells() {
		fmt.Printf("  %-8s row=%d col=%d span=%dx%d\n", cell.WidgetType, cell.Row, cell.Column, cell.RowSpan, cell.ColSpan)
	}

	origin := gridlayout.Point{X: 40, Y: 80}
	intervals := session.Measure(gridlayout.MeasureFuncs{
		Cell: func(p gridlayout.Placement) (gridlayout.Rect, bool) {
			return gridlayout.NewRect(
				origin.X+p.Column*cellPitchX,
				origin.Y+p.Row*cellPitchY,
				p.ColSpan*cellPitchX-cellGap,
				p.RowSpan*cellPitchY-cellGap,
			), true
		},
	}, origin)

	fmt.Println("columns:")
	printIntervals(intervals.Columns)
	fmt.Println("rows:")
	printIntervals(intervals.Rows)

	panel := gridlayout.NewRect(0, 0, 600, 400)
	for _, cursor := range []gridlayout.Point{
		{X: 60, Y: 100},
		{X: 145, Y: 170},
		{X: 400, Y: 100},
		{X: 100, Y: 500},
	} {
		target := session.Target(cursor, panel)
		fmt.Printf("cursor (%d,%d): column %s %d, row %s %d, feedback %+v\n",
			cursor.X, cursor.Y,
			target.Column.Kind, target.Column.Index,
			target.Row.Kind, target.Row.Index,
			target.Feedback)
	}
}

func printIntervals(intervals []*gridlayout.Interval) {
	for index, interval := range intervals {
		if interval == nil {
			fmt.Printf("  %d: unresolved\n", index)
			continue
		}
		fmt.Printf("  %d: [%d, %d)\n", index, interval.Begin, interval.End())
	}
}
