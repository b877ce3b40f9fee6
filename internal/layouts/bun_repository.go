package layouts

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	layoutNamespace = "grid_layout"
	cellNamespace   = "grid_layout_cell"
)

// BunLayoutRepository implements LayoutRepository with optional caching.
type BunLayoutRepository struct {
	repo         repository.Repository[*Layout]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunLayoutRepository creates a layout repository without caching.
func NewBunLayoutRepository(db *bun.DB) *BunLayoutRepository {
	return NewBunLayoutRepositoryWithCache(db, nil, nil)
}

// NewBunLayoutRepositoryWithCache creates a layout repository with caching services.
func NewBunLayoutRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunLayoutRepository {
	base := NewLayoutRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(layoutNamespace)
	}
	return &BunLayoutRepository{repo: base, cacheService: svc, cachePrefix: prefix}
}

func (r *BunLayoutRepository) Create(ctx context.Context, layout *Layout) (*Layout, error) {
	record, err := r.repo.Create(ctx, layout)
	if err != nil {
		return nil, err
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunLayoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*Layout, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "layout", id.String())
	}
	return record, nil
}

func (r *BunLayoutRepository) GetByCode(ctx context.Context, code string) (*Layout, error) {
	record, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "layout", code)
	}
	return record, nil
}

func (r *BunLayoutRepository) List(ctx context.Context) ([]*Layout, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.code ASC")
	}))
	return records, err
}

func (r *BunLayoutRepository) Update(ctx context.Context, layout *Layout) (*Layout, error) {
	record, err := r.repo.Update(ctx, layout,
		repository.UpdateByID(layout.ID.String()),
		repository.UpdateColumns("name", "description", "column_count", "cell_schema", "updated_by", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "layout", layout.ID.String())
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunLayoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Layout{ID: id}); err != nil {
		return mapRepositoryError(err, "layout", id.String())
	}
	return r.InvalidateCache(ctx)
}

func (r *BunLayoutRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

// BunCellRepository implements CellRepository with optional caching.
type BunCellRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Cell]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunCellRepository creates a cell repository without caching.
func NewBunCellRepository(db *bun.DB) *BunCellRepository {
	return NewBunCellRepositoryWithCache(db, nil, nil)
}

// NewBunCellRepositoryWithCache creates a cell repository with caching services.
func NewBunCellRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunCellRepository {
	base := NewCellRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(cellNamespace)
	}
	return &BunCellRepository{db: db, repo: base, cacheService: svc, cachePrefix: prefix}
}

func (r *BunCellRepository) Create(ctx context.Context, cell *Cell) (*Cell, error) {
	record, err := r.repo.Create(ctx, cell)
	if err != nil {
		return nil, err
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunCellRepository) GetByID(ctx context.Context, id uuid.UUID) (*Cell, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "layout_cell", id.String())
	}
	return record, nil
}

func (r *BunCellRepository) ListByLayout(ctx context.Context, layoutID uuid.UUID) ([]*Cell, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.layout_id = ?", layoutID).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunCellRepository) Update(ctx context.Context, cell *Cell) (*Cell, error) {
	record, err := r.repo.Update(ctx, cell,
		repository.UpdateByID(cell.ID.String()),
		repository.UpdateColumns("widget_type", "position", "row_index", "column_index", "row_span", "col_span", "pinned", "configuration", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "layout_cell", cell.ID.String())
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunCellRepository) UpdatePlacements(ctx context.Context, cells []*Cell) error {
	if len(cells) == 0 {
		return nil
	}
	if r.db == nil {
		return fmt.Errorf("layout cell repository: database not configured")
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, cell := range cells {
			res, err := tx.NewUpdate().
				Model(cell).
				Column("row_index", "column_index", "updated_at").
				WherePK().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update cell placement %s: %w", cell.ID, err)
			}
			if affected, err := res.RowsAffected(); err == nil && affected == 0 {
				return &NotFoundError{Resource: "layout_cell", Key: cell.ID.String()}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.InvalidateCache(ctx)
}

func (r *BunCellRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Cell{ID: id}); err != nil {
		return mapRepositoryError(err, "layout_cell", id.String())
	}
	return r.InvalidateCache(ctx)
}

func (r *BunCellRepository) DeleteByLayout(ctx context.Context, layoutID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("layout cell repository: database not configured")
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Cell)(nil)).
			Where("?TableAlias.layout_id = ?", layoutID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete layout cells: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.InvalidateCache(ctx)
}

func (r *BunCellRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
