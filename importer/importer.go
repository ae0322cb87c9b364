package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Maharshi2203/Sattys-main/models"
	"go.uber.org/zap"
)

// DefaultRowTimeout bounds the store calls made for a single row.
const DefaultRowTimeout = 10 * time.Second

// ProductStore is the product persistence the importer needs.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
}

// Result summarises one import run.
type Result struct {
	Message           string   `json:"message"`
	Success           int      `json:"success"`
	Failed            int      `json:"failed"`
	Errors            []string `json:"errors"`
	CreatedCategories []string `json:"created_categories,omitempty"`
}

// Importer inserts decoded rows one at a time. A bad row is recorded and
// skipped; it never stops the batch.
type Importer struct {
	categories CategoryStore
	products   ProductStore
	mapper     *RowMapper
	rowTimeout time.Duration
	logger     *zap.Logger
}

// Option customises an Importer.
type Option func(*Importer)

// WithAliases replaces the header alias table.
func WithAliases(t AliasTable) Option {
	return func(im *Importer) { im.mapper = NewRowMapper(t) }
}

// WithRowTimeout sets the per-row store timeout. Zero disables it.
func WithRowTimeout(d time.Duration) Option {
	return func(im *Importer) { im.rowTimeout = d }
}

// New returns an Importer writing through the given stores.
func New(categories CategoryStore, products ProductStore, logger *zap.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	im := &Importer{
		categories: categories,
		products:   products,
		mapper:     NewRowMapper(nil),
		rowTimeout: DefaultRowTimeout,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run imports rows in order. A nil result with an error means the run could
// not start and nothing was written. If ctx ends mid-run the rows imported
// so far are returned together with a *BatchError wrapping ctx.Err().
func (im *Importer) Run(ctx context.Context, rows []Row) (*Result, error) {
	resolver, err := NewCategoryResolver(ctx, im.categories)
	if err != nil {
		return nil, &BatchError{Reason: "could not read categories", Err: err}
	}

	res := &Result{Errors: []string{}}
	for i, row := range rows {
		// Header is line 1 of the sheet.
		line := i + 2
		if ctx.Err() != nil {
			return im.interrupted(res, resolver, line, ctx.Err())
		}
		if err := im.importRow(ctx, resolver, row); err != nil {
			if ctx.Err() != nil {
				return im.interrupted(res, resolver, line, ctx.Err())
			}
			res.Failed++
			res.Errors = append(res.Errors, rowMessage(line, err))
			im.logger.Warn("Import row rejected", zap.Int("line", line), zap.Error(err))
			continue
		}
		res.Success++
	}

	res.CreatedCategories = resolver.Created()
	res.Message = fmt.Sprintf("Import completed: %d products added, %d failed", res.Success, res.Failed)
	im.logger.Info("Import finished",
		zap.Int("rows", len(rows)),
		zap.Int("success", res.Success),
		zap.Int("failed", res.Failed),
		zap.Int("categories_created", len(res.CreatedCategories)),
	)
	return res, nil
}

func (im *Importer) interrupted(res *Result, resolver *CategoryResolver, line int, cause error) (*Result, error) {
	res.CreatedCategories = resolver.Created()
	res.Message = fmt.Sprintf("Import interrupted at row %d: %d products added, %d failed", line, res.Success, res.Failed)
	im.logger.Warn("Import interrupted",
		zap.Int("line", line),
		zap.Int("success", res.Success),
		zap.Int("failed", res.Failed),
		zap.Error(cause),
	)
	return res, &BatchError{Reason: fmt.Sprintf("interrupted at row %d", line), Err: cause}
}

func (im *Importer) importRow(ctx context.Context, resolver *CategoryResolver, row Row) error {
	draft, err := im.mapper.Map(row)
	if err != nil {
		return err
	}

	rowCtx, cancel := im.rowContext(ctx)
	defer cancel()

	categoryID, err := resolver.Resolve(rowCtx, draft.CategoryName)
	if err != nil {
		return &RowError{Name: draft.Name, Err: fmt.Errorf("category %q: %w", draft.CategoryName, err)}
	}
	if err := im.products.Create(rowCtx, draft.Product(categoryID)); err != nil {
		return &RowError{Name: draft.Name, Err: err}
	}
	return nil
}

func (im *Importer) rowContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if im.rowTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, im.rowTimeout)
}

func rowMessage(line int, err error) string {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr.Error()
	}
	return fmt.Sprintf("Row %d: %v", line, err)
}
