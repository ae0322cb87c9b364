package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Maharshi2203/Sattys-main/importer"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"go.uber.org/zap"
)

// ImportService runs bulk product imports and reports their side effects.
type ImportService interface {
	Import(ctx context.Context, filename string, data []byte) (*importer.Result, *ServiceError)
}

type importServiceImpl struct {
	categories importer.CategoryStore
	products   importer.ProductStore
	cache      ProductCache
	events     *CatalogEvents
	metrics    Metrics
	logger     *zap.Logger
	opts       []importer.Option
}

func NewImportService(
	categories importer.CategoryStore,
	products importer.ProductStore,
	cache ProductCache,
	events *CatalogEvents,
	metrics Metrics,
	logger *zap.Logger,
	opts ...importer.Option,
) ImportService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &importServiceImpl{
		categories: categories,
		products:   products,
		cache:      cache,
		events:     events,
		metrics:    metricsOrNoop(metrics),
		logger:     logger,
		opts:       opts,
	}
}

// Import decodes the file and imports every row. Only whole-file problems
// produce a ServiceError; row problems are reported inside the result.
func (s *importServiceImpl) Import(ctx context.Context, filename string, data []byte) (*importer.Result, *ServiceError) {
	start := time.Now()

	rows, err := importer.Decode(filename, data)
	if err != nil {
		s.logger.Warn("Import file rejected", zap.String("file", filename), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Import failed: " + err.Error()}
	}

	// A fresh importer per call keeps the category cache per run.
	im := importer.New(s.categories, s.products, s.logger.With(zap.String("file", filename)), s.opts...)
	res, err := im.Run(ctx, rows)
	if err != nil {
		s.logger.Error("Import aborted", zap.String("file", filename), zap.Error(err))
		if res != nil && res.Success > 0 {
			if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
				s.logger.Error("Failed to invalidate product cache after import", zap.Error(err))
			}
			return nil, internal(fmt.Sprintf("Import failed: %v (%d products were added before it stopped)", err, res.Success))
		}
		return nil, internal("Import failed: " + err.Error())
	}

	if res.Success > 0 {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Error("Failed to invalidate product cache after import", zap.Error(err))
		}
		s.events.ProductsImported(ctx, filename, res)
	}
	_ = s.metrics.RecordCountN(ctx, awspkg.MetricProductsImported, res.Success, nil)
	_ = s.metrics.RecordCountN(ctx, awspkg.MetricProductImportFailures, res.Failed, nil)
	_ = s.metrics.RecordLatency(ctx, awspkg.MetricImportDuration, time.Since(start), nil)
	return res, nil
}
