package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Maharshi2203/Sattys-main/importer"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"go.uber.org/zap"
)

// Catalog event types.
const (
	EventProductCreated   = "product_created"
	EventProductUpdated   = "product_updated"
	EventProductDeleted   = "product_deleted"
	EventProductsImported = "products_imported"
)

// CatalogEvent is the SNS payload announcing catalog changes.
type CatalogEvent struct {
	EventType  string    `json:"event_type"`
	ProductID  uint      `json:"product_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Success    int       `json:"success,omitempty"`
	Failed     int       `json:"failed,omitempty"`
	Categories []string  `json:"created_categories,omitempty"`
	Source     string    `json:"source,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// CatalogEvents publishes CatalogEvent messages. It is a no-op without a
// publisher or topic, and publish failures are logged, never returned.
type CatalogEvents struct {
	publisher awspkg.SNSPublisher
	topicArn  string
	logger    *zap.Logger
}

func NewCatalogEvents(publisher awspkg.SNSPublisher, topicArn string, logger *zap.Logger) *CatalogEvents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogEvents{publisher: publisher, topicArn: topicArn, logger: logger}
}

// ProductChanged announces a single product write.
func (e *CatalogEvents) ProductChanged(ctx context.Context, eventType string, id uint, name string) {
	e.publish(ctx, CatalogEvent{EventType: eventType, ProductID: id, Name: name})
}

// ProductsImported announces a finished import.
func (e *CatalogEvents) ProductsImported(ctx context.Context, source string, res *importer.Result) {
	e.publish(ctx, CatalogEvent{
		EventType:  EventProductsImported,
		Success:    res.Success,
		Failed:     res.Failed,
		Categories: res.CreatedCategories,
		Source:     source,
	})
}

func (e *CatalogEvents) publish(ctx context.Context, ev CatalogEvent) {
	if e == nil || e.publisher == nil || e.topicArn == "" {
		return
	}
	ev.Timestamp = time.Now().UTC()
	b, err := json.Marshal(ev)
	if err != nil {
		e.logger.Error("Failed to marshal catalog event", zap.String("event_type", ev.EventType), zap.Error(err))
		return
	}
	if err := e.publisher.Publish(ctx, e.topicArn, ev.EventType, b); err != nil {
		e.logger.Error("Failed to publish catalog event", zap.String("event_type", ev.EventType), zap.Error(err))
		return
	}
	e.logger.Info("Published catalog event", zap.String("event_type", ev.EventType))
}
