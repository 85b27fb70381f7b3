package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/models/dto/response"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/metrics"
	"storefront_api/pkg/business/service"
	"storefront_api/pkg/logger"
)

const (
	maxNameLength = 255
	maxDescLength = 2000
)

// ProductCache is the slice of the local store the engine needs.
type ProductCache interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	ReplaceAll(ctx context.Context, products []models.Product) error
	Upsert(ctx context.Context, product models.Product) error
}

// SyncEngine reconciles the local product cache against the remote
// listing with a full replace: delete-all then insert-all. An empty
// remote result never wipes the cache.
type SyncEngine struct {
	client *clients.ProductClient
	cache  ProductCache
	text   service.ITextService
	log    logger.Logger

	mu sync.Mutex // serializes sync runs
}

func NewSyncEngine(client *clients.ProductClient, cache ProductCache, text service.ITextService, writer io.Writer) *SyncEngine {
	return &SyncEngine{
		client: client,
		cache:  cache,
		text:   text,
		log:    logger.NewLogger(writer, "[SyncEngine]"),
	}
}

// Sync pulls the full remote product list, maps every usable entry and
// replaces the local set wholesale. The remote list being empty (or
// entirely unmappable) is a failure, not a wipe: a server outage must not
// masquerade as "no products". Nothing is retried here.
func (e *SyncEngine) Sync(ctx context.Context) ([]models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, err := e.client.List(ctx)
	if err != nil {
		metrics.RecordSync("error")
		return nil, fmt.Errorf("fetching remote catalog: %w", err)
	}

	var sm metrics.SyncMetrics
	sm.FetchedCount.Store(int32(len(raw)))

	products := make([]models.Product, 0, len(raw))
	for _, entry := range raw {
		p, ok := e.mapProduct(entry)
		if !ok {
			sm.SkippedCount.Add(1)
			continue
		}
		products = append(products, p)
		sm.MappedCount.Add(1)
	}

	if len(products) == 0 {
		metrics.RecordSync("empty")
		return nil, errs.ErrEmptyCatalog
	}

	if err := e.cache.ReplaceAll(ctx, products); err != nil {
		metrics.RecordSync("error")
		return nil, fmt.Errorf("replacing local catalog: %w", err)
	}
	sm.ReplacedCount.Store(int32(len(products)))
	metrics.RecordSync("ok")

	e.log.Log("catalog sync: fetched=%d mapped=%d skipped=%d",
		sm.FetchedCount.Load(), sm.MappedCount.Load(), sm.SkippedCount.Load())
	return products, nil
}

// FetchProduct refreshes a single cache entry from the remote source,
// e.g. after an admin write invalidated it.
func (e *SyncEngine) FetchProduct(ctx context.Context, id int) (*models.Product, error) {
	raw, err := e.client.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching product %d: %w", id, err)
	}
	p, ok := e.mapProduct(*raw)
	if !ok {
		return nil, fmt.Errorf("product %d is not mappable", id)
	}
	if err := e.cache.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("caching product %d: %w", id, err)
	}
	return &p, nil
}

func (e *SyncEngine) mapProduct(raw response.ProductResponse) (models.Product, bool) {
	return MapResponse(raw, e.text)
}

// MapResponse converts one raw entry into the local shape. Image objects
// resolve to plain URLs; a missing url and path yields an empty string,
// never a failure. Entries without an id or name are skipped.
func MapResponse(raw response.ProductResponse, text service.ITextService) (models.Product, bool) {
	if raw.ID == 0 || raw.Name == "" {
		return models.Product{}, false
	}
	return models.Product{
		ID:          strconv.Itoa(raw.ID),
		Name:        text.ClearAndReduce(raw.Name, maxNameLength),
		Description: text.ClearAndReduce(raw.Description, maxDescLength),
		Price:       raw.Price,
		Stock:       raw.Stock,
		Category:    raw.Category,
		Image:       raw.Image.ImageURL(),
		Image2:      raw.Image2.ImageURL(),
		Image3:      raw.Image3.ImageURL(),
	}, true
}
