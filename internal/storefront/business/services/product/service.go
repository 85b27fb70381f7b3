package product

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/models/dto/request"
	"storefront_api/internal/storefront/business/services/catalog"
	"storefront_api/internal/storefront/business/services/media"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/business/service"
	"storefront_api/pkg/logger"
)

const (
	maxNameLength = 255
	maxDescLength = 2000
)

// Cache is the slice of the local store admin writes touch.
type Cache interface {
	Upsert(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
}

// Input is the textual part of a product write.
type Input struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}

// Service carries the admin-initiated product writes. Each write goes to
// the remote service first and then through to the local cache, so the
// cache entry is refreshed rather than left stale.
type Service struct {
	client   *clients.ProductClient
	cache    Cache
	uploader *media.Uploader
	text     service.ITextService
	log      logger.Logger
}

func NewService(client *clients.ProductClient, cache Cache, uploader *media.Uploader, text service.ITextService, writer io.Writer) *Service {
	return &Service{
		client:   client,
		cache:    cache,
		uploader: uploader,
		text:     text,
		log:      logger.NewLogger(writer, "[ProductService]"),
	}
}

func (s *Service) validate(in Input) error {
	if in.Name == "" {
		return &errs.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Price < 0 {
		return &errs.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if in.Stock < 0 {
		return &errs.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return nil
}

// Create posts the multipart create with one to three image binaries.
func (s *Service) Create(ctx context.Context, in Input, images []request.ImagePart) (*models.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if len(images) == 0 || len(images) > 3 {
		return nil, &errs.ValidationError{Field: "images", Reason: "between one and three images are required"}
	}
	for i, img := range images {
		if len(img.Data) == 0 {
			return nil, &errs.ValidationError{Field: "images", Reason: fmt.Sprintf("image %d is empty", i+1)}
		}
	}

	form := &request.ProductCreateForm{
		Name:        s.text.ClearAndReduce(in.Name, maxNameLength),
		Description: s.text.ClearAndReduce(in.Description, maxDescLength),
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Images:      images,
	}
	created, err := s.client.Create(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	p, ok := catalog.MapResponse(*created, s.text)
	if !ok {
		return nil, fmt.Errorf("create response for %q is not mappable", in.Name)
	}
	if err := s.cache.Upsert(ctx, p); err != nil {
		s.log.Log("failed to cache created product %s: %v", p.ID, err)
	}
	return &p, nil
}

// Update patches an existing product. Replaced images go through the
// asset workaround first: each binary becomes a hosted descriptor via a
// disposable product, and the PATCH carries descriptors only. Nil slots
// keep their stored asset.
func (s *Service) Update(ctx context.Context, id int, in Input, images [3]*media.ImagePayload) (*models.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	req := &request.ProductUpdateRequest{
		Name:        s.text.ClearAndReduce(in.Name, maxNameLength),
		Description: s.text.ClearAndReduce(in.Description, maxDescLength),
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
	}

	slots := [3]**request.ImageUpdateData{&req.Image, &req.Image2, &req.Image3}
	for i, payload := range images {
		if payload == nil {
			continue
		}
		descriptor, err := s.uploader.Upload(ctx, *payload, in.Category)
		if err != nil {
			return nil, fmt.Errorf("uploading replacement image %d: %w", i+1, err)
		}
		*slots[i] = toImageUpdate(descriptor)
	}

	updated, err := s.client.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("updating product %d: %w", id, err)
	}

	p, ok := catalog.MapResponse(*updated, s.text)
	if !ok {
		return nil, fmt.Errorf("update response for product %d is not mappable", id)
	}
	if err := s.cache.Upsert(ctx, p); err != nil {
		s.log.Log("failed to cache updated product %s: %v", p.ID, err)
	}
	return &p, nil
}

// Delete removes the product remotely, then drops the cache row.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if err := s.cache.Delete(ctx, strconv.Itoa(id)); err != nil {
		s.log.Log("failed to evict product %d from cache: %v", id, err)
	}
	return nil
}

func toImageUpdate(d models.ImageAssetDescriptor) *request.ImageUpdateData {
	return &request.ImageUpdateData{
		Path: d.Path,
		Name: d.Name,
		Type: d.Type,
		Size: d.Size,
		Mime: d.Mime,
		URL:  d.URL,
		Meta: request.ImageMetaUpdate{Width: d.Width, Height: d.Height},
	}
}
