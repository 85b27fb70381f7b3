package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"storefront_api/config/values"
	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/models/dto/request"
	"storefront_api/internal/storefront/business/models/dto/response"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/metrics"
	"storefront_api/pkg/logger"
)

// ImagePayload is a local image binary waiting for a hosted descriptor.
type ImagePayload struct {
	FileName string
	Mime     string
	Data     []byte
}

// Uploader works around the remote service accepting image binaries only
// at resource-creation time: it creates a disposable product carrying the
// real image, reads the hosted asset descriptor off the response, deletes
// the disposable product and returns the descriptor for reuse in a real
// update. Every run leaves transient server-side litter between create
// and delete; a failed delete leaves it permanently and only bumps a
// counter.
type Uploader struct {
	products *clients.ProductClient
	vals     values.StorefrontValues
	log      logger.Logger
}

func NewUploader(products *clients.ProductClient, vals values.StorefrontValues, writer io.Writer) *Uploader {
	return &Uploader{
		products: products,
		vals:     vals,
		log:      logger.NewLogger(writer, "[AssetUploader]"),
	}
}

// Upload returns the hosted descriptor for payload. category rides along
// because the backend validates it even on throwaway products.
func (u *Uploader) Upload(ctx context.Context, payload ImagePayload, category string) (models.ImageAssetDescriptor, error) {
	if len(payload.Data) == 0 {
		return models.ImageAssetDescriptor{}, &errs.ValidationError{Field: "payload", Reason: "image data is empty"}
	}
	if category == "" {
		category = u.vals.DisposableCategory
	}

	part := request.ImagePart{FileName: payload.FileName, Mime: payload.Mime, Data: payload.Data}
	form := &request.ProductCreateForm{
		Name:        fmt.Sprintf("TEMP_%d", time.Now().UnixMilli()),
		Description: "temp",
		Price:       u.vals.DisposablePrice,
		Stock:       u.vals.DisposableStock,
		Category:    category,
		// the backend rejects creates with empty image slots, so the
		// same binary fills all three
		Images: []request.ImagePart{part, part, part},
	}

	created, err := u.products.Create(ctx, form)
	if err != nil {
		return models.ImageAssetDescriptor{}, fmt.Errorf("creating disposable resource: %w", err)
	}

	if created.Image.ImageURL() == "" {
		u.cleanup(ctx, created.ID)
		return models.ImageAssetDescriptor{}, errs.ErrNoAssetReturned
	}

	u.cleanup(ctx, created.ID)
	return descriptorFrom(created.Image), nil
}

// cleanup deletes the disposable product. Best effort: a failure is
// logged and counted, never propagated.
func (u *Uploader) cleanup(ctx context.Context, id int) {
	if err := u.products.Delete(ctx, id); err != nil {
		u.log.Log("failed to delete disposable product %d: %v", id, err)
		metrics.RecordAssetCleanupFailure()
	}
}

func descriptorFrom(img *response.RemoteImage) models.ImageAssetDescriptor {
	d := models.ImageAssetDescriptor{
		Path: img.Path,
		Name: img.Name,
		Type: img.Type,
		Size: img.Size,
		Mime: img.Mime,
		URL:  img.URL,
	}
	if img.Meta != nil {
		d.Width = img.Meta.Width
		d.Height = img.Meta.Height
	}
	return d
}
