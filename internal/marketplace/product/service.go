// Copyright (c) 2026 EasyBuy. All rights reserved.

package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/blob"
	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/guard"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/upload"
	"github.com/easybuy/api/internal/platform/validate"
	"github.com/easybuy/api/pkg/pagination"
	"github.com/easybuy/api/pkg/slice"
)

// Service implements the product business logic.
type Service struct {
	repository  Repository
	blobStore   blob.Store
	imagePolicy upload.Policy
	logger      *slog.Logger
}

// NewService constructs a new product [Service].
func NewService(repository Repository, store blob.Store, imagePolicy upload.Policy, logger *slog.Logger) *Service {
	return &Service{
		repository:  repository,
		blobStore:   store,
		imagePolicy: imagePolicy,
		logger:      logger,
	}
}

// ImagePolicy returns the upload policy for product images.
func (service *Service) ImagePolicy() upload.Policy {
	return service.imagePolicy
}

// # Public Reads

// List returns one page of the active catalogue.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Listing, pagination.Meta, error) {
	listings, total, err := service.repository.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("product_service_list_failed: %w", err)
	}
	return listings, pagination.NewMeta(params, total), nil
}

// Get returns a product with its images (an empty list when it has none).
func (service *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	product, err := service.repository.Get(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound(resourceProduct)
		}
		return nil, fmt.Errorf("product_service_get_failed: %w", err)
	}

	images, err := service.repository.Images(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product_service_get_images_failed: %w", err)
	}
	if images == nil {
		images = []Image{}
	}

	return &Detail{Product: *product, Images: images}, nil
}

// # Seller Mutations

/*
Create lists a new product owned by the caller.

Rules:
  - name: trimmed, 2 to 200 characters
  - price: at least 0.01
  - description: optional, at most 5000 characters

Returns:
  - *Product: The created product
  - error: 400 on invalid input
*/
func (service *Service) Create(ctx context.Context, identity *sec.Identity, input CreateInput) (*Product, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.MinLen(FieldName, input.Name, NameMinLen).
		MaxLen(FieldName, input.Name, NameMaxLen).
		MinFloat(FieldPrice, input.Price, MinPrice)
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, DescriptionMaxLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	product := &Product{
		SellerID:    identity.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	}
	if err := service.repository.Create(ctx, product); err != nil {
		// The seller row can vanish between token issue and insert.
		if errors.Is(err, dberr.ErrForeignKey) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("product_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "product_created", slog.Int64("product_id", product.ID))

	return product, nil
}

/*
Update applies a partial update to a product the caller sells.

The ownership check runs first, so a non-owner gets 403 whatever the body.
*/
func (service *Service) Update(ctx context.Context, identity *sec.Identity, id int64, input UpdateInput) error {
	if err := guard.Owner(ctx, resourceProduct, id, identity, service.repository.OwnerOf); err != nil {
		return err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.MinLen(FieldName, *input.Name, NameMinLen).MaxLen(FieldName, *input.Name, NameMaxLen)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, DescriptionMaxLen)
	}
	if input.Price != nil {
		validator.MinFloat(FieldPrice, *input.Price, MinPrice)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.Update(ctx, id, input); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound(resourceProduct)
		}
		return fmt.Errorf("product_service_update_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "product_updated", slog.Int64("product_id", id))
	return nil
}

/*
Delete removes a product the caller sells.

Image rows go with the product. Their files are removed afterwards when this
store manages them; a failed file removal is logged and does not fail the call.
*/
func (service *Service) Delete(ctx context.Context, identity *sec.Identity, id int64) error {
	if err := guard.Owner(ctx, resourceProduct, id, identity, service.repository.OwnerOf); err != nil {
		return err
	}

	images, err := service.repository.Images(ctx, id)
	if err != nil {
		return fmt.Errorf("product_service_delete_failed: %w", err)
	}

	if err := service.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound(resourceProduct)
		}
		return fmt.Errorf("product_service_delete_failed: %w", err)
	}

	for _, image := range images {
		if service.blobStore.Owns(image.ImageURL) {
			service.discard(ctx, image.ImageURL)
		}
	}

	service.logger.InfoContext(ctx, "product_deleted",
		slog.Int64("product_id", id),
		slog.Int("images", len(images)),
	)
	return nil
}

/*
AddImages stores the accepted files of an upload and records them on the product.

Flow:
 1. Ownership check (404/403 before any file is touched).
 2. Screening by the image policy (400 for too many files or none valid).
 3. Each accepted file is stored, then recorded. If recording fails the file
    is removed and 500 is returned; images recorded before it are kept.

Returns:
  - []string: Public URLs of the stored files, in request order
*/
func (service *Service) AddImages(ctx context.Context, identity *sec.Identity, id int64, files []*upload.File) ([]string, error) {
	if err := guard.Owner(ctx, resourceProduct, id, identity, service.repository.OwnerOf); err != nil {
		return nil, err
	}

	decision, err := service.imagePolicy.Screen(files)
	if err != nil {
		return nil, err
	}
	if len(decision.Rejected) > 0 {
		service.logger.InfoContext(ctx, "product_images_rejected",
			slog.Int64("product_id", id),
			slog.Any("files", slice.Map(decision.Rejected, func(rejected upload.Rejected) string {
				return rejected.Filename + " (" + rejected.Reason + ")"
			})),
		)
	}

	urls := make([]string, 0, len(decision.Accepted))
	for _, file := range decision.Accepted {
		url, err := upload.Save(ctx, service.blobStore, FieldImages, file)
		if err != nil {
			return nil, fmt.Errorf("product_service_image_store_failed: %w", err)
		}

		if _, err := service.repository.AddImage(ctx, id, url); err != nil {
			service.discard(ctx, url)
			return nil, fmt.Errorf("product_service_image_record_failed: %w", err)
		}
		urls = append(urls, url)
	}

	service.logger.InfoContext(ctx, "product_images_uploaded",
		slog.Int64("product_id", id),
		slog.Int("accepted", len(urls)),
		slog.Int("rejected", len(decision.Rejected)),
	)

	return urls, nil
}

func (service *Service) discard(ctx context.Context, url string) {
	if err := service.blobStore.Delete(ctx, url); err != nil {
		service.logger.WarnContext(ctx, "blob_delete_failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}
