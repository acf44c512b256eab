// Copyright (c) 2026 EasyBuy. All rights reserved.

package product

import (
	"context"

	"github.com/easybuy/api/pkg/pagination"
)

// Repository defines the persistence contract for products and their images.
type Repository interface {
	/*
		List returns one page of active products, newest first.

		Returns:
		  - []*Listing: The page (empty, never nil)
		  - int: Total number of active products
	*/
	List(ctx context.Context, params pagination.Params) ([]*Listing, int, error)

	// Get returns a product regardless of is_active, or dberr.ErrNotFound.
	Get(ctx context.Context, id int64) (*Product, error)

	// OwnerOf returns the seller id, or dberr.ErrNotFound.
	OwnerOf(ctx context.Context, id int64) (int64, error)

	// Create inserts the product and fills in ID, IsActive and CreatedAt.
	Create(ctx context.Context, product *Product) error

	// Update applies the non-nil fields, or returns dberr.ErrNotFound.
	Update(ctx context.Context, id int64, input UpdateInput) error

	// Delete removes the product; its image rows go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id int64) error

	// Images lists the images of a product in upload order.
	Images(ctx context.Context, productID int64) ([]Image, error)

	// AddImage records an uploaded image. The first image of a product becomes primary.
	AddImage(ctx context.Context, productID int64, url string) (*Image, error)
}
