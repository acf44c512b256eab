// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package product implements the marketplace catalogue: listing, detail,
creation, seller-only mutation and product image upload.

# Ownership

The seller_id column is the owner. Update, delete and image upload run
guard.Owner before touching the row or the blob store, so a non-owner gets 403
and nothing changes.
*/
package product

import "time"

// # Domain Entities

// Product is a listing offered by a seller.
type Product struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"seller_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Listing is a product row in the public catalogue, with seller names joined in.
type Listing struct {
	Product
	SellerUsername    string  `json:"seller_username"`
	SellerDisplayName *string `json:"seller_display_name"`
}

// Image is a stored product picture.
type Image struct {
	ID        int64  `json:"id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

// Detail is a product with its images. Images is never nil.
type Detail struct {
	Product
	Images []Image `json:"images"`
}

// CreateInput holds the fields of a new product.
type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

// UpdateInput carries optional product fields; nil leaves a field unchanged.
type UpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"is_active"`
}

// # Field Identifiers & Limits

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImages      = "images"

	NameMinLen        = 2
	NameMaxLen        = 200
	DescriptionMaxLen = 5000
	MinPrice          = 0.01
)

// # Messages

const (
	resourceProduct = "Product"

	MsgCreated        = "Product created"
	MsgUpdated        = "Product updated"
	MsgDeleted        = "Deleted"
	MsgImagesUploaded = "Images uploaded"
)
