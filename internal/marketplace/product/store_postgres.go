// Copyright (c) 2026 EasyBuy. All rights reserved.

package product

import (
	"context"

	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/postgres"
	"github.com/easybuy/api/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new Postgres implementation for products.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `p.id, p.seller_id, p.name, p.description, p.price::float8, p.is_active, p.created_at`

// # Catalogue

// List implements [Repository].
func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params) ([]*Listing, int, error) {
	var total int
	if err := repository.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_product_repo_count_failed")
	}

	query := `
		SELECT ` + productColumns + `, u.username, u.display_name
		FROM products p
		JOIN users u ON u.id = p.seller_id
		WHERE p.is_active
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_product_repo_list_failed")
	}
	defer rows.Close()

	listings := []*Listing{}
	for rows.Next() {
		listing := &Listing{}
		if err := rows.Scan(
			&listing.ID, &listing.SellerID, &listing.Name, &listing.Description,
			&listing.Price, &listing.IsActive, &listing.CreatedAt,
			&listing.SellerUsername, &listing.SellerDisplayName,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_product_repo_scan_failed")
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_product_repo_list_failed")
	}

	return listings, total, nil
}

// Get implements [Repository].
func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	product := &Product{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.SellerID, &product.Name, &product.Description,
		&product.Price, &product.IsActive, &product.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_product_repo_get_failed")
	}

	return product, nil
}

// OwnerOf implements [Repository].
func (repository *PostgresRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var sellerID int64
	if err := repository.db.QueryRow(ctx, `SELECT seller_id FROM products WHERE id = $1`, id).Scan(&sellerID); err != nil {
		return 0, dberr.Wrap(err, "postgres_product_repo_owner_failed")
	}
	return sellerID, nil
}

// # Mutations

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, product *Product) error {
	const query = `
		INSERT INTO products (seller_id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at`

	err := repository.db.QueryRow(ctx, query, product.SellerID, product.Name, product.Description, product.Price).
		Scan(&product.ID, &product.IsActive, &product.CreatedAt)
	return dberr.Wrap(err, "postgres_product_repo_create_failed")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(ctx context.Context, id int64, input UpdateInput) error {
	const query = `
		UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			price       = COALESCE($4::numeric, price),
			is_active   = COALESCE($5, is_active)
		WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id, input.Name, input.Description, input.Price, input.IsActive)
	if err != nil {
		return dberr.Wrap(err, "postgres_product_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_product_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Images

// Images implements [Repository].
func (repository *PostgresRepository) Images(ctx context.Context, productID int64) ([]Image, error) {
	const query = `
		SELECT id, image_url, is_primary
		FROM product_images
		WHERE product_id = $1
		ORDER BY id`

	rows, err := repository.db.Query(ctx, query, productID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_product_repo_images_failed")
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var image Image
		if err := rows.Scan(&image.ID, &image.ImageURL, &image.IsPrimary); err != nil {
			return nil, dberr.Wrap(err, "postgres_product_repo_scan_image_failed")
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_product_repo_images_failed")
	}

	return images, nil
}

// AddImage implements [Repository].
func (repository *PostgresRepository) AddImage(ctx context.Context, productID int64, url string) (*Image, error) {
	const query = `
		INSERT INTO product_images (product_id, image_url, is_primary)
		VALUES ($1, $2, NOT EXISTS (SELECT 1 FROM product_images WHERE product_id = $1))
		RETURNING id, image_url, is_primary`

	image := &Image{}
	if err := repository.db.QueryRow(ctx, query, productID, url).Scan(&image.ID, &image.ImageURL, &image.IsPrimary); err != nil {
		return nil, dberr.Wrap(err, "postgres_product_repo_add_image_failed")
	}
	return image, nil
}
