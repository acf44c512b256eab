// Copyright (c) 2026 EasyBuy. All rights reserved.

package product_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/marketplace/product"
	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/blob"
	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/upload"
	"github.com/easybuy/api/pkg/pagination"
)

// # Fakes

type memoryProducts struct {
	products map[int64]*product.Product
	images   map[int64][]product.Image
	nextID   int64
	// addImageErr simulates a failing image insert.
	addImageErr error
}

func newMemoryProducts(products ...*product.Product) *memoryProducts {
	m := &memoryProducts{
		products: map[int64]*product.Product{},
		images:   map[int64][]product.Image{},
		nextID:   100,
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memoryProducts) List(_ context.Context, params pagination.Params) ([]*product.Listing, int, error) {
	active := []*product.Listing{}
	for _, p := range m.products {
		if p.IsActive {
			active = append(active, &product.Listing{Product: *p, SellerUsername: "seller"})
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID > active[j].ID })

	start := min(params.Offset(), len(active))
	end := min(start+params.Limit, len(active))
	return active[start:end], len(active), nil
}

func (m *memoryProducts) Get(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memoryProducts) OwnerOf(_ context.Context, id int64) (int64, error) {
	p, ok := m.products[id]
	if !ok {
		return 0, dberr.ErrNotFound
	}
	return p.SellerID, nil
}

func (m *memoryProducts) Create(_ context.Context, p *product.Product) error {
	p.ID = m.nextID
	p.IsActive = true
	p.CreatedAt = time.Now()
	m.nextID++
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *memoryProducts) Update(_ context.Context, id int64, input product.UpdateInput) error {
	p, ok := m.products[id]
	if !ok {
		return dberr.ErrNotFound
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	return nil
}

func (m *memoryProducts) Delete(_ context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(m.products, id)
	delete(m.images, id)
	return nil
}

func (m *memoryProducts) Images(_ context.Context, productID int64) ([]product.Image, error) {
	return m.images[productID], nil
}

func (m *memoryProducts) AddImage(_ context.Context, productID int64, url string) (*product.Image, error) {
	if m.addImageErr != nil {
		return nil, m.addImageErr
	}
	image := product.Image{ID: int64(len(m.images[productID]) + 1), ImageURL: url, IsPrimary: len(m.images[productID]) == 0}
	m.images[productID] = append(m.images[productID], image)
	return &image, nil
}

// # Fixture

const maxFileBytes = 1024

var (
	owner    = &sec.Identity{ID: 1, Username: "owner", Email: "owner@example.com"}
	stranger = &sec.Identity{ID: 2, Username: "stranger", Email: "stranger@example.com"}
)

type fixture struct {
	service    *product.Service
	repository *memoryProducts
	dir        string
}

func newFixture(t *testing.T, products ...*product.Product) *fixture {
	t.Helper()

	dir := t.TempDir()
	store, err := blob.NewLocal(dir)
	require.NoError(t, err)

	repository := newMemoryProducts(products...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		service:    product.NewService(repository, store, upload.NewImagePolicy(5, maxFileBytes), logger),
		repository: repository,
		dir:        dir,
	}
}

func (f *fixture) storedFiles(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	return len(entries)
}

func bike() *product.Product {
	return &product.Product{ID: 42, SellerID: 1, Name: "Bike", Price: 120, IsActive: true, CreatedAt: time.Now()}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

var errConnectionReset = errors.New("connection reset")
