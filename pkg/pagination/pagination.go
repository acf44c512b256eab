// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package pagination parses page/limit query parameters and builds the
// "meta" block of list responses.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when none is requested.
	DefaultLimit = 20
	// MaxLimit is the largest accepted page size.
	MaxLimit = 100
)

// Params holds the page (1-indexed) and page size of a list request.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET for the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds response metadata from the request params and the total row count.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}
	return Meta{Page: params.Page, Limit: params.Limit, Total: total, TotalPages: totalPages}
}

// FromRequest reads "page" and "limit" from the query string.
// Missing or invalid values fall back to page 1 and [DefaultLimit].
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}
