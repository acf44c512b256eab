// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package pointer builds the optional fields of partial-update payloads,
// where a nil pointer means "leave unchanged".
package pointer

// To returns the address of a copy of v, so literals can fill *T fields.
func To[T any](v T) *T {
	return &v
}
