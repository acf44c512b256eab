// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package slice holds generic helpers missing from the standard [slices] package.
package slice

// Map applies transform to every element. The result is never nil, so an
// empty input still encodes as [] in JSON.
func Map[T, U any](input []T, transform func(T) U) []U {
	mapped := make([]U, 0, len(input))
	for _, item := range input {
		mapped = append(mapped, transform(item))
	}
	return mapped
}
