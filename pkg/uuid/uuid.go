// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers.

It wraps google/uuid to generate Version 7 values. They are used for request
correlation IDs and for the names of stored upload files, where time ordering
keeps directory listings and object keys roughly chronological.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It falls back to a random v4 value if the v7 generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
