// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package guard enforces resource ownership before a mutation.

Every mutation of an ownable resource (a product, a user's own profile) runs
[Owner] first. The check and the following write are separate statements, so a
concurrent delete between them is possible; the write then affects zero rows.
*/
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/sec"
)

// MsgNotAllowed is the client message for an ownership mismatch.
const MsgNotAllowed = "Not allowed"

// OwnerLookup loads the owner id of a resource.
// It must return [dberr.ErrNotFound] when the resource does not exist.
type OwnerLookup func(ctx context.Context, resourceID int64) (int64, error)

/*
Owner verifies that identity owns the resource.

Parameters:
  - resource: Display name used in the 404 message ("Product")
  - resourceID: Primary key of the resource
  - identity: The authenticated caller
  - lookup: Loads the owner id

Returns:
  - error: apperr.NotFound when the row is missing, apperr.Forbidden on a
    mismatch, the lookup's own error for anything else, nil when it matches
*/
func Owner(ctx context.Context, resource string, resourceID int64, identity *sec.Identity, lookup OwnerLookup) error {
	if identity == nil {
		return apperr.Unauthorized("Missing Authorization header")
	}

	ownerID, err := lookup(ctx, resourceID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound(resource)
		}
		return fmt.Errorf("guard_owner_lookup_failed: %w", err)
	}

	if ownerID != identity.ID {
		return apperr.Forbidden(MsgNotAllowed)
	}

	return nil
}
