// Package authz holds the single ownership policy applied to every
// per-account resource. Handlers load the row first, so a missing row and
// a row owned by someone else stay distinguishable (404 vs 403).
package authz

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("resource owned by another account")
)

// Owned is any record scoped to one account via its registration number.
type Owned interface {
	OwnerRegistration() string
}

// Authorize allows a mutation iff the row belongs to the given principal.
func Authorize(principalReg string, row Owned) error {
	if row.OwnerRegistration() != principalReg {
		return ErrForbidden
	}
	return nil
}

// LoadOwned fetches a row by id and checks ownership in one place:
// existence first, then ownership. The caller's mutating statement must
// still be scoped by id AND registration_number.
func LoadOwned(ctx context.Context, db *gorm.DB, dest Owned, id uint, principalReg string) error {
	if err := db.WithContext(ctx).First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return Authorize(principalReg, dest)
}
