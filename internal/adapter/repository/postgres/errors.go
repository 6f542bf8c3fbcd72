package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// violatesConstraint reports whether err is a unique violation on the named
// constraint. Constraint names identify which domain invariant was broken:
// a duplicate nickname, a second mint on a tree, or a token id collision.
func violatesConstraint(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == constraint
}

// storageErr wraps unexpected driver failures so the usecase layer can
// distinguish infrastructure faults from domain errors.
func storageErr(op string, err error) error {
	return domain.NewStorageError(op, err)
}
