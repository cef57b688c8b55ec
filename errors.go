package storage

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a select, update or delete matched no rows
	ErrNotFound = errors.New("storage: no results found")
	// ErrDuplicate is returned when a write violates a unique constraint
	ErrDuplicate = errors.New("storage: duplicate key")
	// ErrInvalid is returned when the database rejects the row itself (null, check, foreign key, malformed value)
	ErrInvalid = errors.New("storage: invalid row")
)

// postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqUniqueViolation           = "23505"
	pqNotNullViolation          = "23502"
	pqForeignKeyViolation       = "23503"
	pqCheckViolation            = "23514"
	pqInvalidTextRepresentation = "22P02"
	pqStringDataRightTruncation = "22001"
	pqNumericValueOutOfRange    = "22003"
)

// classify maps driver errors onto the package's sentinel errors; anything else is returned untouched
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Message)
	case pqNotNullViolation, pqForeignKeyViolation, pqCheckViolation,
		pqInvalidTextRepresentation, pqStringDataRightTruncation, pqNumericValueOutOfRange:
		return fmt.Errorf("%w: %s", ErrInvalid, pqErr.Message)
	}
	return err
}
