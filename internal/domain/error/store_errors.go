// Package error defines domain-specific errors for the Ledgerly backend.
package error

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Store errors cover failures talking to the persistence layer.
var (
	// ErrStoreUnavailable is returned when the store rejects or cannot serve a request.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// pq unique_violation
const uniqueViolationCode = "23505"

// IsDuplicate reports whether err indicates a unique-constraint violation.
// It recognizes the ORM sentinel, the postgres error code, and the
// message substrings emitted by drivers that expose neither.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
