package storage

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pqCode(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	return pqErr.Code, true
}

func IsUniqueViolation(err error) bool {
	code, ok := pqCode(err)
	return ok && code == codeUniqueViolation
}

func IsExclusionViolation(err error) bool {
	code, ok := pqCode(err)
	return ok && code == codeExclusionViolation
}

// IsSerializationFailure reports errors a serializable transaction raises when it lost a race.
func IsSerializationFailure(err error) bool {
	code, ok := pqCode(err)
	return ok && (code == codeSerializationFailure || code == codeDeadlockDetected)
}

// ConstraintName returns the violated constraint, if err is a Postgres error.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
