package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassification(t *testing.T) {
	overlap := fmt.Errorf("insert: %w", &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})
	serialization := fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
	unique := &pq.Error{Code: "23505"}

	assert.True(t, IsExclusionViolation(overlap))
	assert.Equal(t, "bookings_no_overlap", ConstraintName(overlap))
	assert.True(t, IsSerializationFailure(serialization))
	assert.True(t, IsUniqueViolation(unique))

	plain := errors.New("boom")
	assert.False(t, IsExclusionViolation(plain))
	assert.False(t, IsSerializationFailure(plain))
	assert.Empty(t, ConstraintName(plain))
}
