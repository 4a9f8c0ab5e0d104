package equipment

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrEquipmentNotFound = fmt.Errorf("%w: equipment not found", domain.ErrNotFound)

	// ErrNotOperator is returned when a client tries to add equipment to the catalog.
	ErrNotOperator = fmt.Errorf("%w: only operators can list equipment", domain.ErrForbidden)

	ErrNotOwner = fmt.Errorf("%w: only the owner can change this equipment", domain.ErrForbidden)

	ErrInternal = errors.New("equipment: internal error")
)
