package equipment

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrEquipmentNotFound = fmt.Errorf("%w: equipment.repository: equipment not found", domain.ErrNotFound)

	ErrBuildQuery = errors.New("equipment.repository: failed to build query")
	ErrExecQuery  = errors.New("equipment.repository: failed to execute query")
	ErrScanRow    = errors.New("equipment.repository: failed to scan row")
)
