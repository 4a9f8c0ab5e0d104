package get_equipment_availability

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrEquipmentNotFound = fmt.Errorf("%w: equipment not found", domain.ErrNotFound)
	ErrInternal          = errors.New("get_equipment_availability: internal error")
)
