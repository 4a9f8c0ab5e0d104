package list_equipment

import (
	"errors"
)

var (
	ErrInternal = errors.New("list_equipment: internal error")
)
