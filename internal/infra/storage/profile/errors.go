package profile

import (
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

var (
	ErrProfileNotFound = fmt.Errorf("%w: profile.repository: profile not found", domain.ErrNotFound)
	ErrProfileExists   = fmt.Errorf("%w: profile.repository: profile already exists", domain.ErrConflict)

	ErrBuildQuery = errors.New("profile.repository: failed to build query")
	ErrExecQuery  = errors.New("profile.repository: failed to execute query")
	ErrScanRow    = errors.New("profile.repository: failed to scan row")
)
