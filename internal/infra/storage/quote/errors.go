package quote

import "errors"

var (
	ErrBuildQuery = errors.New("quote.repository: failed to build query")
	ErrExecQuery  = errors.New("quote.repository: failed to execute query")
)
