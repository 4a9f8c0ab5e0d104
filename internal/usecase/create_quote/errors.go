package create_quote

import (
	"errors"
)

var (
	ErrInternal = errors.New("create_quote: internal error")
)
