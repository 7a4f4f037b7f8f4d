package record

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidData  = errors.New("invalid record data")
	ErrScopeChanged = errors.New("record scope cannot change")
)
