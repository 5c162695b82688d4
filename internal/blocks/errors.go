package blocks

import "errors"

var (
	ErrNotFound     = errors.New("block not found")
	ErrDuplicateID  = errors.New("duplicate block id")
	ErrInvalidBlock = errors.New("invalid block")
)
