package progress

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnknownAction     = errors.New("unknown action")
)
