package cli

import "errors"

var (
	ErrPanic       = errors.New("panic in console action")
	ErrInvalidConf = errors.New("invalid console configuration")
)
