package discount

import "errors"

var ErrInvalidRate = errors.New("discount rate must be between 0 and 1")
