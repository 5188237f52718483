package memory

import (
	"errors"
	"fmt"

	"github.com/avstrong/hotel/internal/hotel"
)

var (
	ErrTransactionIDNotFoundInCtx = errors.New("write outside of a hotel transaction")
	ErrTransactionNotFound        = errors.New("hotel transaction is not open")
	ErrUnknownRoom                = fmt.Errorf("booking for an unregistered room: %w", hotel.ErrLogic)
)
