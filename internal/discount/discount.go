package discount

import (
	"fmt"

	"github.com/avstrong/hotel/internal/hotel"
)

const (
	vipRate           = 0.10
	longStayRate      = 0.05
	longStayMinNights = 7
)

// VIPDiscount takes Rate off the running total for VIP clients.
type VIPDiscount struct {
	Rate float64
}

func (d *VIPDiscount) Apply(q *hotel.Quote) error {
	if d.Rate < 0 || d.Rate > 1 {
		return fmt.Errorf("vip discount rate %v: %w", d.Rate, ErrInvalidRate)
	}

	if q.VIP {
		q.Total *= 1 - d.Rate
	}

	return nil
}

// LongStayDiscount takes Rate off the running total for stays longer than
// MinNights.
type LongStayDiscount struct {
	MinNights int
	Rate      float64
}

func (d *LongStayDiscount) Apply(q *hotel.Quote) error {
	if d.Rate < 0 || d.Rate > 1 {
		return fmt.Errorf("long stay discount rate %v: %w", d.Rate, ErrInvalidRate)
	}

	if q.Nights > d.MinNights {
		q.Total *= 1 - d.Rate
	}

	return nil
}

// Defaults returns the house discounts, VIP first, then long stay. Both
// stack multiplicatively.
func Defaults() []hotel.PriceStrategy {
	return []hotel.PriceStrategy{
		&VIPDiscount{Rate: vipRate},
		&LongStayDiscount{MinNights: longStayMinNights, Rate: longStayRate},
	}
}
