package hotel

import "time"

// Quote is the price under construction. Strategies see the stay and the
// client status as they were when the booking was created.
type Quote struct {
	BasePrice float64
	Nights    int
	VIP       bool
	Total     float64
}

type PriceStrategy interface {
	Apply(q *Quote) error
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts calendar days from checkIn to checkOut. It is negative
// when checkOut comes first.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(dateOnly(checkOut).Sub(dateOnly(checkIn)) / (24 * time.Hour)) //nolint:gomnd
}

func (m *Manager) quote(room Room, client Client, nights int) (float64, error) {
	q := &Quote{
		BasePrice: room.BasePrice,
		Nights:    nights,
		VIP:       client.VIP,
		Total:     room.BasePrice * float64(nights),
	}

	for _, strategy := range m.conf.Strategies {
		if err := strategy.Apply(q); err != nil {
			return 0, err
		}
	}

	return q.Total, nil
}
