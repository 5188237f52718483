package migration

import (
	"context"
	"fmt"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

type roomRegistrar interface {
	RegisterRooms(ctx context.Context, types []hotel.RoomType, prices []float64) ([]hotel.Room, error)
}

// Up registers the demo rooms, one of each type.
func Up(ctx context.Context, l *logger.Logger, registrar roomRegistrar) error {
	types := []hotel.RoomType{hotel.Single, hotel.Double, hotel.Suite, hotel.Bunk}
	prices := []float64{50, 80, 120, 200} //nolint:gomnd

	rooms, err := registrar.RegisterRooms(ctx, types, prices)
	if err != nil {
		return fmt.Errorf("register demo rooms: %w", err)
	}

	l.LogInfo("Demo migration registered %d rooms", len(rooms))

	return nil
}
