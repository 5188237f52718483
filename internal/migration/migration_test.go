package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/avstrong/hotel/internal/discount"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/idgen/simple"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRegistrar struct{}

func (failingRegistrar) RegisterRooms(context.Context, []hotel.RoomType, []float64) ([]hotel.Room, error) {
	return nil, errors.New("storage down")
}

func TestUp(t *testing.T) {
	ctx := context.Background()
	m := hotel.New(
		logger.NewNop(),
		memory.New(memory.Config{L: logger.NewNop()}),
		hotel.IDGenerators{Rooms: simple.New(), Clients: simple.New(), Bookings: simple.New()},
		hotel.Conf{Strategies: discount.Defaults()},
	)

	require.NoError(t, Up(ctx, logger.NewNop(), m))

	rooms, err := m.AvailableRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 4)

	for i, rt := range hotel.RoomTypes() {
		assert.Equal(t, i+1, rooms[i].Number)
		assert.Equal(t, rt, rooms[i].Type)
	}

	assert.Equal(t, 200.0, rooms[3].BasePrice)
}

func TestUp_Error(t *testing.T) {
	err := Up(context.Background(), logger.NewNop(), failingRegistrar{})
	assert.ErrorContains(t, err, "register demo rooms")
}
