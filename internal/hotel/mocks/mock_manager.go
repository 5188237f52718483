package mocks

import (
	"context"
	"time"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/stretchr/testify/mock"
)

// MockManager is a mock implementation of the hotel aggregate as seen by the console.
type MockManager struct {
	mock.Mock
}

func (m *MockManager) Info() hotel.Info {
	args := m.Called()
	return args.Get(0).(hotel.Info)
}

func (m *MockManager) RegisterRoom(ctx context.Context, roomType hotel.RoomType, basePrice float64) (*hotel.Room, error) {
	args := m.Called(ctx, roomType, basePrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Room), args.Error(1)
}

func (m *MockManager) AvailableRooms(ctx context.Context) ([]hotel.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hotel.Room), args.Error(1)
}

func (m *MockManager) ReleaseRoom(ctx context.Context, number int) (*hotel.Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Room), args.Error(1)
}

func (m *MockManager) ReserveRoom(
	ctx context.Context,
	clientID int,
	roomType hotel.RoomType,
	checkIn, checkOut time.Time,
) (int, error) {
	args := m.Called(ctx, clientID, roomType, checkIn, checkOut)
	return args.Int(0), args.Error(1)
}

func (m *MockManager) Bookings(ctx context.Context) ([]hotel.RoomBookings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hotel.RoomBookings), args.Error(1)
}

func (m *MockManager) RegisterClient(ctx context.Context, name, email, nationalID string, vip bool) (*hotel.Client, error) {
	args := m.Called(ctx, name, email, nationalID, vip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Client), args.Error(1)
}

func (m *MockManager) Clients(ctx context.Context) ([]hotel.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hotel.Client), args.Error(1)
}
