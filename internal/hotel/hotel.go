package hotel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/avstrong/hotel/internal/logger"
)

const (
	minNameLength = 3
	vipThreshold  = 3
)

var (
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nationalIDPattern = regexp.MustCompile(`^[0-9]{8}[A-Z]$`)
)

type IDGenerator interface {
	GetID(ctx context.Context) (int, error)
}

type storageReader interface {
	Rooms(ctx context.Context) ([]Room, error)
	Room(ctx context.Context, number int) (*Room, error)
	Client(ctx context.Context, id int) (*Client, error)
	Clients(ctx context.Context) ([]Client, error)
	Bookings(ctx context.Context) ([]RoomBookings, error)
	ClientBookings(ctx context.Context, clientID int) ([]Booking, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveRoom(ctx context.Context, room *Room) error
	SaveClient(ctx context.Context, client *Client) error
	SaveBooking(ctx context.Context, booking *Booking) error
}

type storage interface {
	storageReader
	storageWriter
}

// IDGenerators keeps one sequence per entity kind.
type IDGenerators struct {
	Rooms    IDGenerator
	Clients  IDGenerator
	Bookings IDGenerator
}

type Conf struct {
	Info
	// Now anchors the VIP look-back window. Defaults to time.Now.
	Now        func() time.Time
	Strategies []PriceStrategy
}

// Manager is the hotel aggregate. All writes are serialized so that the
// scan-then-book sequence of ReserveRoom cannot hand one room to two callers.
type Manager struct {
	mu      sync.Mutex
	l       *logger.Logger
	storage storage
	ids     IDGenerators
	conf    Conf
}

func New(l *logger.Logger, storage storage, ids IDGenerators, conf Conf) *Manager {
	if conf.Now == nil {
		conf.Now = time.Now
	}

	//nolint:exhaustruct
	return &Manager{
		l:       l,
		storage: storage,
		ids:     ids,
		conf:    conf,
	}
}

func (m *Manager) Info() Info {
	return m.conf.Info
}

func (m *Manager) withinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, err = m.storage.BeginTransaction(ctx, "SERIALIZABLE")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				m.l.LogErrorf("Could not rollback hotel transaction after panic %v", p)
			}

			m.l.LogInfo("Transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				m.l.LogErrorf("Could not rollback hotel transaction after error %v", rbErr.Error())
			}

			return
		}

		if err = m.storage.CommitTransaction(ctx); err != nil {
			err = fmt.Errorf("commit transaction: %w", err)
		}
	}()

	return fn(ctx)
}

func validateRoom(roomType RoomType, basePrice float64) *InputError {
	inputErr := newInputError()

	if !roomType.Valid() {
		inputErr.addError("type", "room type must be set")
	}

	if !(basePrice > 0) || math.IsInf(basePrice, 1) {
		inputErr.addError("base_price", "base price must be greater than zero")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

func (m *Manager) saveNewRoom(ctx context.Context, roomType RoomType, basePrice float64) (*Room, error) {
	number, err := m.ids.Rooms.GetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNextID, err)
	}

	room := &Room{
		Number:    number,
		Type:      roomType,
		BasePrice: basePrice,
		Available: true,
	}

	if err := m.storage.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("save room %d to storage: %w", number, err)
	}

	return room, nil
}

// RegisterRoom adds an available room numbered after the last one.
func (m *Manager) RegisterRoom(ctx context.Context, roomType RoomType, basePrice float64) (*Room, error) {
	if inputErr := validateRoom(roomType, basePrice); inputErr != nil {
		return nil, inputErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var room *Room

	err := m.withinTransaction(ctx, func(ctx context.Context) error {
		var err error

		room, err = m.saveNewRoom(ctx, roomType, basePrice)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("register room: %w", err)
	}

	m.l.LogInfo("Room %d registered, type %v, base price %.2f", room.Number, room.Type, room.BasePrice)

	return room, nil
}

// RegisterRooms registers types[i] at prices[i]. Either every room is added
// or none is.
func (m *Manager) RegisterRooms(ctx context.Context, types []RoomType, prices []float64) ([]Room, error) {
	if len(types) != len(prices) {
		inputErr := newInputError()
		inputErr.addError("rooms", "types and prices must have the same length")

		return nil, inputErr
	}

	for i := range types {
		if inputErr := validateRoom(types[i], prices[i]); inputErr != nil {
			return nil, fmt.Errorf("room #%d: %w", i+1, inputErr)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rooms := make([]Room, 0, len(types))

	err := m.withinTransaction(ctx, func(ctx context.Context) error {
		for i := range types {
			room, err := m.saveNewRoom(ctx, types[i], prices[i])
			if err != nil {
				return err
			}

			rooms = append(rooms, *room)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register rooms: %w", err)
	}

	m.l.LogInfo("%d rooms registered", len(rooms))

	return rooms, nil
}

func validateClient(name, email, nationalID string) *InputError {
	inputErr := newInputError()

	switch {
	case utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength:
		inputErr.addError("name", "invalid name")
	case !emailPattern.MatchString(email):
		inputErr.addError("email", "invalid email")
	case !nationalIDPattern.MatchString(nationalID):
		inputErr.addError("national_id", "invalid id")
	default:
		return nil
	}

	return inputErr
}

// RegisterClient validates name, email and national id in that order and
// stops at the first failure.
func (m *Manager) RegisterClient(ctx context.Context, name, email, nationalID string, vip bool) (*Client, error) {
	if inputErr := validateClient(name, email, nationalID); inputErr != nil {
		return nil, inputErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var client *Client

	err := m.withinTransaction(ctx, func(ctx context.Context) error {
		id, err := m.ids.Clients.GetID(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNextID, err)
		}

		client = &Client{
			ID:         id,
			Name:       strings.TrimSpace(name),
			NationalID: nationalID,
			Email:      email,
			VIP:        vip,
		}

		if err := m.storage.SaveClient(ctx, client); err != nil {
			return fmt.Errorf("save client %d to storage: %w", id, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}

	m.l.LogInfo("Client %d registered, vip %v", client.ID, client.VIP)

	return client, nil
}

func firstAvailable(rooms []Room, roomType RoomType) *Room {
	for i := range rooms {
		if rooms[i].Type == roomType && rooms[i].Available {
			return &rooms[i]
		}
	}

	return nil
}

// recentBookings counts the client's bookings checking in after one year
// before today. The window follows the wall clock, not the new stay.
func (m *Manager) recentBookings(ctx context.Context, clientID int) (int, error) {
	bookings, err := m.storage.ClientBookings(ctx, clientID)
	if err != nil {
		return 0, fmt.Errorf("get bookings of client %d: %w", clientID, err)
	}

	since := yearBefore(dateOnly(m.conf.Now()))

	var count int

	for _, b := range bookings {
		if b.CheckIn.After(since) {
			count++
		}
	}

	return count, nil
}

// yearBefore moves d back one year, clamping 29 February to the 28th
// instead of rolling over into March.
func yearBefore(d time.Time) time.Time {
	prev := d.AddDate(-1, 0, 0)
	if prev.Day() != d.Day() {
		prev = prev.AddDate(0, 0, -prev.Day())
	}

	return prev
}

func (m *Manager) escalateVIP(ctx context.Context, client *Client) error {
	if client.VIP {
		return nil
	}

	count, err := m.recentBookings(ctx, client.ID)
	if err != nil {
		return err
	}

	if count <= vipThreshold {
		return nil
	}

	client.VIP = true

	if err := m.storage.SaveClient(ctx, client); err != nil {
		return fmt.Errorf("save client %d to storage: %w", client.ID, err)
	}

	m.l.LogInfo("Client %d promoted to VIP after %d bookings in the last year", client.ID, count)

	return nil
}

func (m *Manager) buildBooking(ctx context.Context, room Room, client Client, checkIn, checkOut time.Time) (*Booking, error) {
	nights := NightsBetween(checkIn, checkOut)

	total, err := m.quote(room, client, nights)
	if err != nil {
		return nil, fmt.Errorf("price booking for room %d: %w", room.Number, err)
	}

	// The id is taken after pricing; a failed quote must not consume one.
	id, err := m.ids.Bookings.GetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNextID, err)
	}

	return &Booking{
		ID:         id,
		RoomNumber: room.Number,
		RoomType:   room.Type,
		ClientID:   client.ID,
		ClientName: client.Name,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     nights,
		TotalPrice: total,
		CreatedAt:  m.conf.Now().UTC(),
	}, nil
}

// ReserveRoom books the first available room of roomType in registration
// order and returns its number. Failures come back as a negative
// ReservationCode value; a non-nil error means an internal failure and the
// returned number is 0. In every non-positive case nothing was booked.
//
//nolint:cyclop // the checks run in a fixed order
func (m *Manager) ReserveRoom(
	ctx context.Context,
	clientID int,
	roomType RoomType,
	checkIn, checkOut time.Time,
) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rooms, err := m.storage.Rooms(ctx)
	if err != nil {
		return 0, fmt.Errorf("get rooms from storage: %w", err)
	}

	if len(rooms) == 0 {
		m.l.LogWarnf("Reservation refused: %v", CodeNoRooms)

		return int(CodeNoRooms), nil
	}

	client, err := m.storage.Client(ctx, clientID)
	if errors.Is(err, ErrRecordNotFound) {
		m.l.LogWarnf("Reservation refused for client %d: %v", clientID, CodeUnknownClient)

		return int(CodeUnknownClient), nil
	}

	if err != nil {
		return 0, fmt.Errorf("get client %d from storage: %w", clientID, err)
	}

	checkIn, checkOut = dateOnly(checkIn), dateOnly(checkOut)

	if checkIn.After(checkOut) {
		m.l.LogWarnf("Reservation refused for client %d: %v", clientID, CodeInvalidDates)

		return int(CodeInvalidDates), nil
	}

	room := firstAvailable(rooms, roomType)
	if room == nil {
		m.l.LogWarnf("Reservation refused for client %d: %v %v", clientID, CodeNoAvailability, roomType)

		return int(CodeNoAvailability), nil
	}

	var booking *Booking

	err = m.withinTransaction(ctx, func(ctx context.Context) error {
		if err := m.escalateVIP(ctx, client); err != nil {
			return err
		}

		b, err := m.buildBooking(ctx, *room, *client, checkIn, checkOut)
		if err != nil {
			return err
		}

		booking = b

		if err := m.storage.SaveBooking(ctx, booking); err != nil {
			return fmt.Errorf("save booking %d to storage: %w", booking.ID, err)
		}

		room.Available = false

		if err := m.storage.SaveRoom(ctx, room); err != nil {
			return fmt.Errorf("save room %d to storage: %w", room.Number, err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("reserve room %d: %w", room.Number, err)
	}

	m.l.LogInfo(
		"Booking %d created, room %d, client %d, %d nights, total %.2f",
		booking.ID,
		booking.RoomNumber,
		booking.ClientID,
		booking.Nights,
		booking.TotalPrice,
	)

	return room.Number, nil
}

// ReleaseRoom makes a room available again. Its bookings are kept.
func (m *Manager) ReleaseRoom(ctx context.Context, number int) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, err := m.storage.Room(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("get room %d from storage: %w", number, err)
	}

	room.Available = true

	err = m.withinTransaction(ctx, func(ctx context.Context) error {
		return m.storage.SaveRoom(ctx, room)
	})
	if err != nil {
		return nil, fmt.Errorf("release room %d: %w", number, err)
	}

	m.l.LogInfo("Room %d released", number)

	return room, nil
}

func (m *Manager) Room(ctx context.Context, number int) (*Room, error) {
	room, err := m.storage.Room(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("get room %d from storage: %w", number, err)
	}

	return room, nil
}

func (m *Manager) Rooms(ctx context.Context) ([]Room, error) {
	rooms, err := m.storage.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rooms from storage: %w", err)
	}

	return rooms, nil
}

func (m *Manager) AvailableRooms(ctx context.Context) ([]Room, error) {
	rooms, err := m.Rooms(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]Room, 0, len(rooms))

	for _, room := range rooms {
		if room.Available {
			available = append(available, room)
		}
	}

	return available, nil
}

func (m *Manager) Client(ctx context.Context, id int) (*Client, error) {
	client, err := m.storage.Client(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client %d from storage: %w", id, err)
	}

	return client, nil
}

// Clients are ordered by id.
func (m *Manager) Clients(ctx context.Context) ([]Client, error) {
	clients, err := m.storage.Clients(ctx)
	if err != nil {
		return nil, fmt.Errorf("get clients from storage: %w", err)
	}

	return clients, nil
}

// Bookings groups every booking by room, rooms in registration order.
func (m *Manager) Bookings(ctx context.Context) ([]RoomBookings, error) {
	bookings, err := m.storage.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get bookings from storage: %w", err)
	}

	return bookings, nil
}
