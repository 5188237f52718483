package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

type Config struct {
	L *logger.Logger
}

// transaction buffers writes until commit. Rooms and clients keep the order
// they were first saved in; a second save of the same key replaces the first.
type transaction struct {
	id       string
	rooms    []*hotel.Room
	clients  []*hotel.Client
	bookings []*hotel.Booking
}

func (t *transaction) stageRoom(room *hotel.Room) {
	for i, staged := range t.rooms {
		if staged.Number == room.Number {
			t.rooms[i] = room

			return
		}
	}

	t.rooms = append(t.rooms, room)
}

func (t *transaction) stageClient(client *hotel.Client) {
	for i, staged := range t.clients {
		if staged.ID == client.ID {
			t.clients[i] = client

			return
		}
	}

	t.clients = append(t.clients, client)
}

func (t *transaction) hasRoom(number int) bool {
	for _, staged := range t.rooms {
		if staged.Number == number {
			return true
		}
	}

	return false
}

// DB holds the whole hotel: rooms in registration order, clients by id and
// bookings by room number. Reads only see committed data and always return
// copies.
type DB struct {
	mu           sync.Mutex
	l            *logger.Logger
	rooms        []*hotel.Room
	roomIndex    map[int]int
	clients      map[int]*hotel.Client
	bookings     map[int][]*hotel.Booking
	transactions map[string]*transaction
	nextTrxID    int64
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:            conf.L,
		roomIndex:    make(map[int]int),
		clients:      make(map[int]*hotel.Client),
		bookings:     make(map[int][]*hotel.Booking),
		transactions: make(map[string]*transaction),
	}
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	//nolint:exhaustruct
	db.transactions[trxID] = &transaction{id: trxID}

	return contextWithTrx(ctx, trxID), nil
}

// transaction must be called with db.mu held.
func (db *DB) transaction(ctx context.Context) (*transaction, error) {
	trxID, ok := trxIDFrom(ctx)
	if !ok {
		return nil, ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return nil, fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	return trx, nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	for _, room := range trx.rooms {
		if idx, ok := db.roomIndex[room.Number]; ok {
			db.rooms[idx] = room

			continue
		}

		db.roomIndex[room.Number] = len(db.rooms)
		db.rooms = append(db.rooms, room)
		db.bookings[room.Number] = []*hotel.Booking{}
	}

	for _, client := range trx.clients {
		db.clients[client.ID] = client
	}

	for _, booking := range trx.bookings {
		db.bookings[booking.RoomNumber] = append(db.bookings[booking.RoomNumber], booking)
	}

	delete(db.transactions, trx.id)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	delete(db.transactions, trx.id)

	db.l.LogInfo("Transaction %s has been roll backed", trx.id)

	return nil
}

func (db *DB) SaveRoom(ctx context.Context, room *hotel.Room) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	r := *room
	trx.stageRoom(&r)

	return nil
}

func (db *DB) SaveClient(ctx context.Context, client *hotel.Client) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	c := *client
	trx.stageClient(&c)

	return nil
}

func (db *DB) SaveBooking(ctx context.Context, booking *hotel.Booking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	if _, ok := db.roomIndex[booking.RoomNumber]; !ok && !trx.hasRoom(booking.RoomNumber) {
		return fmt.Errorf("booking %d, room %d: %w", booking.ID, booking.RoomNumber, ErrUnknownRoom)
	}

	b := *booking
	trx.bookings = append(trx.bookings, &b)

	return nil
}

func (db *DB) Rooms(_ context.Context) ([]hotel.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rooms := make([]hotel.Room, 0, len(db.rooms))

	for _, room := range db.rooms {
		rooms = append(rooms, *room)
	}

	return rooms, nil
}

func (db *DB) Room(_ context.Context, number int) (*hotel.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx, ok := db.roomIndex[number]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", number, hotel.ErrRecordNotFound)
	}

	room := *db.rooms[idx]

	return &room, nil
}

func (db *DB) Client(_ context.Context, id int) (*hotel.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	client, ok := db.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %d: %w", id, hotel.ErrRecordNotFound)
	}

	c := *client

	return &c, nil
}

func (db *DB) Clients(_ context.Context) ([]hotel.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	clients := make([]hotel.Client, 0, len(db.clients))

	for _, client := range db.clients {
		clients = append(clients, *client)
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].ID < clients[j].ID
	})

	return clients, nil
}

func (db *DB) Bookings(_ context.Context) ([]hotel.RoomBookings, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]hotel.RoomBookings, 0, len(db.rooms))

	for _, room := range db.rooms {
		stored := db.bookings[room.Number]
		bookings := make([]hotel.Booking, 0, len(stored))

		for _, b := range stored {
			bookings = append(bookings, *b)
		}

		result = append(result, hotel.RoomBookings{
			RoomNumber: room.Number,
			Bookings:   bookings,
		})
	}

	return result, nil
}

func (db *DB) ClientBookings(_ context.Context, clientID int) ([]hotel.Booking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []hotel.Booking

	for _, room := range db.rooms {
		for _, b := range db.bookings[room.Number] {
			if b.ClientID == clientID {
				result = append(result, *b)
			}
		}
	}

	return result, nil
}
