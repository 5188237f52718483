package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/input"
)

type entry struct {
	label string
	run   handler
}

type menu struct {
	title   string
	entries []entry
	back    string
	option  *input.Field[int]
}

func (c *Console) newMenu(title, back string, entries ...entry) *menu {
	return &menu{
		title:   title,
		entries: entries,
		back:    back,
		option:  input.Int(c.src, c.out, 1, len(entries)+1),
	}
}

func (c *Console) render(m *menu) {
	fmt.Fprintf(c.out, "\n|---- %s ----|\n", m.title)

	for i, e := range m.entries {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, e.label)
	}

	fmt.Fprintf(c.out, "%d. %s\n", len(m.entries)+1, m.back)
}

// runMenu loops until the back entry is chosen. Failed actions were already
// reported, so only a closed input ends the loop early.
func (c *Console) runMenu(ctx context.Context, m *menu) error {
	last := len(m.entries) + 1

	for ctx.Err() == nil {
		c.render(m)

		option, err := m.option.Read(fmt.Sprintf("Select an option (1-%d): ", last))
		if err != nil {
			return err
		}

		if option == last {
			return nil
		}

		if err := m.entries[option-1].run(ctx); errors.Is(err, io.EOF) {
			return err
		}
	}

	return nil
}

func (c *Console) action(name string, h handler) handler {
	return c.applyMiddlewares(
		h,
		c.recoverMiddleware(),
		c.reportMiddleware(),
		c.loggerMiddleware(name),
		c.traceMiddleware(),
	)
}

func (c *Console) submenu(m *menu) handler {
	return func(ctx context.Context) error {
		return c.runMenu(ctx, m)
	}
}

func (c *Console) addRoutes() *menu {
	rooms := c.newMenu("ROOMS", "Back",
		entry{label: "Register room", run: c.action("register_room", c.registerRoomHandler)},
		entry{label: "List available rooms", run: c.action("list_available_rooms", c.listAvailableRoomsHandler)},
		entry{label: "Release room", run: c.action("release_room", c.releaseRoomHandler)},
	)

	reservations := c.newMenu("RESERVATIONS", "Back",
		entry{label: "Make reservation", run: c.action("make_reservation", c.makeReservationHandler)},
		entry{label: "List reservations", run: c.action("list_reservations", c.listReservationsHandler)},
	)

	clients := c.newMenu("CLIENTS", "Back",
		entry{label: "Register client", run: c.action("register_client", c.registerClientHandler)},
		entry{label: "List clients", run: c.action("list_clients", c.listClientsHandler)},
	)

	return c.newMenu("HOTEL MANAGEMENT", "Exit",
		entry{label: "Rooms", run: c.submenu(rooms)},
		entry{label: "Reservations", run: c.submenu(reservations)},
		entry{label: "Clients", run: c.submenu(clients)},
	)
}

func (c *Console) registerRoomHandler(ctx context.Context) error {
	roomType, err := c.fields.roomType.Read(c.roomTypePrompt("Type"))
	if err != nil {
		return err
	}

	price, err := c.fields.basePrice.Read("Base price per night: ")
	if err != nil {
		return err
	}

	room, err := c.manager.RegisterRoom(ctx, roomType, price)
	if err != nil {
		return fmt.Errorf("register room: %w", err)
	}

	fmt.Fprintf(c.out, "Room %d registered.\n", room.Number)

	return nil
}

func (c *Console) listAvailableRoomsHandler(ctx context.Context) error {
	rooms, err := c.manager.AvailableRooms(ctx)
	if err != nil {
		return fmt.Errorf("list available rooms: %w", err)
	}

	if len(rooms) == 0 {
		fmt.Fprintln(c.out, "No rooms available.")

		return nil
	}

	for _, room := range rooms {
		fmt.Fprintf(
			c.out,
			"Room: %d | Type: %s | Capacity: %d | Price: %.2f\n",
			room.Number,
			room.Type,
			room.Type.Capacity(),
			room.BasePrice,
		)
	}

	return nil
}

func (c *Console) releaseRoomHandler(ctx context.Context) error {
	number, err := c.fields.roomNumber.Read("Room number: ")
	if err != nil {
		return err
	}

	room, err := c.manager.ReleaseRoom(ctx, number)
	if err != nil {
		return fmt.Errorf("release room: %w", err)
	}

	fmt.Fprintf(c.out, "Room %d is available again.\n", room.Number)

	return nil
}

func (c *Console) makeReservationHandler(ctx context.Context) error {
	clientID, err := c.fields.clientID.Read("Client ID: ")
	if err != nil {
		return err
	}

	roomType, err := c.fields.roomType.Read(c.roomTypePrompt("Room type"))
	if err != nil {
		return err
	}

	checkIn, err := c.fields.checkIn.Read(fmt.Sprintf("Check-in date (%s): ", c.conf.DateLayout))
	if err != nil {
		return err
	}

	checkOut, err := input.Date(c.src, c.out, c.conf.DateLayout).
		WithMessages("Check-out must be a valid date after " + checkIn.Format(c.conf.DateLayout) + ".").
		WithCheck(func(d time.Time) bool { return d.After(checkIn) }).
		Read(fmt.Sprintf("Check-out date (%s): ", c.conf.DateLayout))
	if err != nil {
		return err
	}

	number, err := c.manager.ReserveRoom(ctx, clientID, roomType, checkIn, checkOut)
	if err != nil {
		return fmt.Errorf("reserve room: %w", err)
	}

	if number <= 0 {
		fmt.Fprintf(c.out, "Reservation not possible: %v.\n", hotel.ReservationCode(number))

		return nil
	}

	fmt.Fprintf(c.out, "Reservation confirmed. Room assigned: %d\n", number)

	if b, ok := c.latestBooking(ctx, number); ok {
		fmt.Fprintf(c.out, "Nights: %d | Total price: %.2f\n", b.Nights, b.TotalPrice)
	}

	return nil
}

func (c *Console) latestBooking(ctx context.Context, roomNumber int) (hotel.Booking, bool) {
	all, err := c.manager.Bookings(ctx)
	if err != nil {
		c.l.LogWarnf("Could not load bookings of room %d: %v", roomNumber, err.Error())

		return hotel.Booking{}, false
	}

	for _, rb := range all {
		if rb.RoomNumber == roomNumber && len(rb.Bookings) > 0 {
			return rb.Bookings[len(rb.Bookings)-1], true
		}
	}

	return hotel.Booking{}, false
}

func (c *Console) listReservationsHandler(ctx context.Context) error {
	all, err := c.manager.Bookings(ctx)
	if err != nil {
		return fmt.Errorf("list reservations: %w", err)
	}

	var printed int

	for _, rb := range all {
		if len(rb.Bookings) == 0 {
			continue
		}

		fmt.Fprintf(c.out, "\nRoom %d:\n", rb.RoomNumber)

		for _, b := range rb.Bookings {
			fmt.Fprintf(
				c.out,
				"  Booking #%d: %s to %s | Client: %s (ID: %d) | Nights: %d | Total: %.2f\n",
				b.ID,
				b.CheckIn.Format(c.conf.DateLayout),
				b.CheckOut.Format(c.conf.DateLayout),
				b.ClientName,
				b.ClientID,
				b.Nights,
				b.TotalPrice,
			)

			printed++
		}
	}

	if printed == 0 {
		fmt.Fprintln(c.out, "No reservations registered.")
	}

	return nil
}

func (c *Console) registerClientHandler(ctx context.Context) error {
	name, err := c.fields.name.Read("Client name: ")
	if err != nil {
		return err
	}

	email, err := c.fields.email.Read("Client email: ")
	if err != nil {
		return err
	}

	nationalID, err := c.fields.nationalID.Read("National ID (8 digits + letter): ")
	if err != nil {
		return err
	}

	vip, err := c.fields.vip.Read("VIP? (yes/no): ")
	if err != nil {
		return err
	}

	client, err := c.manager.RegisterClient(ctx, name, email, nationalID, vip)
	if err != nil {
		return fmt.Errorf("register client: %w", err)
	}

	fmt.Fprintf(c.out, "Client registered with ID: %d\n", client.ID)

	return nil
}

func (c *Console) listClientsHandler(ctx context.Context) error {
	clients, err := c.manager.Clients(ctx)
	if err != nil {
		return fmt.Errorf("list clients: %w", err)
	}

	if len(clients) == 0 {
		fmt.Fprintln(c.out, "No clients registered.")

		return nil
	}

	for _, client := range clients {
		status := "Regular"
		if client.VIP {
			status = "VIP"
		}

		fmt.Fprintf(
			c.out,
			"ID: %d | Name: %s | National ID: %s | Email: %s | %s\n",
			client.ID,
			client.Name,
			client.NationalID,
			client.Email,
			status,
		)
	}

	return nil
}
