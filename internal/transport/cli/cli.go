package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/input"
	"github.com/avstrong/hotel/internal/logger"
)

const defaultDateLayout = "2006-01-02"

type hotelManager interface {
	Info() hotel.Info
	RegisterRoom(ctx context.Context, roomType hotel.RoomType, basePrice float64) (*hotel.Room, error)
	AvailableRooms(ctx context.Context) ([]hotel.Room, error)
	ReleaseRoom(ctx context.Context, number int) (*hotel.Room, error)
	ReserveRoom(ctx context.Context, clientID int, roomType hotel.RoomType, checkIn, checkOut time.Time) (int, error)
	Bookings(ctx context.Context) ([]hotel.RoomBookings, error)
	RegisterClient(ctx context.Context, name, email, nationalID string, vip bool) (*hotel.Client, error)
	Clients(ctx context.Context) ([]hotel.Client, error)
}

type Conf struct {
	L          *logger.Logger
	In         io.Reader
	Out        io.Writer
	DateLayout string
}

// gatedWriter drops every write once closed. The menu goroutine may still be
// blocked on input after Run returns; anything it prints later is discarded.
type gatedWriter struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func (g *gatedWriter) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return len(p), nil
	}

	return g.w.Write(p)
}

func (g *gatedWriter) close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
}

type fields struct {
	roomType   *input.Field[hotel.RoomType]
	basePrice  *input.Field[float64]
	roomNumber *input.Field[int]
	clientID   *input.Field[int]
	checkIn    *input.Field[time.Time]
	name       *input.Field[string]
	email      *input.Field[string]
	nationalID *input.Field[string]
	vip        *input.Field[bool]
}

// Console is the operator session: nested menus over a single input stream.
type Console struct {
	l       *logger.Logger
	conf    Conf
	src     input.Source
	out     *gatedWriter
	manager hotelManager
	fields  fields
	main    *menu
}

func New(conf Conf, manager hotelManager) (*Console, error) {
	if conf.L == nil || conf.In == nil || conf.Out == nil || manager == nil {
		return nil, ErrInvalidConf
	}

	if conf.DateLayout == "" {
		conf.DateLayout = defaultDateLayout
	}

	src := input.NewSource(conf.In)
	out := &gatedWriter{w: conf.Out} //nolint:exhaustruct

	//nolint:exhaustruct
	c := &Console{
		l:       conf.L,
		conf:    conf,
		src:     src,
		out:     out,
		manager: manager,
		fields: fields{
			roomType:   input.Enum(src, out, hotel.RoomTypes()),
			basePrice:  input.Float(src, out, "base price", 0, math.MaxFloat64),
			roomNumber: input.Int(src, out, 1, math.MaxInt),
			clientID:   input.Int(src, out, 1, math.MaxInt),
			checkIn:    input.Date(src, out, conf.DateLayout),
			name:       input.Text(src, out, "name"),
			email:      input.Text(src, out, "email"),
			nationalID: input.Text(src, out, "national id"),
			vip:        input.YesNo(src, out),
		},
	}

	c.main = c.addRoutes()

	return c, nil
}

// Run shows the banner and the main menu until the operator exits, the input
// ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	info := c.manager.Info()

	fmt.Fprintf(c.out, "%s\n%s | %s\n", info.Name, info.Address, info.Phone)

	done := make(chan error, 1)

	go func() {
		done <- c.runMenu(ctx, c.main)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out, "\nInterrupted.")
		c.out.close()

		return nil
	case err := <-done:
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("run main menu: %w", err)
		}

		fmt.Fprintln(c.out, "Goodbye.")

		return nil
	}
}

func (c *Console) roomTypePrompt(label string) string {
	types := hotel.RoomTypes()
	options := make([]string, 0, len(types))

	for _, t := range types {
		options = append(options, fmt.Sprintf("%s up to %d", t, t.Capacity()))
	}

	return fmt.Sprintf("%s (%s): ", label, strings.Join(options, ", "))
}

// describe turns an action error into something the operator can act on.
func describe(err error) string {
	if inputErr := hotel.IsInputError(err); inputErr != nil {
		var messages []string

		for _, msgs := range inputErr.Fields() {
			messages = append(messages, msgs...)
		}

		sort.Strings(messages)

		return strings.Join(messages, "; ")
	}

	if errors.Is(err, hotel.ErrRecordNotFound) {
		return "not found"
	}

	return "unexpected error"
}
