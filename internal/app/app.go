package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/hotel/internal/discount"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/idgen/simple"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/migration"
	"github.com/avstrong/hotel/internal/storage/memory"
	"github.com/avstrong/hotel/internal/transport/cli"
)

type Conf struct {
	L          *logger.Logger
	In         io.Reader
	Out        io.Writer
	Hotel      hotel.Info
	DateLayout string
	SeedRooms  bool
}

func DefaultConf(l *logger.Logger, in io.Reader, out io.Writer) Conf {
	return Conf{
		L:   l,
		In:  in,
		Out: out,
		Hotel: hotel.Info{
			Name:    "El Mirador",
			Address: "6 Development Street",
			Phone:   "123456789",
		},
		DateLayout: "2006-01-02",
		SeedRooms:  true,
	}
}

func Run(conf Conf) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	return run(ctx, conf)
}

func run(ctx context.Context, conf Conf) error {
	l := conf.L

	storage := memory.New(memory.Config{L: l.Named("storage")})

	manager := hotel.New(
		l.Named("hotel"),
		storage,
		hotel.IDGenerators{
			Rooms:    simple.New(),
			Clients:  simple.New(),
			Bookings: simple.New(),
		},
		hotel.Conf{
			Info:       conf.Hotel,
			Now:        time.Now,
			Strategies: discount.Defaults(),
		},
	)

	if conf.SeedRooms {
		if err := migration.Up(ctx, l.Named("migration"), manager); err != nil {
			return fmt.Errorf("up demo migration: %w", err)
		}
	}

	console, err := cli.New(cli.Conf{
		L:          l.Named("console"),
		In:         conf.In,
		Out:        conf.Out,
		DateLayout: conf.DateLayout,
	}, manager)
	if err != nil {
		return fmt.Errorf("init console: %w", err)
	}

	l.LogInfo("Console session started for %s", conf.Hotel.Name)

	if err := console.Run(ctx); err != nil {
		return fmt.Errorf("run console: %w", err)
	}

	l.LogInfo("Console session stopped gracefully")

	return nil
}
