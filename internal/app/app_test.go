package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/avstrong/hotel/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SeededSession(t *testing.T) {
	var out bytes.Buffer

	conf := DefaultConf(logger.NewNop(), strings.NewReader("1\n2\n4\n4\n"), &out)

	require.NoError(t, run(context.Background(), conf))

	assert.Contains(t, out.String(), "El Mirador")
	assert.Contains(t, out.String(), "Room: 1 | Type: SINGLE | Capacity: 1 | Price: 50.00")
	assert.Contains(t, out.String(), "Room: 4 | Type: BUNK | Capacity: 8 | Price: 200.00")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestRun_WithoutSeed(t *testing.T) {
	var out bytes.Buffer

	conf := DefaultConf(logger.NewNop(), strings.NewReader("1\n2\n4\n4\n"), &out)
	conf.SeedRooms = false

	require.NoError(t, run(context.Background(), conf))

	assert.Contains(t, out.String(), "No rooms available.")
}

func TestRun_InvalidConsole(t *testing.T) {
	conf := DefaultConf(logger.NewNop(), nil, &bytes.Buffer{})

	err := run(context.Background(), conf)
	assert.ErrorContains(t, err, "init console")
}
