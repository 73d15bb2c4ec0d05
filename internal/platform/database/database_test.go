package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	d, err := Dialector("", "host=localhost")
	require.NoError(t, err)
	require.Equal(t, "postgres", d.Name())

	d, err = Dialector("MySQL", "user:pass@tcp(localhost:3306)/orders")
	require.NoError(t, err)
	require.Equal(t, "mysql", d.Name())

	_, err = Dialector("sqlite", "file.db")
	require.Error(t, err)
}

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), DriverPostgres, "  ")
	require.Error(t, err)
}

func TestConnectOrFallback_EmptyDSN(t *testing.T) {
	db, cleanup := ConnectOrFallback(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), DriverPostgres, "")
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
