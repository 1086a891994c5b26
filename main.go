package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/joho/godotenv"

	"github.com/marcus-crane/pholish-mpris/config"
	"github.com/marcus-crane/pholish-mpris/shared"
)

func main() {

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.GetLogLevel()})))

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		slog.Error("Failed to connect to the D-Bus session bus. Make sure a session bus is running and DBUS_SESSION_BUS_ADDRESS is set.",
			slog.String("stack", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := NewService(cfg, conn)
	if err := service.Start(ctx); err != nil {
		slog.Error("Failed to start MPRIS bridge", slog.String("stack", err.Error()))
		service.Stop()
		conn.Close()
		os.Exit(1)
	}

	slog.Info("Pholish MPRIS bridge started",
		slog.String("bus_name", shared.BUS_NAME),
		slog.String("watching", cfg.StatusPath()))

	<-ctx.Done()

	slog.Info("Shutting down Pholish MPRIS bridge")
	service.Stop()
	slog.Info("Pholish MPRIS bridge stopped")
}
