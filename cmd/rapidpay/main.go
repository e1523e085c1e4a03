package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alovak/rapidpay/ledger"
	"github.com/ardanlabs/conf"
	"golang.org/x/exp/slog"
)

type config struct {
	HTTPAddr            string        `conf:"default:localhost:8080,env:HTTP_ADDR"`
	DatabaseDSN         string        `conf:"env:DB_DSN"`
	StorageBackend      string        `conf:"default:pg,env:STORAGE_BACKEND"`
	FeeRotationInterval time.Duration `conf:"default:1h,env:FEE_ROTATION_INTERVAL"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout))

	if err := run(logger); err != nil {
		logger.Error("app failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	var cfg config
	help, err := conf.ParseOSArgs("RAPIDPAY", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	app := ledger.NewApp(logger, &ledger.Config{
		HTTPAddr:            cfg.HTTPAddr,
		DatabaseDSN:         cfg.DatabaseDSN,
		StorageBackend:      cfg.StorageBackend,
		FeeRotationInterval: cfg.FeeRotationInterval,
	})

	if err := app.Start(); err != nil {
		return fmt.Errorf("starting app: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	app.Shutdown()

	return nil
}
