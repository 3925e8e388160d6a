package main

import (
	"flag"
	"log/slog"
	"os"

	"campuseats/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		logger.Error("usage: migrate <up|down|version>")
		os.Exit(1)
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "file://migrations"
	}

	m, err := migrate.New(migrationsPath, postgresURL)
	if err != nil {
		logger.Error("Failed to create migrate instance", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _, _ = m.Close() }()

	if err := run(m, args[0], logger); err != nil {
		logger.Error("Migration failed", slog.String("command", args[0]), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, command string, logger *slog.Logger) error {
	switch command {
	case "up":
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No pending migrations")

			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}
		logger.Info("Migrations applied")

	case "down":
		err := m.Steps(-1)
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No migrations to roll back")

			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}
		logger.Info("Rolled back one migration")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("No migrations applied yet")

			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}
		logger.Info("Current migration version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	default:
		return errors.Errorf("unknown command %q", command)
	}

	return nil
}
