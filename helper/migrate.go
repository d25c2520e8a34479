package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/postgres"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"

	migrationsSource = "file://migrations/postgres"
)

func getConnection(cfg *config.Config) (*migrate.Migrate, error) {
	var extra url.Values
	if cfg.DB.Postgres.MigrationTable != "" {
		extra = url.Values{"x-migrations-table": {cfg.DB.Postgres.MigrationTable}}
	}

	connectionString := postgres.DSN(cfg, cfg.DB.Postgres.Write, extra)

	mig, err := migrate.New(migrationsSource, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies action against the write database. ErrNoChange is not an error.
func Runner(config *config.Config, action Action) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	var runErr error

	switch action {
	case ActionUp:
		runErr = mig.Up()
	case ActionDown:
		runErr = mig.Steps(-1)
	case ActionStepUp:
		runErr = mig.Steps(1)
	case ActionDrop:
		runErr = mig.Down()
	case ActionVersion:
		version, dirty, err := mig.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", err)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if runErr != nil && !errors.Is(runErr, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", action, runErr)
	}

	log.Info().Str("action", string(action)).Msg("Database migrations completed successfully")

	return nil
}
